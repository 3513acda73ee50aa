package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Creator Campaign API",
        "description": "Submission wizard and campaign administration for influencer collaborations",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Wizard", "description": "Public submission walkthrough"},
        {"name": "Campaigns", "description": "Campaign administration"},
        {"name": "Exports", "description": "Asynchronous submission exports"},
        {"name": "Auth", "description": "Admin authentication"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/wizard/{slug}/sessions": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Open a wizard session for a campaign",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"},
                    {"name": "preview", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Campaign not found"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}": {
            "get": {
                "tags": ["Wizard"],
                "summary": "Read the live session state",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Session expired or unknown"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/acknowledge": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Acknowledge the NDA and enter the campaign detail step",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Wrong step"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/accept": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Record an accepted decision",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Wrong step"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/decline": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Record a declined decision",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Wrong step"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/back": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Move one step backwards",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Wrong step"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/restart": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Restart a finished session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Only allowed from the thanks step"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/rows": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Add a social-account row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RowRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Row limit reached"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/rows/{rowId}": {
            "put": {
                "tags": ["Wizard"],
                "summary": "Update a social-account row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "rowId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RowRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Wizard"],
                "summary": "Remove a social-account row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "rowId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/rows/{rowId}/enrich": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Fetch the follower count for a row",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "rowId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "202": {"description": "Fetch queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/uploads": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Attach files to a session",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "files", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/submit": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Submit the accept-path form",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AcceptSubmissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation errors", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Persistence failed"}
                }
            }
        },
        "/api/v1/wizard/sessions/{id}/decline-submit": {
            "post": {
                "tags": ["Wizard"],
                "summary": "Submit the decline-path form",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeclineSubmissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "422": {"description": "Validation errors", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate an admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/campaigns": {
            "get": {
                "tags": ["Campaigns"],
                "summary": "List campaigns",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Campaigns"],
                "summary": "Create campaign",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCampaignRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/campaigns/{id}": {
            "get": {
                "tags": ["Campaigns"],
                "summary": "Get campaign",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Campaigns"],
                "summary": "Update campaign",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCampaignRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Campaigns"],
                "summary": "Delete campaign",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/campaigns/{id}/submissions": {
            "get": {
                "tags": ["Campaigns"],
                "summary": "List campaign submissions",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a submission export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/exports/download/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "404": {"description": "Unknown or expired token"}
                }
            }
        }
    },
    "definitions": {
        "RowRequest": {
            "type": "object",
            "properties": {
                "platform": {"type": "string", "enum": ["instagram", "tiktok", "youtube", "x", "red", "other"]},
                "value": {"type": "string"}
            }
        },
        "AcceptSubmissionRequest": {
            "type": "object",
            "properties": {
                "display_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "messaging_id": {"type": "string"},
                "contact_methods": {"type": "array", "items": {"type": "string"}},
                "main_platform": {"type": "string"},
                "main_value": {"type": "string"},
                "fee_amount": {"type": "string"},
                "gender_ratio": {"$ref": "#/definitions/GenderRatio"},
                "attachments": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["display_name", "phone", "contact_methods", "main_platform", "main_value", "fee_amount"]
        },
        "DeclineSubmissionRequest": {
            "type": "object",
            "properties": {
                "wants_contact": {"type": "boolean"},
                "email": {"type": "string"},
                "messaging_id": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "GenderRatio": {
            "type": "object",
            "properties": {
                "male": {"type": "integer"},
                "female": {"type": "integer"},
                "other": {"type": "integer"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateCampaignRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "slug": {"type": "string"},
                "summary": {"type": "string"},
                "platforms": {"type": "array", "items": {"type": "string"}},
                "deadline": {"type": "string"},
                "restrictions": {"type": "string"},
                "nda_text": {"type": "string"},
                "acceptance_required": {"type": "boolean"},
                "image_urls": {"type": "array", "items": {"type": "string"}},
                "attachment_urls": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["title"]
        },
        "UpdateCampaignRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "summary": {"type": "string"},
                "platforms": {"type": "array", "items": {"type": "string"}},
                "deadline": {"type": "string"},
                "restrictions": {"type": "string"},
                "nda_text": {"type": "string"},
                "acceptance_required": {"type": "boolean"},
                "image_urls": {"type": "array", "items": {"type": "string"}},
                "attachment_urls": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string", "enum": ["DRAFT", "ACTIVE", "CLOSED", "ARCHIVED"]}
            }
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "campaignId": {"type": "string"},
                "format": {"type": "string", "enum": ["csv", "pdf"]}
            },
            "required": ["campaignId", "format"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
