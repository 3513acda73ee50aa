package dto

import (
	"time"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

// CreateCampaignRequest is the admin payload for a new campaign.
type CreateCampaignRequest struct {
	Title              string                 `json:"title" validate:"required,min=3"`
	Slug               string                 `json:"slug" validate:"omitempty,lowercase"`
	Summary            string                 `json:"summary"`
	Platforms          models.PlatformTagList `json:"platforms"`
	Deadline           *time.Time             `json:"deadline,omitempty"`
	Restrictions       string                 `json:"restrictions"`
	NDAText            string                 `json:"nda_text"`
	AcceptanceRequired bool                   `json:"acceptance_required"`
	ImageURLs          []string               `json:"image_urls,omitempty"`
	AttachmentURLs     []string               `json:"attachment_urls,omitempty"`
}

// UpdateCampaignRequest mutates an existing campaign; nil fields are left as-is.
type UpdateCampaignRequest struct {
	Title              *string                 `json:"title,omitempty" validate:"omitempty,min=3"`
	Summary            *string                 `json:"summary,omitempty"`
	Platforms          *models.PlatformTagList `json:"platforms,omitempty"`
	Deadline           *time.Time              `json:"deadline,omitempty"`
	Restrictions       *string                 `json:"restrictions,omitempty"`
	NDAText            *string                 `json:"nda_text,omitempty"`
	AcceptanceRequired *bool                   `json:"acceptance_required,omitempty"`
	ImageURLs          *[]string               `json:"image_urls,omitempty"`
	AttachmentURLs     *[]string               `json:"attachment_urls,omitempty"`
	Status             *models.CampaignStatus  `json:"status,omitempty"`
}

// CampaignQuery captures admin list filters.
type CampaignQuery struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
