package dto

import (
	"time"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

// SessionStateResponse is the wizard state exposed to the host UI.
type SessionStateResponse struct {
	ID           string                   `json:"id"`
	Step         models.WizardStep        `json:"step"`
	Decision     models.Decision          `json:"decision"`
	Preview      bool                     `json:"preview"`
	IsSubmitting bool                     `json:"is_submitting"`
	Errors       map[string]string        `json:"errors,omitempty"`
	Campaign     *models.CampaignSnapshot `json:"campaign,omitempty"`
	Rows         []RowItem                `json:"rows"`
	UploadURLs   []string                 `json:"upload_urls,omitempty"`
}

// RowItem is one social-account row in responses.
type RowItem struct {
	ID            string            `json:"id"`
	Platform      models.Platform   `json:"platform"`
	Value         string            `json:"value"`
	FollowerCount *int64            `json:"follower_count,omitempty"`
	FetchedAt     *time.Time        `json:"fetched_at,omitempty"`
	FetchState    models.FetchState `json:"fetch_state"`
	FetchMessage  string            `json:"fetch_message,omitempty"`
}

// RowRequest adds or updates a social-account row.
type RowRequest struct {
	Platform models.Platform `json:"platform"`
	Value    string          `json:"value"`
}

// GenderRatioPayload is the optional audience split section.
type GenderRatioPayload struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Other  int `json:"other"`
}

// AcceptSubmissionRequest carries the accept-path profile form.
type AcceptSubmissionRequest struct {
	DisplayName    string              `json:"display_name"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone"`
	MessagingID    string              `json:"messaging_id"`
	ContactMethods []string            `json:"contact_methods"`
	MainPlatform   models.Platform     `json:"main_platform"`
	MainValue      string              `json:"main_value"`
	FeeAmount      string              `json:"fee_amount"`
	GenderRatio    *GenderRatioPayload `json:"gender_ratio,omitempty"`
	Attachments    []string            `json:"attachments,omitempty"`
}

// DeclineSubmissionRequest carries the decline-path form.
type DeclineSubmissionRequest struct {
	WantsContact bool   `json:"wants_contact"`
	Email        string `json:"email"`
	MessagingID  string `json:"messaging_id"`
	Reason       string `json:"reason"`
}

// SubmitResponse acknowledges a stored (or previewed) submission.
type SubmitResponse struct {
	SubmissionID string            `json:"submission_id,omitempty"`
	Step         models.WizardStep `json:"step"`
	Preview      bool              `json:"preview"`
}

// UploadResponse returns stored attachment URLs.
type UploadResponse struct {
	URLs []string `json:"urls"`
}
