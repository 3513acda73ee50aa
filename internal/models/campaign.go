package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CampaignStatus captures the campaign lifecycle.
type CampaignStatus string

const (
	CampaignStatusDraft    CampaignStatus = "DRAFT"
	CampaignStatusActive   CampaignStatus = "ACTIVE"
	CampaignStatusClosed   CampaignStatus = "CLOSED"
	CampaignStatusArchived CampaignStatus = "ARCHIVED"
)

// PlatformTag pairs a platform with its requested deliverables.
type PlatformTag struct {
	Platform     Platform `json:"platform"`
	Deliverables []string `json:"deliverables,omitempty"`
}

// PlatformTagList is a JSONB-backed slice of platform tags.
type PlatformTagList []PlatformTag

// Value marshals the tags to JSON for persistence.
func (l PlatformTagList) Value() (driver.Value, error) {
	if l == nil {
		l = PlatformTagList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal platform tags: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the tag list.
func (l *PlatformTagList) Scan(value interface{}) error {
	return scanJSON(value, l, "PlatformTagList")
}

// Campaign is the record stored in the campaigns table.
type Campaign struct {
	ID                 string          `db:"id" json:"id"`
	Slug               string          `db:"slug" json:"slug"`
	Title              string          `db:"title" json:"title"`
	Summary            string          `db:"summary" json:"summary"`
	Platforms          PlatformTagList `db:"platforms" json:"platforms"`
	Deadline           *time.Time      `db:"deadline" json:"deadline,omitempty"`
	Restrictions       string          `db:"restrictions" json:"restrictions"`
	NDAText            string          `db:"nda_text" json:"nda_text"`
	AcceptanceRequired bool            `db:"acceptance_required" json:"acceptance_required"`
	ImageURLs          StringList      `db:"image_urls" json:"image_urls"`
	AttachmentURLs     StringList      `db:"attachment_urls" json:"attachment_urls"`
	Status             CampaignStatus  `db:"status" json:"status"`
	CreatedBy          string          `db:"created_by" json:"created_by"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// CampaignSnapshot is the read-only projection the wizard holds for a session.
type CampaignSnapshot struct {
	ID                 string          `json:"id"`
	Slug               string          `json:"slug"`
	Title              string          `json:"title"`
	Summary            string          `json:"summary"`
	Platforms          PlatformTagList `json:"platforms"`
	Deadline           *time.Time      `json:"deadline,omitempty"`
	Restrictions       string          `json:"restrictions"`
	NDAText            string          `json:"nda_text"`
	AcceptanceRequired bool            `json:"acceptance_required"`
	ImageURLs          StringList      `json:"image_urls"`
	AttachmentURLs     StringList      `json:"attachment_urls"`
}

// Snapshot projects the campaign into its wizard-facing read model.
func (c *Campaign) Snapshot() *CampaignSnapshot {
	return &CampaignSnapshot{
		ID:                 c.ID,
		Slug:               c.Slug,
		Title:              c.Title,
		Summary:            c.Summary,
		Platforms:          c.Platforms,
		Deadline:           c.Deadline,
		Restrictions:       c.Restrictions,
		NDAText:            c.NDAText,
		AcceptanceRequired: c.AcceptanceRequired,
		ImageURLs:          c.ImageURLs,
		AttachmentURLs:     c.AttachmentURLs,
	}
}

// CampaignFilter captures list criteria for admin views.
type CampaignFilter struct {
	Status   *CampaignStatus
	Search   string
	Page     int
	PageSize int
}
