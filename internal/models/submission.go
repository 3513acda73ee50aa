package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DeclinedPlaceholderEmail is written when a declining collaborator opts out
// of leaving contact details. The submissions table requires a non-null email.
const DeclinedPlaceholderEmail = "not-provided@placeholder.invalid"

// OtherPlatform is a non-fixed-slot account reference.
type OtherPlatform struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// OtherPlatformList is a JSONB-backed slice of other-platform entries.
type OtherPlatformList []OtherPlatform

// Value marshals the list to JSON for persistence.
func (l OtherPlatformList) Value() (driver.Value, error) {
	if l == nil {
		l = OtherPlatformList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal other platforms: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the list.
func (l *OtherPlatformList) Scan(value interface{}) error {
	return scanJSON(value, l, "OtherPlatformList")
}

// FollowerStat is the advisory enrichment metadata captured for a platform.
type FollowerStat struct {
	Count     int64     `json:"count"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FollowerStatMap maps platform name to its fetched follower stat.
type FollowerStatMap map[string]FollowerStat

// Value marshals the map to JSON for persistence.
func (m FollowerStatMap) Value() (driver.Value, error) {
	if m == nil {
		m = FollowerStatMap{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal follower stats: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the map.
func (m *FollowerStatMap) Scan(value interface{}) error {
	return scanJSON(value, m, "FollowerStatMap")
}

// GenderRatio is the optional audience split section; values must sum to 100.
type GenderRatio struct {
	Male   int `json:"male"`
	Female int `json:"female"`
	Other  int `json:"other"`
}

// Value marshals the ratio to JSON for persistence.
func (g GenderRatio) Value() (driver.Value, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("marshal gender ratio: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the ratio.
func (g *GenderRatio) Scan(value interface{}) error {
	return scanJSON(value, g, "GenderRatio")
}

// Submission is the normalized record handed to the record store; exactly one
// per session, at most once per decision value.
type Submission struct {
	ID             string            `db:"id" json:"id"`
	CampaignID     string            `db:"campaign_id" json:"campaign_id"`
	SessionID      string            `db:"session_id" json:"session_id"`
	CanParticipate bool              `db:"can_participate" json:"can_participate"`
	DisplayName    string            `db:"display_name" json:"display_name"`
	Email          string            `db:"email" json:"email"`
	Phone          string            `db:"phone" json:"phone"`
	MessagingID    *string           `db:"messaging_id" json:"messaging_id,omitempty"`
	ContactMethods StringList        `db:"contact_methods" json:"contact_methods"`
	Instagram      *string           `db:"instagram" json:"instagram,omitempty"`
	YouTube        *string           `db:"youtube" json:"youtube,omitempty"`
	TikTok         *string           `db:"tiktok" json:"tiktok,omitempty"`
	Red            *string           `db:"red" json:"red,omitempty"`
	X              *string           `db:"x" json:"x,omitempty"`
	OtherPlatforms OtherPlatformList `db:"other_platforms" json:"other_platforms"`
	FollowerStats  FollowerStatMap   `db:"follower_stats" json:"follower_stats"`
	FeeAmount      *int64            `db:"fee_amount" json:"fee_amount,omitempty"`
	GenderRatio    *GenderRatio      `db:"gender_ratio" json:"gender_ratio,omitempty"`
	Attachments    StringList        `db:"attachments" json:"attachments"`
	DeclineReason  *string           `db:"decline_reason" json:"decline_reason,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
}

// SlotValue returns a pointer to the fixed-slot column for the platform.
func (s *Submission) SlotValue(p Platform) **string {
	switch p {
	case PlatformInstagram:
		return &s.Instagram
	case PlatformYouTube:
		return &s.YouTube
	case PlatformTikTok:
		return &s.TikTok
	case PlatformRed:
		return &s.Red
	case PlatformX:
		return &s.X
	default:
		return nil
	}
}
