package models

import "time"

// WizardStep enumerates the public wizard positions. The form step is
// polymorphic on the session decision (accept vs decline variant).
type WizardStep string

const (
	StepNDA            WizardStep = "nda"
	StepCampaignDetail WizardStep = "campaign_detail"
	StepForm           WizardStep = "form"
	StepThanks         WizardStep = "thanks"

	// StepNotFound is a terminal outside the 4-step machine, entered when the
	// campaign vanishes mid-session. It is never advanced or backed out of.
	StepNotFound WizardStep = "not_found"
)

// Decision is the collaborator's accept/decline choice.
type Decision string

const (
	DecisionUndecided Decision = "undecided"
	DecisionAccepted  Decision = "accepted"
	DecisionDeclined  Decision = "declined"
)

// FetchState tracks per-row follower-count enrichment.
type FetchState string

const (
	FetchStateIdle      FetchState = "idle"
	FetchStateLoading   FetchState = "loading"
	FetchStateSucceeded FetchState = "succeeded"
	FetchStateFailed    FetchState = "failed"
)

// SocialAccountRow is one entry in the dynamic account list. Rows carry a
// stable synthetic ID so in-flight enrichment results can be dropped safely
// when a row is removed mid-fetch.
type SocialAccountRow struct {
	ID            string     `json:"id"`
	Platform      Platform   `json:"platform"`
	Value         string     `json:"value"`
	FollowerCount *int64     `json:"follower_count,omitempty"`
	FetchedAt     *time.Time `json:"fetched_at,omitempty"`
	FetchState    FetchState `json:"fetch_state"`
	FetchMessage  string     `json:"fetch_message,omitempty"`
}

// WizardSession is the live state of one collaborator walkthrough, stored in
// Redis for the duration of the visit.
type WizardSession struct {
	ID         string             `json:"id"`
	CampaignID string             `json:"campaign_id"`
	Slug       string             `json:"slug"`
	Step       WizardStep         `json:"step"`
	Decision   Decision           `json:"decision"`
	Preview    bool               `json:"preview"`
	Snapshot   *CampaignSnapshot  `json:"snapshot,omitempty"`
	Rows       []SocialAccountRow `json:"rows"`
	Errors     map[string]string  `json:"errors,omitempty"`
	Submitting bool               `json:"submitting"`
	UploadURLs StringList         `json:"upload_urls,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// Row returns the row with the given ID, or nil when it no longer exists.
func (s *WizardSession) Row(rowID string) *SocialAccountRow {
	for i := range s.Rows {
		if s.Rows[i].ID == rowID {
			return &s.Rows[i]
		}
	}
	return nil
}

// RemoveRow deletes the row with the given ID, reporting whether it existed.
func (s *WizardSession) RemoveRow(rowID string) bool {
	for i := range s.Rows {
		if s.Rows[i].ID == rowID {
			s.Rows = append(s.Rows[:i], s.Rows[i+1:]...)
			return true
		}
	}
	return false
}
