package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
	"github.com/noah-isme/creator-campaign-api/internal/validation"
)

// ContactMethodEmail is the contact-method key that makes the email field
// mandatory.
const ContactMethodEmail = "email"

// SubmissionAssembler turns an accept-path form plus the account rows into a
// normalized submission record, or a field-indexed error set when the form is
// not submittable. The set is recomputed fully on every call.
type SubmissionAssembler struct{}

// NewSubmissionAssembler constructs an assembler.
func NewSubmissionAssembler() *SubmissionAssembler {
	return &SubmissionAssembler{}
}

// Assemble validates the form and merges accounts into the fixed platform
// slots. Explicit rows win over the main-account shortcut; platforms without
// a slot land in other_platforms. Returns a nil submission when the error set
// is non-empty.
func (a *SubmissionAssembler) Assemble(campaignID, sessionID string, req dto.AcceptSubmissionRequest, rows []models.SocialAccountRow) (*models.Submission, validation.ErrorSet) {
	errs := validation.NewErrorSet()

	if strings.TrimSpace(req.DisplayName) == "" {
		errs.Add("displayName", "Enter your name.")
	}

	if req.MainPlatform == "" {
		errs.Add("mainPlatform", "Choose the platform you are most active on.")
	} else if !req.MainPlatform.Valid() {
		errs.Add("mainPlatform", fmt.Sprintf("Unknown platform %q.", string(req.MainPlatform)))
	}
	if strings.TrimSpace(req.MainValue) == "" {
		errs.Add("mainValue", "Enter the account for your main platform.")
	} else if req.MainPlatform.Valid() {
		if fieldErr := validation.ValidateAccountValue(req.MainPlatform, req.MainValue); fieldErr != nil {
			errs.Add("mainValue", fieldErr.Message)
		}
	}

	phone := validation.FormatPhone(req.Phone)
	if phone == "" {
		errs.Add("phone", "Enter a phone number.")
	} else if fieldErr := validation.ValidatePhone(phone); fieldErr != nil {
		errs.Add("phone", fieldErr.Message)
	}

	if len(req.ContactMethods) == 0 {
		errs.Add("contactMethods", "Choose at least one way for us to reach you.")
	}

	emailRequired := containsString(req.ContactMethods, ContactMethodEmail)
	if req.Email == "" {
		if emailRequired {
			errs.Add("email", "Enter an email address so we can contact you.")
		}
	} else if fieldErr := validation.ValidateEmail(req.Email); fieldErr != nil {
		errs.Add("email", fieldErr.Message)
	}

	feeAmount, feeOK := validation.ParseCurrency(req.FeeAmount)
	if !feeOK {
		errs.Add("feeAmount", "Enter your expected fee.\nGood: ¥50,000\nBad: negotiable")
	}

	if req.GenderRatio != nil {
		sum := req.GenderRatio.Male + req.GenderRatio.Female + req.GenderRatio.Other
		if sum != 100 {
			errs.Add("genderRatio", fmt.Sprintf("Audience percentages must add up to 100 (currently %d).", sum))
		}
	}

	for i, row := range rows {
		if strings.TrimSpace(row.Value) == "" {
			continue
		}
		if fieldErr := validation.ValidateAccountValue(row.Platform, row.Value); fieldErr != nil {
			errs.Add(fmt.Sprintf("socialAccount_%d", i), fieldErr.Message)
		}
	}

	if !errs.Empty() {
		return nil, errs
	}

	submission := &models.Submission{
		CampaignID:     campaignID,
		SessionID:      sessionID,
		CanParticipate: true,
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Phone:          phone,
		ContactMethods: models.StringList(req.ContactMethods),
		OtherPlatforms: models.OtherPlatformList{},
		FollowerStats:  models.FollowerStatMap{},
		FeeAmount:      &feeAmount,
		Attachments:    models.StringList(req.Attachments),
	}
	if req.MessagingID != "" {
		messagingID := req.MessagingID
		submission.MessagingID = &messagingID
	}
	if req.GenderRatio != nil {
		submission.GenderRatio = &models.GenderRatio{
			Male:   req.GenderRatio.Male,
			Female: req.GenderRatio.Female,
			Other:  req.GenderRatio.Other,
		}
	}

	a.mergeAccounts(submission, req, rows)
	return submission, errs
}

// mergeAccounts fills the fixed slots from explicit rows first, then falls
// back to the main-account shortcut for a still-empty slot. Non-slot
// platforms accumulate in other_platforms without duplicates.
func (a *SubmissionAssembler) mergeAccounts(submission *models.Submission, req dto.AcceptSubmissionRequest, rows []models.SocialAccountRow) {
	for _, row := range rows {
		if strings.TrimSpace(row.Value) == "" {
			continue
		}
		a.placeAccount(submission, row.Platform, string(row.Platform), row.Value)
		if row.FollowerCount != nil && row.FetchedAt != nil && row.FetchState == models.FetchStateSucceeded {
			key := string(row.Platform)
			if _, exists := submission.FollowerStats[key]; !exists {
				submission.FollowerStats[key] = models.FollowerStat{
					Count:     *row.FollowerCount,
					FetchedAt: *row.FetchedAt,
				}
			}
		}
	}
	a.placeAccount(submission, req.MainPlatform, string(req.MainPlatform), req.MainValue)
}

func (a *SubmissionAssembler) placeAccount(submission *models.Submission, platform models.Platform, label, value string) {
	if slot := submission.SlotValue(platform); slot != nil {
		if *slot == nil {
			v := value
			*slot = &v
		}
		return
	}
	for _, existing := range submission.OtherPlatforms {
		if existing.Platform == label && existing.URL == value {
			return
		}
	}
	submission.OtherPlatforms = append(submission.OtherPlatforms, models.OtherPlatform{
		Platform: label,
		URL:      value,
	})
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
