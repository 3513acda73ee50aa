package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/dto"
	"github.com/noah-isme/creator-campaign-api/internal/models"
)

func validAcceptRequest() dto.AcceptSubmissionRequest {
	return dto.AcceptSubmissionRequest{
		DisplayName:    "Yuki",
		Email:          "yuki@example.com",
		Phone:          "090-1234-5678",
		ContactMethods: []string{"email"},
		MainPlatform:   models.PlatformInstagram,
		MainValue:      "@yuki_creates",
		FeeAmount:      "¥50,000",
	}
}

func accountRow(platform models.Platform, value string) models.SocialAccountRow {
	return models.SocialAccountRow{ID: "row-" + value, Platform: platform, Value: value, FetchState: models.FetchStateIdle}
}

func TestAssembleRequiredFields(t *testing.T) {
	assembler := NewSubmissionAssembler()

	submission, errs := assembler.Assemble("camp-1", "sess-1", dto.AcceptSubmissionRequest{}, nil)
	assert.Nil(t, submission)
	assert.Contains(t, errs, "displayName")
	assert.Contains(t, errs, "mainPlatform")
	assert.Contains(t, errs, "mainValue")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "contactMethods")
	assert.Contains(t, errs, "feeAmount")
}

func TestAssembleEmailRequiredOnlyWithEmailContact(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	req.Email = ""
	_, errs := assembler.Assemble("camp-1", "sess-1", req, nil)
	assert.Contains(t, errs, "email")

	req.ContactMethods = []string{"phone"}
	submission, errs := assembler.Assemble("camp-1", "sess-1", req, nil)
	assert.Empty(t, errs)
	require.NotNil(t, submission)
	assert.Empty(t, submission.Email)
}

func TestAssembleRowErrorsKeyedByIndex(t *testing.T) {
	assembler := NewSubmissionAssembler()

	rows := []models.SocialAccountRow{
		accountRow(models.PlatformInstagram, "@good_one"),
		accountRow(models.PlatformTikTok, "missing_at_sign"),
		accountRow(models.PlatformYouTube, "https://youtube.com/watch?v=abc"),
	}
	_, errs := assembler.Assemble("camp-1", "sess-1", validAcceptRequest(), rows)
	assert.NotContains(t, errs, "socialAccount_0")
	assert.Contains(t, errs, "socialAccount_1")
	assert.Contains(t, errs, "socialAccount_2")
}

func TestAssembleEmptyRowsIgnored(t *testing.T) {
	assembler := NewSubmissionAssembler()

	rows := []models.SocialAccountRow{
		accountRow(models.PlatformTikTok, ""),
		accountRow(models.PlatformYouTube, "   "),
	}
	submission, errs := assembler.Assemble("camp-1", "sess-1", validAcceptRequest(), rows)
	assert.Empty(t, errs)
	require.NotNil(t, submission)
	assert.Nil(t, submission.TikTok)
	assert.Nil(t, submission.YouTube)
}

func TestAssembleGenderRatioMustSumTo100(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	req.GenderRatio = &dto.GenderRatioPayload{Male: 40, Female: 40, Other: 10}
	_, errs := assembler.Assemble("camp-1", "sess-1", req, nil)
	assert.Contains(t, errs, "genderRatio")

	req.GenderRatio = &dto.GenderRatioPayload{Male: 40, Female: 50, Other: 10}
	submission, errs := assembler.Assemble("camp-1", "sess-1", req, nil)
	assert.Empty(t, errs)
	require.NotNil(t, submission.GenderRatio)
	assert.Equal(t, 50, submission.GenderRatio.Female)
}

func TestAssembleMergeExplicitRowWinsOverMainShortcut(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	rows := []models.SocialAccountRow{accountRow(models.PlatformInstagram, "@from_row")}
	submission, errs := assembler.Assemble("camp-1", "sess-1", req, rows)
	require.Empty(t, errs)
	require.NotNil(t, submission.Instagram)
	assert.Equal(t, "@from_row", *submission.Instagram)
	assert.Empty(t, submission.OtherPlatforms)
}

func TestAssembleMergeMainFillsEmptySlot(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	rows := []models.SocialAccountRow{accountRow(models.PlatformTikTok, "@dance_daily")}
	submission, errs := assembler.Assemble("camp-1", "sess-1", req, rows)
	require.Empty(t, errs)
	require.NotNil(t, submission.Instagram)
	assert.Equal(t, "@yuki_creates", *submission.Instagram)
	require.NotNil(t, submission.TikTok)
	assert.Equal(t, "@dance_daily", *submission.TikTok)
}

func TestAssembleMergeOtherPlatformsNoDuplicates(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	req.MainPlatform = models.PlatformOther
	req.MainValue = "https://blog.example.com"
	rows := []models.SocialAccountRow{
		accountRow(models.PlatformOther, "https://blog.example.com"),
		accountRow(models.PlatformRed, "yuki-red-notes"),
	}
	submission, errs := assembler.Assemble("camp-1", "sess-1", req, rows)
	require.Empty(t, errs)
	require.Len(t, submission.OtherPlatforms, 1)
	assert.Equal(t, "https://blog.example.com", submission.OtherPlatforms[0].URL)
	require.NotNil(t, submission.Red)
	assert.Equal(t, "yuki-red-notes", *submission.Red)
}

func TestAssembleCarriesFollowerStats(t *testing.T) {
	assembler := NewSubmissionAssembler()

	count := int64(12000)
	fetchedAt := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	row := accountRow(models.PlatformInstagram, "@yuki_creates")
	row.FollowerCount = &count
	row.FetchedAt = &fetchedAt
	row.FetchState = models.FetchStateSucceeded

	failed := accountRow(models.PlatformTikTok, "@dance_daily")
	failed.FetchState = models.FetchStateFailed

	submission, errs := assembler.Assemble("camp-1", "sess-1", validAcceptRequest(), []models.SocialAccountRow{row, failed})
	require.Empty(t, errs)
	require.Contains(t, submission.FollowerStats, "instagram")
	assert.Equal(t, int64(12000), submission.FollowerStats["instagram"].Count)
	assert.NotContains(t, submission.FollowerStats, "tiktok")
}

func TestAssembleNormalizesPhoneAndFee(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	req.Phone = "090 1234 5678"
	req.FeeAmount = "50000 yen"
	submission, errs := assembler.Assemble("camp-1", "sess-1", req, nil)
	require.Empty(t, errs)
	assert.Equal(t, "090-1234-5678", submission.Phone)
	require.NotNil(t, submission.FeeAmount)
	assert.Equal(t, int64(50000), *submission.FeeAmount)
}

func TestAssembleIdempotent(t *testing.T) {
	assembler := NewSubmissionAssembler()

	req := validAcceptRequest()
	rows := []models.SocialAccountRow{accountRow(models.PlatformInstagram, "@yuki_creates")}
	first, errs := assembler.Assemble("camp-1", "sess-1", req, rows)
	require.Empty(t, errs)
	second, errs := assembler.Assemble("camp-1", "sess-1", req, rows)
	require.Empty(t, errs)
	assert.Equal(t, first.Instagram, second.Instagram)
	assert.Equal(t, first.OtherPlatforms, second.OtherPlatforms)
}
