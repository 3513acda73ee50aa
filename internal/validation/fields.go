package validation

import (
	"fmt"
	"regexp"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

var (
	handlePattern     = regexp.MustCompile(`^@[A-Za-z0-9_]+$`)
	channelURLPattern = regexp.MustCompile(`^https?://(www\.)?youtube\.com/(channel/|c/|@|user/)\S+$`)
	shortLinkPattern  = regexp.MustCompile(`^https?://youtu\.be/\S+$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// handleExamples pairs a correct and an incorrect sample per handle platform.
// Every message must show both so the collaborator can pattern-match a fix.
var handleExamples = map[models.Platform][2]string{
	models.PlatformInstagram: {"@yuki_creates", "https://instagram.com/yuki_creates"},
	models.PlatformTikTok:    {"@dance_daily", "dance_daily"},
	models.PlatformX:         {"@newsroom_jp", "x.com/newsroom_jp"},
}

// platformLabels are the display names used inside error messages.
var platformLabels = map[models.Platform]string{
	models.PlatformInstagram: "Instagram",
	models.PlatformTikTok:    "TikTok",
	models.PlatformYouTube:   "YouTube",
	models.PlatformX:         "X",
	models.PlatformRed:       "RED",
	models.PlatformOther:     "Other",
}

// ValidateHandle checks the @handle contract shared by Instagram, TikTok and
// X: an @ followed by ASCII letters, digits or underscores, nothing else.
// No whitespace trimming is applied; the typed value must match exactly.
func ValidateHandle(platform models.Platform, value string) *FieldError {
	if handlePattern.MatchString(value) {
		return nil
	}
	examples, ok := handleExamples[platform]
	if !ok {
		examples = handleExamples[models.PlatformInstagram]
	}
	return &FieldError{
		Message: fmt.Sprintf("Enter your %s handle starting with @, using only letters, numbers and underscores.\nGood: %s\nBad: %s",
			platformLabels[platform], examples[0], examples[1]),
	}
}

// ValidateChannelURL checks the YouTube channel-URL contract. Channel, custom,
// @handle and legacy user URLs pass, as does the youtu.be short host. Video
// and watch URLs share the host but are rejected.
func ValidateChannelURL(value string) *FieldError {
	if channelURLPattern.MatchString(value) || shortLinkPattern.MatchString(value) {
		return nil
	}
	return &FieldError{
		Message: "Enter the URL of your YouTube channel, not a video.\nGood: https://www.youtube.com/@yukicreates\nBad: https://youtube.com/watch?v=dQw4w9WgXcQ",
	}
}

// ValidateEmail applies a permissive local@domain.tld shape check, not the
// full RFC grammar.
func ValidateEmail(value string) *FieldError {
	if emailPattern.MatchString(value) {
		return nil
	}
	return &FieldError{
		Message: "Enter a valid email address.\nGood: yuki@example.com\nBad: yuki@example",
	}
}

// ValidateAccountValue dispatches the per-platform contract for a social
// account value. RED and Other are free-form and never block submission.
func ValidateAccountValue(platform models.Platform, value string) *FieldError {
	switch platform {
	case models.PlatformInstagram, models.PlatformTikTok, models.PlatformX:
		return ValidateHandle(platform, value)
	case models.PlatformYouTube:
		return ValidateChannelURL(value)
	case models.PlatformRed, models.PlatformOther:
		return nil
	default:
		return &FieldError{Message: fmt.Sprintf("Unknown platform %q.", string(platform))}
	}
}
