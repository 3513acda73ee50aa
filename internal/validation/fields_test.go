package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/creator-campaign-api/internal/models"
)

func TestValidateHandle(t *testing.T) {
	handlePlatforms := []models.Platform{models.PlatformInstagram, models.PlatformTikTok, models.PlatformX}

	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple handle", "@creator1", true},
		{"underscore and digits", "@yuki_creates_99", true},
		{"single char", "@a", true},
		{"bare username", "creator1", false},
		{"empty", "", false},
		{"at only", "@", false},
		{"leading whitespace", " @creator1", false},
		{"trailing whitespace", "@creator1 ", false},
		{"profile url", "https://instagram.com/creator1", false},
		{"hyphen", "@creator-1", false},
		{"unicode", "@クリエイター", false},
		{"inner space", "@creator 1", false},
	}

	for _, platform := range handlePlatforms {
		for _, tc := range cases {
			t.Run(string(platform)+"/"+tc.name, func(t *testing.T) {
				err := ValidateHandle(platform, tc.value)
				if tc.valid {
					assert.Nil(t, err)
				} else {
					require.NotNil(t, err)
					assert.NotEmpty(t, err.Message)
				}
			})
		}
	}
}

func TestValidateHandleMessageShowsBothExamples(t *testing.T) {
	for _, platform := range []models.Platform{models.PlatformInstagram, models.PlatformTikTok, models.PlatformX} {
		err := ValidateHandle(platform, "not-a-handle")
		require.NotNil(t, err)
		assert.Contains(t, err.Message, "Good:", "platform %s", platform)
		assert.Contains(t, err.Message, "Bad:", "platform %s", platform)
		assert.True(t, strings.Count(err.Message, "\n") >= 2, "message should be multi-line for %s", platform)

		examples := handleExamples[platform]
		assert.Contains(t, err.Message, examples[0])
		assert.Contains(t, err.Message, examples[1])
	}
}

func TestValidateChannelURL(t *testing.T) {
	cases := []struct {
		name  string
		value string
		valid bool
	}{
		{"handle url", "https://www.youtube.com/@name", true},
		{"channel id", "https://www.youtube.com/channel/UCxxxx123", true},
		{"custom url", "https://youtube.com/c/YukiCreates", true},
		{"legacy user", "http://www.youtube.com/user/yukicreates", true},
		{"short link", "https://youtu.be/somechannel", true},
		{"watch url", "https://youtube.com/watch?v=xxx", false},
		{"www watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"bare handle", "@name", false},
		{"empty", "", false},
		{"other host", "https://vimeo.com/channel/abc", false},
		{"prefix without rest", "https://www.youtube.com/channel/", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateChannelURL(tc.value)
			if tc.valid {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Contains(t, err.Message, "Good:")
				assert.Contains(t, err.Message, "Bad:")
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"yuki@example.com", true},
		{"a.b+tag@sub.domain.co.jp", true},
		{"yuki@example", false},
		{"@example.com", false},
		{"yuki example@example.com", false},
		{"", false},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			err := ValidateEmail(tc.value)
			assert.Equal(t, tc.valid, err == nil)
		})
	}
}

func TestValidateAccountValueFreeFormPlatforms(t *testing.T) {
	assert.Nil(t, ValidateAccountValue(models.PlatformRed, "anything goes here"))
	assert.Nil(t, ValidateAccountValue(models.PlatformOther, "https://some.site/profile"))
	assert.Nil(t, ValidateAccountValue(models.PlatformRed, ""))
}

func TestValidateAccountValueDispatch(t *testing.T) {
	assert.NotNil(t, ValidateAccountValue(models.PlatformInstagram, "creator1"))
	assert.Nil(t, ValidateAccountValue(models.PlatformInstagram, "@creator1"))
	assert.NotNil(t, ValidateAccountValue(models.PlatformYouTube, "@creator1"))
	assert.Nil(t, ValidateAccountValue(models.PlatformYouTube, "https://www.youtube.com/@creator1"))
	assert.NotNil(t, ValidateAccountValue(models.Platform("myspace"), "x"))
}
