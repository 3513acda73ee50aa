package models

// Platform identifies a social network collected by the wizard.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformX         Platform = "x"
	PlatformRed       Platform = "red"
	PlatformOther     Platform = "other"
)

// FixedSlotPlatforms lists the platforms persisted as dedicated submission columns,
// in column order. Everything else lands in the other_platforms list.
func FixedSlotPlatforms() []Platform {
	return []Platform{PlatformInstagram, PlatformYouTube, PlatformTikTok, PlatformRed, PlatformX}
}

// Valid reports whether the platform is one of the known values.
func (p Platform) Valid() bool {
	switch p {
	case PlatformInstagram, PlatformTikTok, PlatformYouTube, PlatformX, PlatformRed, PlatformOther:
		return true
	default:
		return false
	}
}

// FixedSlot reports whether the platform has a dedicated submission column.
func (p Platform) FixedSlot() bool {
	switch p {
	case PlatformInstagram, PlatformYouTube, PlatformTikTok, PlatformRed, PlatformX:
		return true
	default:
		return false
	}
}
