package validation

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\d{2,4}-\d{2,4}-\d{3,4}$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

const maxPhoneDigits = 11

// FormatPhone strips everything but digits and re-inserts hyphens at the
// fixed breakpoints (after digit 3 and digit 7, capped at 11 digits). The
// 3/7 split yields 090-1234-567 for a 10-digit input and only settles into
// the familiar 090-1234-5678 shape at 11 digits; the breakpoints are kept
// as-is pending a product decision. Idempotent by construction.
func FormatPhone(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	if len(digits) > maxPhoneDigits {
		digits = digits[:maxPhoneDigits]
	}
	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 7:
		return digits[:3] + "-" + digits[3:]
	default:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	}
}

// ValidatePhone checks the canonical three-group hyphenated shape. It runs
// against the formatted value, not raw keystrokes.
func ValidatePhone(value string) *FieldError {
	if phonePattern.MatchString(value) {
		return nil
	}
	return &FieldError{
		Message: "Enter a phone number as three hyphen-separated digit groups.\nGood: 090-1234-5678\nBad: 09012345678",
	}
}

// FormatCurrency strips non-digits and re-renders the amount with a yen glyph
// and thousands separators. An empty result means "not provided".
func FormatCurrency(raw string) string {
	digits := nonDigit.ReplaceAllString(raw, "")
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		if strings.ContainsAny(raw, "0123456789") {
			digits = "0"
		} else {
			return ""
		}
	}
	return "¥" + groupThousands(digits)
}

// ParseCurrency extracts the integer amount from free text. ok is false when
// no digits are present.
func ParseCurrency(raw string) (amount int64, ok bool) {
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		amount = amount*10 + int64(r-'0')
	}
	return amount, true
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
