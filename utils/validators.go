package utils

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// ValidateEmail reports whether s looks like an email address: a single @
// with a dotted domain after it. No normalization is performed.
func ValidateEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidatePhone reports whether s is a valid Indian mobile number:
// exactly 10 digits, first digit 6-9.
func ValidatePhone(s string) bool {
	return phoneRe.MatchString(s)
}

// SanitizeInput trims surrounding whitespace and strips the literal < and >
// characters so free text cannot smuggle markup into the notification email.
// It does not escape quotes or ampersands; callers must not rely on it for
// full HTML safety.
func SanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "<", "")
	return strings.ReplaceAll(s, ">", "")
}

// TruncateText shortens text to at most length runes, appending "..." when cut
func TruncateText(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length]) + "..."
}
