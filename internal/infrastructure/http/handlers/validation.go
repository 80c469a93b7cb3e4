package handlers

import "strings"

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	MinPasswordLength = 6
	MaxRefreshToken   = 1024
)

// SanitizeEmail trims and lowercases an email; returns empty if over max
// length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizeName trims a display name.
func SanitizeName(name string) string {
	return strings.TrimSpace(name)
}

// TruncateRefreshToken caps a client-supplied token at MaxRefreshToken.
func TruncateRefreshToken(tok string) string {
	if len(tok) > MaxRefreshToken {
		return tok[:MaxRefreshToken]
	}
	return tok
}
