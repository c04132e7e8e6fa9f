package utils

import "strings"

// SanitizeText trims whitespace and strips control characters from
// free-text input (notes, reasons, addresses).
func SanitizeText(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SanitizeTextPtr applies SanitizeText in place to an optional field.
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}
