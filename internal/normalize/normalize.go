// Package normalize provides utilities for sanitizing free-text catalog fields.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Text sanitizes a free-text field:
//   - drops null bytes
//   - composes Unicode to NFC so "é" typed two ways compares equal
//   - collapses runs of whitespace to a single space
//   - trims surrounding whitespace
func Text(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(sanitizeString(raw))
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
