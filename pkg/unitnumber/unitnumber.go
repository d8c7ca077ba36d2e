// Package unitnumber canonicalizes free-text unit labels ("12 A", " 12a ")
// into the key used for uniqueness checks and lookups. The raw label is kept
// separately for display.
package unitnumber

import (
	"strings"
	"unicode"
)

// Normalize trims, lowercases and strips every whitespace rune from raw.
// It is total and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, lowered)
}
