// Package sanitizer normalizes customer input before validation and storage.
// All functions are idempotent.
package sanitizer

import (
	"strings"
	"unicode"
)

// NormalizeName trims and collapses internal whitespace. "  Ahmed   Ali " -> "Ahmed Ali".
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

// NormalizePhone strips everything that is not a digit. Validation of the
// resulting digit string (length, prefix) is the validator's job, not ours.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

// NormalizeSlotTime truncates a stored HH:MM:SS time to the HH:MM slot value.
func NormalizeSlotTime(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}
