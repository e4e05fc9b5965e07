// Package phone canonicalizes and validates recipient phone numbers.
package phone

import (
	"regexp"
	"strings"
)

const minDigits = 7

var (
	separators  = regexp.MustCompile(`[\s\-()]`)
	validNumber = regexp.MustCompile(`^\+?[\d\s()\-]+$`)
)

// Normalize strips spaces, dashes and parentheses: "+1 (555) 123-4567" becomes "+15551234567".
func Normalize(raw string) string {
	return separators.ReplaceAllString(strings.TrimSpace(raw), "")
}

// IsValid reports whether raw looks like a dialable number: digits and
// separators only, with at least seven digits.
func IsValid(raw string) bool {
	raw = strings.TrimSpace(raw)
	if !validNumber.MatchString(raw) {
		return false
	}
	return len(strings.TrimPrefix(Normalize(raw), "+")) >= minDigits
}

// ParseCSV extracts recipients from CSV text. Only the first column of each
// line is read, surrounding quotes are dropped and invalid entries (including
// a header row) are skipped.
func ParseCSV(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		first, _, _ := strings.Cut(line, ",")
		first = strings.Trim(strings.TrimSpace(first), `"'`)
		if first != "" && IsValid(first) {
			out = append(out, strings.TrimSpace(first))
		}
	}
	return out
}
