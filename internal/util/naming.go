package util

import (
	"regexp"
	"strings"
)

var unsafeRunesRegexp = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

const maxSubjectLength = 48

// SanitizeSubject turns a commit subject line into a string that is safe to
// embed in a file name. Unsafe runes are substituted, never rejected, so any
// subject yields a usable name.
func SanitizeSubject(subject string) string {
	safe := unsafeRunesRegexp.ReplaceAllString(strings.TrimSpace(subject), "_")
	safe = strings.Trim(safe, "_")

	if len(safe) > maxSubjectLength {
		safe = safe[:maxSubjectLength]
		safe = strings.TrimRight(safe, "_")
	}
	if safe == "" {
		return "patch"
	}
	return safe
}
