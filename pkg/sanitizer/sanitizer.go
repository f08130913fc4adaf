// Package sanitizer normalizes user supplied strings before validation and storage.
package sanitizer

import (
	"regexp"
	"strings"
	"unicode"
)

var dots = regexp.MustCompile(`\.{2,}`)

// NormalizeEmail trims and lowercases an address and collapses repeated
// dots in its local part. Input that is not addr@domain is only trimmed
// and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dots.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// CleanName strips control characters and collapses runs of whitespace.
func CleanName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
