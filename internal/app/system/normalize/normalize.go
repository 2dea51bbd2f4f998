// internal/app/system/normalize/normalize.go

// Package normalize provides input normalization helpers used by stores and
// handlers. All functions take and return plain strings; nothing here
// mutates shared state.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Email lowercases and trims an email address so lookups and the unique
// index see one canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace from a display name.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// TitleCase uppercases the first letter of each word and lowercases the
// rest ("moe szyslak" -> "Moe Szyslak").
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

// Capitalize uppercases the first letter and lowercases the remainder of
// the whole string.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
