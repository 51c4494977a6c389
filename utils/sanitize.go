// Package utils provides utility functions for the application.
package utils

import (
	"html"
	"strings"
	"unicode"
)

// Sanitize normalizes free text crossing the system boundary. Stored rows and
// user-supplied parameters go through the same routine so both are treated
// identically: control characters are dropped, surrounding whitespace is
// trimmed, and HTML-significant characters are entity-escaped.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return html.EscapeString(strings.TrimSpace(b.String()))
}

// SanitizeSlice sanitizes each element and drops those that come out empty.
func SanitizeSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if clean := Sanitize(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

// EscapeLike escapes LIKE/ILIKE wildcard characters so a search term matches
// literally inside a pattern. The backslash must be escaped first.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
