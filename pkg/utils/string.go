// Package utils provides small text helpers shared by the pipeline stages.
package utils

import (
	"strings"
	"unicode"
)

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims the ends.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TitleCase upper-cases the first letter of every alphabetic run and
// lower-cases the rest, so "LACKAWANNA" and "mcKean" both round-trip
// through a predictable base form.
func TitleCase(str string) string {
	var b strings.Builder

	b.Grow(len(str))

	prevLetter := false

	for _, r := range str {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			prevLetter = false
		}
	}

	return b.String()
}

// TruncateString truncates a string to maxLength runes, appending an
// ellipsis marker when it shortens anything.
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
