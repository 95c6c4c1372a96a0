package domain

import (
	"strings"
	"unicode/utf8"
)

// NormalizeText trims the text, lowercases it and collapses every run of
// whitespace (spaces, tabs, newlines) into a single space.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// TruncateRunes returns the first n runes of s. Shorter strings are returned
// unchanged.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Preview returns at most n runes of s followed by "..." when s was cut.
func Preview(s string, n int) string {
	cut := TruncateRunes(s, n)
	if len(cut) < len(s) {
		return cut + "..."
	}
	return cut
}
