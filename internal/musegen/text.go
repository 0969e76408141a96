package musegen

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeSpace collapses whitespace runs to single spaces and trims the ends
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// capitalize upper-cases the first character only
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncateRunes returns at most n characters of s
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// at returns items[i], falling back to the last item when the draw came up short
func at(items []string, i int) string {
	if len(items) == 0 {
		return ""
	}
	if i >= len(items) {
		return items[len(items)-1]
	}
	return items[i]
}
