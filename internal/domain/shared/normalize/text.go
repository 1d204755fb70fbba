package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Truncate keeps at most n runes of s. Input is NFC-normalized first so a
// combining sequence counts the way it renders. Strings already within the
// ceiling are returned unchanged.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	s = norm.NFC.String(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// RuneLen counts the runes of s after NFC normalization, the measure
// Truncate cuts against.
func RuneLen(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// Digits strips every non-digit character.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Fold returns the case-folded form of s for case-insensitive matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// NonEmpty reports whether s has any non-whitespace content.
func NonEmpty(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) != ""
}

// Coalesce returns the first non-empty string.
func Coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
