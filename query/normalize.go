// Package query turns raw user questions into canonical retrieval input:
// normalization, intent classification, and query rewriting.
package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes free text for comparison: lowercase, diacritics
// stripped via canonical decomposition, non-alphanumerics replaced with
// spaces, whitespace collapsed, and leading/trailing space trimmed.
// It is idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)

	// Canonical decomposition, then drop combining marks so "é" becomes "e".
	decomposed := norm.NFD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the whitespace-separated tokens of the normalized text.
func Tokens(text string) []string {
	return strings.Fields(Normalize(text))
}

// TokenSet returns the unique normalized tokens of the text.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokens(text) {
		set[tok] = true
	}
	return set
}
