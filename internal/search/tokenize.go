// tokenize.go splits a raw search string into terms for structured
// full-text queries.

package search

import (
	"strings"
	"unicode"
)

// Tokenize strips punctuation and collapses whitespace, returning the
// remaining words in order. Case is left alone; case-insensitive matching
// belongs to the store. Duplicate words are dropped since a conjunction
// gains nothing from repeating a term.
func Tokenize(query string) []string {
	words := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r)
	})
	seen := make(map[string]bool, len(words))
	terms := words[:0]
	for _, w := range words {
		k := strings.ToLower(w)
		if seen[k] {
			continue
		}
		seen[k] = true
		terms = append(terms, w)
	}
	return terms
}
