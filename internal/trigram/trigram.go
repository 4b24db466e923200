// trigram.go scores string similarity by overlap of three-character grams.
//
// The extraction rules follow PostgreSQL's pg_trgm so that scores match what
// a catalog migrated from Postgres would have produced: text is case-folded,
// split into words on anything that is not a letter or digit, and each word
// is padded with two leading spaces and one trailing space before grams are
// taken. Similarity is the size of the intersection of the two gram sets over
// the size of their union.
//
// Unlike pg_trgm, diacritics are removed before extraction, so "café" and
// "cafe" produce the same grams. The full-text index strips diacritics too,
// and keeping the two stages consistent avoids a typo matching where the
// exact spelling did not.

package trigram

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is pg_trgm's default similarity_threshold.
const DefaultThreshold = 0.3

// Set is an unordered collection of distinct trigrams.
type Set map[string]struct{}

var folder = cases.Fold()

// Normalise case-folds s and strips combining marks.
func Normalise(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(out)
}

// Words splits normalised text into alphanumeric words.
func Words(s string) []string {
	return strings.FieldsFunc(Normalise(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Extract returns the trigram set of s.
func Extract(s string) Set {
	set := make(Set)
	for _, w := range Words(s) {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// Similarity returns a score in [0, 1]. Two strings without any grams score
// zero, including two empty strings.
func Similarity(a, b string) float64 {
	return Compare(Extract(a), Extract(b))
}

// Compare scores two pre-extracted sets. Callers comparing one query against
// many values should extract the query once and use this.
func Compare(a, b Set) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	common := 0
	for g := range small {
		if _, ok := large[g]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union)
}
