// Package normalize provides the pure string and quantity utilities the
// comparison engine is built on.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IsEmptyValue reports whether an extraction value carries no information:
// blank after trimming, or the literal "null"/"n/a" the vision model emits
// for fields it could not find.
func IsEmptyValue(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return true
	}
	switch strings.ToLower(t) {
	case "null", "n/a":
		return true
	}
	return false
}

// CollapseWhitespace trims and collapses runs of whitespace to single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Fold lowercases and collapses whitespace. This is the baseline
// normalization used for equivalence clustering and wording comparison.
func Fold(s string) string {
	return strings.ToLower(CollapseWhitespace(s))
}

// StripPunctuation removes everything except letters, digits, and spaces,
// then collapses whitespace again since stripped runs can leave gaps.
func StripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return CollapseWhitespace(b.String())
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripAccents removes diacritical marks: "Añejo" becomes "Anejo".
// Returns the input unchanged if the transform fails.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// Words splits a folded string into its words.
func Words(s string) []string {
	return strings.Fields(Fold(s))
}

// WordOverlap computes |reference words present in candidate| / |reference
// words|, the asymmetric overlap used for warning-wording comparison.
// Returns 0 when the reference has no words.
func WordOverlap(candidate, reference []string) float64 {
	if len(reference) == 0 {
		return 0
	}
	present := make(map[string]bool, len(candidate))
	for _, w := range candidate {
		present[w] = true
	}
	var hits int
	for _, w := range reference {
		if present[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(reference))
}
