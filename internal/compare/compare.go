// Package compare holds the per-field comparators that check an extracted
// label value against an optional user-supplied expected value.
package compare

import (
	"fmt"
	"strings"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/normalize"
)

// Comparison is the outcome of comparing one field.
type Comparison struct {
	Status model.FieldStatus
	Reason string
}

// Containment thresholds for the loose text-matching tiers.
const (
	containSimilarRatio = 0.8
	containDiffersRatio = 0.5
	wordMatchRatio      = 0.7
)

// Text compares an extracted text value against an expected one, working
// from strict to loose: exact equality, then case/whitespace folding, then
// punctuation stripping, then accent stripping, then containment and
// word-level fuzzy matching. Only the strict tiers can pass; the loose
// tiers hand the call to a human.
func Text(extracted, expected string) Comparison {
	if c, done := checkEmpty(extracted, expected); done {
		return c
	}

	if extracted == expected {
		return Comparison{Status: model.StatusPass}
	}

	ne, nx := normalize.Fold(extracted), normalize.Fold(expected)
	if ne == nx {
		return Comparison{Status: model.StatusPass}
	}

	ne, nx = normalize.StripPunctuation(ne), normalize.StripPunctuation(nx)
	if ne == nx {
		return Comparison{Status: model.StatusPass}
	}

	ne, nx = normalize.StripAccents(ne), normalize.StripAccents(nx)
	if ne == nx {
		return Comparison{Status: model.StatusPass}
	}

	if c, ok := checkContainment(ne, nx); ok {
		return c
	}
	if c, ok := checkWordMatch(ne, nx); ok {
		return c
	}

	return Comparison{
		Status: model.StatusFail,
		Reason: fmt.Sprintf("Expected %q but found %q", expected, extracted),
	}
}

// checkEmpty handles the absent-value cases shared by both comparators.
// done is true when the comparison is already decided.
func checkEmpty(extracted, expected string) (Comparison, bool) {
	extractedEmpty := normalize.IsEmptyValue(extracted)
	expectedEmpty := normalize.IsEmptyValue(expected)

	switch {
	case expectedEmpty && extractedEmpty:
		return Comparison{Status: model.StatusMissing, Reason: "Not found on label"}, true
	case expectedEmpty:
		// Label-only mode: a value exists but there is nothing to compare
		// it against. Informational, not a compliance failure.
		return Comparison{Status: model.StatusNotProvided, Reason: "No expected value provided"}, true
	case extractedEmpty:
		return Comparison{Status: model.StatusMissing, Reason: "Not found on label"}, true
	}
	return Comparison{}, false
}

// checkContainment applies the substring tier on fully normalized values.
func checkContainment(a, b string) (Comparison, bool) {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(longer) == 0 || !strings.Contains(longer, shorter) {
		return Comparison{}, false
	}

	ratio := float64(len(shorter)) / float64(len(longer))
	switch {
	case ratio >= containSimilarRatio:
		return Comparison{Status: model.StatusNeedsReview, Reason: "Values are similar but not exact"}, true
	case ratio >= containDiffersRatio:
		return Comparison{Status: model.StatusNeedsReview, Reason: "Extracted value differs significantly from expected"}, true
	}
	return Comparison{}, false
}

// checkWordMatch applies word-level fuzzy matching for multi-word values.
// Words match when equal or when one contains the other.
func checkWordMatch(a, b string) (Comparison, bool) {
	wa, wb := strings.Fields(a), strings.Fields(b)
	if len(wa) < 2 || len(wb) < 2 {
		return Comparison{}, false
	}

	longer := len(wa)
	if len(wb) > longer {
		longer = len(wb)
	}

	var matches int
	used := make([]bool, len(wb))
	for _, w := range wa {
		for j, v := range wb {
			if used[j] {
				continue
			}
			if w == v || strings.Contains(w, v) || strings.Contains(v, w) {
				used[j] = true
				matches++
				break
			}
		}
	}

	if float64(matches)/float64(longer) >= wordMatchRatio {
		return Comparison{Status: model.StatusNeedsReview, Reason: "Partial match - please verify"}, true
	}
	return Comparison{}, false
}
