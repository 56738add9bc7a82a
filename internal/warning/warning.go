// Package warning validates the government health warning statement
// against the wording and formatting rules of 27 CFR part 16.
package warning

import (
	"strings"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/normalize"
)

// Canonical is the exact legally required warning text. It is a compile-time
// constant, not configuration: the wording is fixed by statute.
const Canonical = "GOVERNMENT WARNING: (1) According to the Surgeon General, " +
	"women should not drink alcoholic beverages during pregnancy because of " +
	"the risk of birth defects. (2) Consumption of alcoholic beverages " +
	"impairs your ability to drive a car or operate machinery, and may cause " +
	"health problems."

// UppercasePrefix is the header that must appear in capital letters.
const UppercasePrefix = "GOVERNMENT WARNING:"

// Word-overlap tiers for the wording check. Only the near-exact tier is
// forgiving enough for human review; everything below is a hard fail.
// Regulatory wording leaves no room for paraphrase.
const (
	overlapNearExact = 0.9
	overlapDeviation = 0.7
	overlapUnrelated = 0.3
)

// Validate checks an extracted warning statement. obs carries the
// aggregated visual observations of the warning header and may be nil when
// no image reported any.
func Validate(extracted string, obs *model.FormattingObservations) model.WarningResult {
	if normalize.IsEmptyValue(extracted) {
		return model.WarningResult{
			WordingStatus:   model.StatusMissing,
			UppercaseStatus: model.StatusMissing,
			BoldStatus:      model.BoldManualConfirm,
			OverallStatus:   model.StatusMissing,
			Reason:          "Government warning statement not found on label",
		}
	}

	trimmed := strings.TrimSpace(extracted)
	result := model.WarningResult{ExtractedWarning: trimmed}

	uppercaseStatus, uppercaseReason := checkUppercase(trimmed, obs)
	result.UppercaseStatus = uppercaseStatus

	wordingStatus, wordingReason := checkWording(trimmed)
	result.WordingStatus = wordingStatus

	result.BoldStatus, result.FormattingReason = checkFormatting(obs)
	if obs != nil {
		result.ObservedFontSize = obs.FontSize
		result.ObservedVisibility = obs.Visibility
	}

	combine(&result, wordingReason, uppercaseReason)
	return result
}

// checkUppercase verifies the GOVERNMENT WARNING: header case. A visual
// observation is trusted outright; without one, the extracted text alone
// can prove presence but not case, since text extraction may itself
// normalize capitalization.
func checkUppercase(text string, obs *model.FormattingObservations) (model.FieldStatus, string) {
	if obs != nil && obs.IsUppercase != model.TriUnknown {
		if obs.IsUppercase == model.TriDetected {
			return model.StatusPass, ""
		}
		return model.StatusFail, "Government warning header is not in uppercase on the label"
	}

	if strings.Contains(text, UppercasePrefix) {
		return model.StatusPass, ""
	}
	if strings.Contains(strings.ToUpper(text), UppercasePrefix) {
		return model.StatusNeedsReview,
			`Unable to confirm the "GOVERNMENT WARNING:" header is uppercase on the label`
	}
	return model.StatusFail, `Missing "GOVERNMENT WARNING:" prefix`
}

// checkWording compares the statement against the canonical text after
// whitespace and case normalization, falling back to word-overlap tiers.
func checkWording(text string) (model.FieldStatus, string) {
	if normalize.Fold(text) == normalize.Fold(Canonical) {
		return model.StatusPass, ""
	}

	overlap := normalize.WordOverlap(
		normalize.Words(normalize.StripPunctuation(text)),
		normalize.Words(normalize.StripPunctuation(Canonical)),
	)
	switch {
	case overlap >= overlapNearExact:
		return model.StatusNeedsReview, "Warning text is close to the required wording but not exact"
	case overlap >= overlapDeviation:
		return model.StatusFail, "Warning text has significant deviations from the required wording"
	case overlap >= overlapUnrelated:
		return model.StatusFail, "Warning text does not match the required wording"
	default:
		return model.StatusFail, "Text does not appear to be a valid government warning"
	}
}

// checkFormatting evaluates bold, size, and visibility observations.
// Bold is never resolved in the label's favor without positive detection:
// both "not detected" and "unknown" leave the call to a human.
func checkFormatting(obs *model.FormattingObservations) (model.BoldStatus, string) {
	if obs == nil {
		return model.BoldManualConfirm, ""
	}

	var issues []string
	bold := model.BoldManualConfirm
	switch obs.IsBold {
	case model.TriDetected:
		bold = model.BoldDetected
	case model.TriNotDetected:
		bold = model.BoldNotDetected
		issues = append(issues, "bold formatting not detected on warning header")
	}

	if obs.FontSize == model.FontSmall || obs.FontSize == model.FontVerySmall {
		issues = append(issues, "warning text appears smaller than required")
	}
	if obs.Visibility == model.VisibilitySubtle {
		issues = append(issues, "warning statement has low visibility on the label")
	}

	return bold, strings.Join(issues, "; ")
}

// combine derives the overall warning verdict from the sub-checks.
func combine(r *model.WarningResult, wordingReason, uppercaseReason string) {
	if r.WordingStatus == model.StatusPass && r.UppercaseStatus == model.StatusPass {
		switch {
		case r.BoldStatus != model.BoldDetected:
			r.OverallStatus = model.StatusNeedsReview
			r.Reason = "Manual confirmation required: bold formatting of the warning header could not be verified"
		case r.FormattingReason != "":
			r.OverallStatus = model.StatusNeedsReview
			r.Reason = "Manual review suggested: " + r.FormattingReason
		default:
			r.OverallStatus = model.StatusPass
		}
		return
	}

	if r.WordingStatus == model.StatusFail || r.UppercaseStatus == model.StatusFail {
		r.OverallStatus = model.StatusFail
		r.Reason = joinReasons(wordingReason, uppercaseReason)
		return
	}

	r.OverallStatus = model.StatusNeedsReview
	r.Reason = joinReasons(wordingReason, uppercaseReason)
}

func joinReasons(reasons ...string) string {
	var parts []string
	for _, s := range reasons {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}
