// Package verify composes per-field comparisons, merge provenance, and the
// warning verdict into one application-level result.
package verify

import (
	"time"

	"github.com/google/uuid"

	"github.com/copperworks/labelcheck/internal/compare"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/normalize"
	"github.com/copperworks/labelcheck/internal/warning"
)

// maxTopReasons caps the reason list on a result.
const maxTopReasons = 3

const processingErrorReason = "Processing error - unable to extract"

// Input carries everything the composer needs for one application.
type Input struct {
	ApplicationID   string
	ApplicationName string
	Merged          model.MergedExtraction
	// Expected may be nil for label-only verification.
	Expected   *model.ExpectedValues
	ImageCount int
	Elapsed    time.Duration
}

// Compose validates the six ordinary fields and the government warning and
// derives the overall verdict. The result is a pure function of the input;
// it is never influenced by prior runs.
func Compose(in Input) model.ApplicationResult {
	result := model.ApplicationResult{
		ID:               uuid.New().String(),
		ApplicationID:    in.ApplicationID,
		ApplicationName:  in.ApplicationName,
		ProcessingTimeMs: in.Elapsed.Milliseconds(),
		ImageCount:       in.ImageCount,
	}

	for _, key := range model.OrdinaryFieldKeys() {
		result.FieldResults = append(result.FieldResults, composeField(key, in))
	}

	warningText := in.Merged.Fields[model.FieldGovernmentWarning]
	result.Warning = warning.Validate(warningText, in.Merged.Formatting)

	result.OverallStatus = deriveOverall(result.FieldResults, result.Warning, in.Expected)
	result.TopReasons = topReasons(result.FieldResults, result.Warning, result.OverallStatus)

	return result
}

func composeField(key model.FieldKey, in Input) model.FieldResult {
	extracted := in.Merged.Fields[key]
	expected := in.Expected.FieldValue(key)

	var cmp compare.Comparison
	if key.Numeric() {
		kind := compare.KindABV
		if key == model.FieldNetContents {
			kind = compare.KindNetContents
		}
		cmp = compare.Numeric(extracted, expected, kind)
	} else {
		cmp = compare.Text(extracted, expected)
	}

	fr := model.FieldResult{
		FieldKey:       key,
		FieldName:      key.DisplayName(),
		ExtractedValue: extracted,
		ExpectedValue:  expected,
		Status:         cmp.Status,
		Reason:         cmp.Reason,
	}

	prov := in.Merged.Provenance[key]
	if prov.NeedsReview {
		fr.Candidates = prov.ConflictingCandidates
		fr.SourceImageIndices = prov.ConflictingSourceIndices
		// A cross-image conflict always demands a human look, even when the
		// chosen value happens to match the expected one.
		if fr.Status == model.StatusPass {
			fr.Status = model.StatusNeedsReview
			fr.Reason = prov.ReviewReason
		}
	} else if prov.SourceIndex >= 0 {
		fr.SourceImageIndices = []int{prov.SourceIndex}
	}

	return fr
}

// deriveOverall applies the strict priority: any failure sinks the
// application, any review item holds it, otherwise it passes. A field
// missing from the label only fails the application when the user supplied
// an expected value for it; the warning is required unconditionally.
func deriveOverall(fields []model.FieldResult, w model.WarningResult, expected *model.ExpectedValues) model.OverallStatus {
	anyReview := false

	if w.OverallStatus == model.StatusFail || w.OverallStatus == model.StatusMissing {
		return model.OverallFail
	}
	if w.OverallStatus == model.StatusNeedsReview {
		anyReview = true
	}

	for _, fr := range fields {
		switch fr.Status {
		case model.StatusFail:
			return model.OverallFail
		case model.StatusMissing:
			// Presence follows the same placeholder rules as the field
			// comparison, so an expected column filled with "N/A" never
			// demands the field on the label.
			if !normalize.IsEmptyValue(expected.FieldValue(fr.FieldKey)) {
				return model.OverallFail
			}
		case model.StatusNeedsReview:
			anyReview = true
		}
	}

	if anyReview {
		return model.OverallNeedsReview
	}
	return model.OverallPass
}

// topReasons collects failure reasons first, then review reasons, capped
// at three. The warning's failure reason always leads the list.
func topReasons(fields []model.FieldResult, w model.WarningResult, overall model.OverallStatus) []string {
	var failures, reviews []string

	for _, fr := range fields {
		switch fr.Status {
		case model.StatusFail:
			if fr.Reason != "" {
				failures = append(failures, fr.Reason)
			}
		case model.StatusNeedsReview:
			if fr.Reason != "" {
				reviews = append(reviews, fr.Reason)
			}
		}
	}

	switch w.OverallStatus {
	case model.StatusFail, model.StatusMissing:
		if w.Reason != "" {
			failures = append([]string{w.Reason}, failures...)
		}
	case model.StatusNeedsReview:
		if w.Reason != "" {
			reviews = append(reviews, w.Reason)
		}
	}

	combined := append(failures, reviews...)
	if len(combined) > maxTopReasons {
		combined = combined[:maxTopReasons]
	}
	if len(combined) == 0 && overall == model.OverallPass {
		combined = []string{"All validated fields match"}
	}
	return combined
}

// ErrorResult builds a fully formed result for total extraction failure:
// every image in the application failed to produce any extraction. Callers
// use this instead of the merge path so downstream consumers still get a
// complete, renderable record.
func ErrorResult(applicationID, applicationName, errorMessage string, imageCount int, elapsed time.Duration) model.ApplicationResult {
	result := model.ApplicationResult{
		ID:               uuid.New().String(),
		ApplicationID:    applicationID,
		ApplicationName:  applicationName,
		OverallStatus:    model.OverallError,
		TopReasons:       []string{errorMessage},
		ProcessingTimeMs: elapsed.Milliseconds(),
		ImageCount:       imageCount,
		ErrorMessage:     errorMessage,
	}

	for _, key := range model.OrdinaryFieldKeys() {
		result.FieldResults = append(result.FieldResults, model.FieldResult{
			FieldKey:  key,
			FieldName: key.DisplayName(),
			Status:    model.StatusMissing,
			Reason:    processingErrorReason,
		})
	}

	result.Warning = model.WarningResult{
		WordingStatus:   model.StatusMissing,
		UppercaseStatus: model.StatusMissing,
		BoldStatus:      model.BoldManualConfirm,
		OverallStatus:   model.StatusMissing,
		Reason:          processingErrorReason,
	}

	return result
}
