package merge

import (
	"sort"

	"github.com/copperworks/labelcheck/internal/model"
)

// AggregateFormatting combines per-image warning-header observations into
// one worst-case summary. A false "compliant" verdict is costlier than a
// false "needs review", so every rule keeps the least favorable evidence,
// except bold detection where any positive sighting counts: a glare or an
// angled panel can hide weight that another shot shows clearly.
// Returns nil when no image observed anything.
func AggregateFormatting(sources []model.SourceExtraction) *model.FormattingObservations {
	agg := model.FormattingObservations{
		IsUppercase: model.TriUnknown,
		IsBold:      model.TriUnknown,
		FontSize:    model.FontUnknown,
		Visibility:  model.VisibilityUnknown,
	}
	contributed := make(map[int]bool)

	for _, src := range sources {
		f := src.Extraction.Formatting
		if !f.HasObservation() {
			continue
		}
		contributed[src.ImageIndex] = true

		// Uppercase: an explicit lowercase sighting wins over everything.
		switch f.IsUppercase {
		case model.TriNotDetected:
			agg.IsUppercase = model.TriNotDetected
		case model.TriDetected:
			if agg.IsUppercase != model.TriNotDetected {
				agg.IsUppercase = model.TriDetected
			}
		}

		// Bold: any positive sighting wins.
		switch f.IsBold {
		case model.TriDetected:
			agg.IsBold = model.TriDetected
		case model.TriNotDetected:
			if agg.IsBold != model.TriDetected {
				agg.IsBold = model.TriNotDetected
			}
		}

		if f.FontSize != "" {
			agg.FontSize = model.WorseFontSize(agg.FontSize, f.FontSize)
		}
		if f.Visibility != "" {
			agg.Visibility = model.WorseVisibility(agg.Visibility, f.Visibility)
		}
	}

	if len(contributed) == 0 {
		return nil
	}

	for idx := range contributed {
		agg.SourceImageIndices = append(agg.SourceImageIndices, idx)
	}
	sort.Ints(agg.SourceImageIndices)

	return &agg
}
