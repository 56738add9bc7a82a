package compare

import (
	"fmt"
	"math"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/normalize"
)

// NumericKind selects the comparison rules for a numeric field.
type NumericKind string

const (
	KindABV         NumericKind = "abv"
	KindNetContents NumericKind = "net_contents"
)

// ABV comparison bands, in percentage points.
const (
	abvExactTolerance = 0.1
	abvReviewBand     = 1.0
)

// Net-contents comparison bands.
const (
	mlExactTolerance = 1.0
	ratioExactLow    = 0.99
	ratioExactHigh   = 1.01
	ratioCloseLow    = 0.95
	ratioCloseHigh   = 1.05
	// Unit-confusion detection: a ratio near 1000 (or its inverse) almost
	// always means one side was read in liters and the other in ml.
	confusionHighLow    = 990.0
	confusionHighHigh   = 1010.0
	confusionLowCenter  = 0.001
	confusionLowEpsilon = 0.0001
)

// Numeric compares an extracted quantity against an expected one with
// unit awareness: proof converts to percent for ABV, and ml/L/oz all
// convert to milliliters for net contents.
func Numeric(extracted, expected string, kind NumericKind) Comparison {
	if c, done := checkEmpty(extracted, expected); done {
		return c
	}

	qe, okE := normalize.ParseQuantity(extracted)
	qx, okX := normalize.ParseQuantity(expected)
	if !okE || !okX {
		if normalize.Fold(extracted) == normalize.Fold(expected) {
			return Comparison{Status: model.StatusPass}
		}
		return Comparison{
			Status: model.StatusNeedsReview,
			Reason: "Unable to parse numeric value - manual review required",
		}
	}

	if kind == KindABV {
		return compareABV(qe, qx)
	}
	return compareNetContents(qe, qx, extracted, expected)
}

func compareABV(extracted, expected normalize.Quantity) Comparison {
	ev, convE := extracted.ABVPercent()
	xv, convX := expected.ABVPercent()
	diff := math.Abs(ev - xv)

	switch {
	case diff < abvExactTolerance:
		if convE || convX {
			return Comparison{Status: model.StatusPass, Reason: "Matched after proof/percent conversion"}
		}
		return Comparison{Status: model.StatusPass}
	case diff < abvReviewBand:
		return Comparison{
			Status: model.StatusNeedsReview,
			Reason: fmt.Sprintf("ABV differs slightly: %s%% vs %s%%", formatNum(ev), formatNum(xv)),
		}
	default:
		return Comparison{
			Status: model.StatusFail,
			Reason: fmt.Sprintf("ABV mismatch: expected %s%% but found %s%%", formatNum(xv), formatNum(ev)),
		}
	}
}

func compareNetContents(extracted, expected normalize.Quantity, rawExtracted, rawExpected string) Comparison {
	ev, xv := extracted.Milliliters(), expected.Milliliters()

	if math.Abs(ev-xv) <= mlExactTolerance {
		return Comparison{Status: model.StatusPass}
	}
	if xv == 0 {
		return Comparison{
			Status: model.StatusFail,
			Reason: fmt.Sprintf("Net contents mismatch: expected %q but found %q", rawExpected, rawExtracted),
		}
	}

	ratio := ev / xv
	switch {
	case ratio >= ratioExactLow && ratio <= ratioExactHigh:
		return Comparison{Status: model.StatusPass}
	// Unit confusion is checked before the close-ratio band so the user
	// sees the more specific message when both could apply.
	case (ratio >= confusionHighLow && ratio <= confusionHighHigh) ||
		math.Abs(ratio-confusionLowCenter) < confusionLowEpsilon:
		return Comparison{
			Status: model.StatusNeedsReview,
			Reason: "Possible unit confusion (L vs ml) - manual review required",
		}
	case ratio >= ratioCloseLow && ratio <= ratioCloseHigh:
		return Comparison{
			Status: model.StatusNeedsReview,
			Reason: fmt.Sprintf("Net contents differ slightly: %sml vs %sml", formatNum(ev), formatNum(xv)),
		}
	default:
		return Comparison{
			Status: model.StatusFail,
			Reason: fmt.Sprintf("Net contents mismatch: expected %q but found %q", rawExpected, rawExtracted),
		}
	}
}

// formatNum renders a float without trailing zeros: 40 not 40.000000.
func formatNum(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
