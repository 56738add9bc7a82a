package model

// FieldStatus is the verdict for a single validated field.
type FieldStatus string

const (
	// StatusPass means the extracted value satisfies the requirement.
	StatusPass FieldStatus = "pass"
	// StatusFail means a confident mismatch against a required or expected value.
	StatusFail FieldStatus = "fail"
	// StatusNeedsReview means the evidence is ambiguous and a human must decide.
	StatusNeedsReview FieldStatus = "needs_review"
	// StatusMissing means no value was found for the field on the label.
	StatusMissing FieldStatus = "missing"
	// StatusNotProvided means the label has a value but the user supplied
	// nothing to compare it against. Informational, not a failure.
	StatusNotProvided FieldStatus = "not_provided"
)

// OverallStatus is the application-level verdict. It is coarser than
// FieldStatus: "error" is reserved for total extraction failure and never
// appears at field level.
type OverallStatus string

const (
	OverallPass        OverallStatus = "pass"
	OverallFail        OverallStatus = "fail"
	OverallNeedsReview OverallStatus = "needs_review"
	OverallError       OverallStatus = "error"
)

// TriState is a three-valued observation from the vision model. Consumers
// must handle Unknown explicitly rather than treating it as false.
type TriState string

const (
	TriDetected    TriState = "detected"
	TriNotDetected TriState = "not_detected"
	TriUnknown     TriState = "unknown"
)

// TriFromBool converts a nullable boolean from an extraction payload.
func TriFromBool(b *bool) TriState {
	switch {
	case b == nil:
		return TriUnknown
	case *b:
		return TriDetected
	default:
		return TriNotDetected
	}
}

// BoldStatus is the bold-formatting verdict for the warning header.
type BoldStatus string

const (
	BoldDetected      BoldStatus = "detected"
	BoldNotDetected   BoldStatus = "not_detected"
	BoldManualConfirm BoldStatus = "manual_confirm"
)

// FontSize is the observed size of the warning text relative to the label.
type FontSize string

const (
	FontNormal    FontSize = "normal"
	FontSmall     FontSize = "small"
	FontVerySmall FontSize = "very_small"
	FontUnknown   FontSize = "unknown"
)

// fontSizeRank orders sizes worst-first. Unknown ranks above all observed
// sizes so that any real observation wins during aggregation.
var fontSizeRank = map[FontSize]int{
	FontVerySmall: 0,
	FontSmall:     1,
	FontNormal:    2,
	FontUnknown:   3,
}

// WorseFontSize returns the smaller (worse) of two observed sizes.
func WorseFontSize(a, b FontSize) FontSize {
	if fontSizeRank[a] <= fontSizeRank[b] {
		return a
	}
	return b
}

// Visibility is how prominently the warning appears on the label.
type Visibility string

const (
	VisibilityProminent Visibility = "prominent"
	VisibilityModerate  Visibility = "moderate"
	VisibilitySubtle    Visibility = "subtle"
	VisibilityUnknown   Visibility = "unknown"
)

var visibilityRank = map[Visibility]int{
	VisibilitySubtle:    0,
	VisibilityModerate:  1,
	VisibilityProminent: 2,
	VisibilityUnknown:   3,
}

// WorseVisibility returns the less visible (worse) of two observations.
func WorseVisibility(a, b Visibility) Visibility {
	if visibilityRank[a] <= visibilityRank[b] {
		return a
	}
	return b
}

// ParseFontSize maps a raw extraction string onto the FontSize enum,
// defaulting to unknown for anything unrecognized.
func ParseFontSize(s string) FontSize {
	switch FontSize(s) {
	case FontNormal, FontSmall, FontVerySmall:
		return FontSize(s)
	default:
		return FontUnknown
	}
}

// ParseVisibility maps a raw extraction string onto the Visibility enum,
// defaulting to unknown for anything unrecognized. "normal" is accepted as
// an alias for moderate; vision models drift toward it even when the
// prompt names the enum values.
func ParseVisibility(s string) Visibility {
	switch Visibility(s) {
	case VisibilityProminent, VisibilityModerate, VisibilitySubtle:
		return Visibility(s)
	case "normal":
		return VisibilityModerate
	default:
		return VisibilityUnknown
	}
}
