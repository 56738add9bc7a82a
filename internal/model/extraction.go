package model

// RawExtraction holds the field guesses the vision model produced for one
// label image. Empty strings mean the field was not found on that image.
type RawExtraction struct {
	BrandName         string `json:"brand_name,omitempty"`
	ClassType         string `json:"class_type,omitempty"`
	AlcoholContent    string `json:"alcohol_content,omitempty"`
	NetContents       string `json:"net_contents,omitempty"`
	BottlerProducer   string `json:"bottler_producer,omitempty"`
	CountryOfOrigin   string `json:"country_of_origin,omitempty"`
	GovernmentWarning string `json:"government_warning,omitempty"`

	// Confidence is the model's self-reported confidence in [0,1]. The
	// extraction boundary clamps out-of-range values and substitutes 0.5
	// when the model omits it.
	Confidence float64 `json:"confidence"`

	// Formatting holds visual observations about the warning header, when
	// the image shows it.
	Formatting *WarningFormatting `json:"formatting,omitempty"`
}

// FieldValue returns the raw string for a logical field key.
func (e RawExtraction) FieldValue(k FieldKey) string {
	switch k {
	case FieldBrand:
		return e.BrandName
	case FieldClassType:
		return e.ClassType
	case FieldABV:
		return e.AlcoholContent
	case FieldNetContents:
		return e.NetContents
	case FieldProducer:
		return e.BottlerProducer
	case FieldCountry:
		return e.CountryOfOrigin
	case FieldGovernmentWarning:
		return e.GovernmentWarning
	}
	return ""
}

// WarningFormatting is one image's visual observations of the warning header.
type WarningFormatting struct {
	IsUppercase TriState   `json:"is_uppercase"`
	IsBold      TriState   `json:"is_bold"`
	FontSize    FontSize   `json:"font_size"`
	Visibility  Visibility `json:"visibility"`
}

// HasObservation reports whether at least one of the four observations is
// an actual observation rather than unknown.
func (f *WarningFormatting) HasObservation() bool {
	if f == nil {
		return false
	}
	return f.IsUppercase != TriUnknown ||
		f.IsBold != TriUnknown ||
		(f.FontSize != FontUnknown && f.FontSize != "") ||
		(f.Visibility != VisibilityUnknown && f.Visibility != "")
}

// SourceExtraction pairs a per-image extraction with that image's 0-based
// position among the application's images. Positions are preserved even
// when some images fail to extract, so provenance indices stay meaningful.
type SourceExtraction struct {
	ImageIndex int           `json:"image_index"`
	Extraction RawExtraction `json:"extraction"`
}

// ExpectedValues holds the user-supplied values to verify the label against.
// A nil *ExpectedValues means label-only mode: nothing to compare, every
// ordinary field reports NotProvided (or Missing when absent on the label).
type ExpectedValues struct {
	BrandName       string `json:"brand_name,omitempty" yaml:"brand_name"`
	ClassType       string `json:"class_type,omitempty" yaml:"class_type"`
	AlcoholContent  string `json:"alcohol_content,omitempty" yaml:"alcohol_content"`
	NetContents     string `json:"net_contents,omitempty" yaml:"net_contents"`
	BottlerProducer string `json:"bottler_producer,omitempty" yaml:"bottler_producer"`
	CountryOfOrigin string `json:"country_of_origin,omitempty" yaml:"country_of_origin"`
}

// FieldValue returns the expected value for a field key. Safe on a nil
// receiver, which represents label-only mode.
func (e *ExpectedValues) FieldValue(k FieldKey) string {
	if e == nil {
		return ""
	}
	switch k {
	case FieldBrand:
		return e.BrandName
	case FieldClassType:
		return e.ClassType
	case FieldABV:
		return e.AlcoholContent
	case FieldNetContents:
		return e.NetContents
	case FieldProducer:
		return e.BottlerProducer
	case FieldCountry:
		return e.CountryOfOrigin
	}
	return ""
}
