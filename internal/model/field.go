package model

// FieldKey identifies a logical label field. The set is closed: every key
// has a display name and a comparison kind, checked exhaustively at compile
// time rather than through a runtime string map.
type FieldKey string

const (
	FieldBrand             FieldKey = "brand"
	FieldClassType         FieldKey = "class_type"
	FieldABV               FieldKey = "abv"
	FieldNetContents       FieldKey = "net_contents"
	FieldProducer          FieldKey = "producer"
	FieldCountry           FieldKey = "country"
	FieldGovernmentWarning FieldKey = "government_warning"
)

// OrdinaryFieldKeys returns the six comparable fields in display order.
// The government warning is validated separately.
func OrdinaryFieldKeys() []FieldKey {
	return []FieldKey{
		FieldBrand,
		FieldClassType,
		FieldABV,
		FieldNetContents,
		FieldProducer,
		FieldCountry,
	}
}

// AllFieldKeys returns every mergeable field, warning included.
func AllFieldKeys() []FieldKey {
	return append(OrdinaryFieldKeys(), FieldGovernmentWarning)
}

// DisplayName returns the human-readable label for a field.
func (k FieldKey) DisplayName() string {
	switch k {
	case FieldBrand:
		return "Brand Name"
	case FieldClassType:
		return "Class/Type"
	case FieldABV:
		return "Alcohol Content"
	case FieldNetContents:
		return "Net Contents"
	case FieldProducer:
		return "Bottler/Producer"
	case FieldCountry:
		return "Country of Origin"
	case FieldGovernmentWarning:
		return "Government Warning"
	}
	return string(k)
}

// Numeric reports whether the field is compared as a quantity rather
// than as text.
func (k FieldKey) Numeric() bool {
	return k == FieldABV || k == FieldNetContents
}
