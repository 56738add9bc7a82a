package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit is the inferred measurement unit of a label quantity.
type Unit string

const (
	UnitUnknown    Unit = "unknown"
	UnitPercent    Unit = "percent"
	UnitProof      Unit = "proof"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "liter"
	UnitOunce      Unit = "ounce"
)

// Quantity is a numeric magnitude with an inferred unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

const millilitersPerOunce = 29.5735

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParseQuantity extracts the first numeric token from free-form label text
// like "40% ABV" or "750 ml" and infers the unit from the surrounding text.
// Returns ok=false when no numeric token is present.
func ParseQuantity(s string) (Quantity, bool) {
	match := numberRe.FindString(s)
	if match == "" {
		return Quantity{}, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return Quantity{}, false
	}
	return Quantity{Value: value, Unit: inferUnit(s)}, true
}

func inferUnit(s string) Unit {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "%"),
		strings.Contains(lower, "percent"),
		strings.Contains(lower, "abv"),
		strings.Contains(lower, "alc"):
		return UnitPercent
	case strings.Contains(lower, "proof"):
		return UnitProof
	case strings.Contains(lower, "ml"), strings.Contains(lower, "millilit"):
		return UnitMilliliter
	case strings.Contains(lower, "oz"), strings.Contains(lower, "ounce"):
		return UnitOunce
	case strings.Contains(lower, "l"):
		return UnitLiter
	}
	return UnitUnknown
}

// ABVPercent converts the quantity to alcohol-by-volume percent. Proof
// divides by two; an unknown unit is assumed to already be percent.
// converted reports whether a unit conversion happened.
func (q Quantity) ABVPercent() (value float64, converted bool) {
	if q.Unit == UnitProof {
		return q.Value / 2, true
	}
	return q.Value, false
}

// Milliliters converts the quantity to milliliters. An unknown unit is
// treated as milliliters, the customary unit for bare net-contents numbers.
func (q Quantity) Milliliters() float64 {
	switch q.Unit {
	case UnitLiter:
		return q.Value * 1000
	case UnitOunce:
		return q.Value * millilitersPerOunce
	default:
		return q.Value
	}
}
