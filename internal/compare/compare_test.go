package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copperworks/labelcheck/internal/model"
)

func TestText_EmptyHandling(t *testing.T) {
	tests := []struct {
		name       string
		extracted  string
		expected   string
		wantStatus model.FieldStatus
	}{
		{"both empty", "", "", model.StatusMissing},
		{"label only", "Jack Daniel's", "", model.StatusNotProvided},
		{"null literal expected", "Jack Daniel's", "n/a", model.StatusNotProvided},
		{"missing on label", "", "Jack Daniel's", model.StatusMissing},
		{"null literal on label", "null", "Jack Daniel's", model.StatusMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, Text(tt.extracted, tt.expected).Status)
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	for _, v := range []string{"Jack Daniel's", "Tennessee Whiskey", "USA", "Añejo Tequila"} {
		assert.Equal(t, model.StatusPass, Text(v, v).Status, "Text(%q, %q)", v, v)
	}
}

func TestText_NormalizationTiers(t *testing.T) {
	tests := []struct {
		name      string
		extracted string
		expected  string
	}{
		{"case and whitespace", "  tennessee   WHISKEY ", "Tennessee Whiskey"},
		{"punctuation", "Jack Daniels", "Jack Daniel's"},
		{"accents", "Anejo", "Añejo"},
		{"accents and punctuation", "st remys anejo", "St. Rémy's Añejo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Text(tt.extracted, tt.expected)
			assert.Equal(t, model.StatusPass, c.Status)
		})
	}
}

func TestText_ContainmentTiers(t *testing.T) {
	// Ratio >= 0.8: similar but not exact.
	c := Text("Old Grand Dad Bourbon", "Grand Dad Bourbon")
	assert.Equal(t, model.StatusNeedsReview, c.Status)
	assert.Equal(t, "Values are similar but not exact", c.Reason)

	// Ratio in [0.5, 0.8): differs significantly.
	c = Text("Highland Park 12 Year Old Single Malt", "Highland Park 12 Year")
	assert.Equal(t, model.StatusNeedsReview, c.Status)
	assert.Equal(t, "Extracted value differs significantly from expected", c.Reason)
}

func TestText_WordLevelFuzzyMatch(t *testing.T) {
	c := Text("Jack Daniel Distillery Tennessee", "Jack Daniel's Distillery Lynchburg")
	assert.Equal(t, model.StatusNeedsReview, c.Status)
	assert.Equal(t, "Partial match - please verify", c.Reason)
}

func TestText_Fail(t *testing.T) {
	c := Text("Brand A Whiskey", "Completely Different Vodka")
	assert.Equal(t, model.StatusFail, c.Status)
	assert.Contains(t, c.Reason, `"Completely Different Vodka"`)
	assert.Contains(t, c.Reason, `"Brand A Whiskey"`)
}
