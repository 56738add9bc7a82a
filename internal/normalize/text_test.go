package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmptyValue(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"null", true},
		{"NULL", true},
		{" n/a ", true},
		{"N/A", true},
		{"0", false},
		{"none", false},
		{"Jack Daniel's", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEmptyValue(tt.in), "IsEmptyValue(%q)", tt.in)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\t b \n c  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "tennessee whiskey", Fold("  Tennessee   WHISKEY "))
}

func TestStripPunctuation(t *testing.T) {
	assert.Equal(t, "jack daniels", StripPunctuation("jack daniel's"))
	assert.Equal(t, "st remys", StripPunctuation("st. remy's"))
	assert.Equal(t, "40 abv", StripPunctuation("40% (abv)"))
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "Anejo", StripAccents("Añejo"))
	assert.Equal(t, "Remy", StripAccents("Rémy"))
	assert.Equal(t, "plain", StripAccents("plain"))
}

func TestWordOverlap(t *testing.T) {
	ref := Words("the quick brown fox jumps")
	assert.InDelta(t, 1.0, WordOverlap(Words("the quick brown fox jumps"), ref), 1e-9)
	assert.InDelta(t, 0.8, WordOverlap(Words("the quick brown fox"), ref), 1e-9)
	assert.InDelta(t, 0.0, WordOverlap(Words("unrelated words entirely"), ref), 1e-9)
	assert.Zero(t, WordOverlap(Words("anything"), nil))
}
