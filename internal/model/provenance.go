package model

// FieldProvenance records which image supplied a merged field's chosen
// value and whether the sources disagreed.
type FieldProvenance struct {
	// SourceIndex is the contributing image's 0-based index, or -1 when no
	// image supplied a value.
	SourceIndex int  `json:"source_index"`
	NeedsReview bool `json:"needs_review"`

	// ConflictingCandidates holds the top candidate values when sources
	// disagreed, highest-confidence cluster first, at most two entries.
	ConflictingCandidates    []string `json:"conflicting_candidates,omitempty"`
	ConflictingSourceIndices []int    `json:"conflicting_source_indices,omitempty"`
	ReviewReason             string   `json:"review_reason,omitempty"`
}

// MergedExtraction is the application-level record reconciled from all
// per-image extractions.
type MergedExtraction struct {
	// Fields maps field key to the merged value. Absent keys had no value
	// on any image.
	Fields     map[FieldKey]string          `json:"fields"`
	Provenance map[FieldKey]FieldProvenance `json:"provenance"`

	HasConflicts  bool `json:"has_conflicts"`
	ConflictCount int  `json:"conflict_count"`

	// ContributingImageIndices lists every image that supplied at least one
	// non-empty field value, ascending and deduplicated.
	ContributingImageIndices []int `json:"contributing_image_indices"`

	// Formatting is the aggregated warning-header observation, or nil when
	// no image observed anything.
	Formatting *FormattingObservations `json:"formatting,omitempty"`
}

// Field returns the merged value for a key and whether one was found.
func (m MergedExtraction) Field(k FieldKey) (string, bool) {
	v, ok := m.Fields[k]
	return v, ok
}

// FormattingObservations is the conservative cross-image aggregate of the
// warning header's visual formatting.
type FormattingObservations struct {
	// IsUppercase: an explicit lowercase observation on any image wins over
	// uppercase observations elsewhere.
	IsUppercase TriState `json:"is_uppercase"`
	// IsBold: a bold observation on any image wins. A panel photographed at
	// an angle can hide weight that another shot shows.
	IsBold TriState `json:"is_bold"`
	// FontSize keeps the smallest size observed on any image.
	FontSize FontSize `json:"font_size"`
	// Visibility keeps the least visible observation.
	Visibility Visibility `json:"visibility"`

	SourceImageIndices []int `json:"source_image_indices"`
}
