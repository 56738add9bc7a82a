// Package merge reconciles per-image extraction results into one
// application-level record with field provenance and conflict detection.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/normalize"
)

// containmentLengthRatio guards the substring-equivalence heuristic: a
// shorter value only merges into a longer one when it covers at least this
// share of its length.
const containmentLengthRatio = 0.8

// candidate is one non-empty value for a field with its origin.
type candidate struct {
	value      string
	imageIndex int
	confidence float64
}

// cluster groups equivalent candidate values. The representative value and
// confidence come from the highest-ranked member.
type cluster struct {
	value      string
	confidence float64
	indices    []int
}

// Merge reconciles the extractions of one application into a single record.
// Each input pairs an extraction with its image's 0-based position. An
// empty input yields a record with every provenance at source -1.
func Merge(sources []model.SourceExtraction) model.MergedExtraction {
	merged := model.MergedExtraction{
		Fields:                   make(map[model.FieldKey]string),
		Provenance:               make(map[model.FieldKey]model.FieldProvenance),
		ContributingImageIndices: []int{},
	}

	contributing := make(map[int]bool)

	for _, key := range model.AllFieldKeys() {
		var cands []candidate
		for _, src := range sources {
			v := src.Extraction.FieldValue(key)
			if normalize.IsEmptyValue(v) {
				continue
			}
			cands = append(cands, candidate{
				value:      v,
				imageIndex: src.ImageIndex,
				confidence: src.Extraction.Confidence,
			})
			contributing[src.ImageIndex] = true
		}

		switch len(cands) {
		case 0:
			merged.Provenance[key] = model.FieldProvenance{SourceIndex: -1}
		case 1:
			merged.Fields[key] = cands[0].value
			merged.Provenance[key] = model.FieldProvenance{SourceIndex: cands[0].imageIndex}
		default:
			value, prov := resolve(cands)
			merged.Fields[key] = value
			merged.Provenance[key] = prov
			if prov.NeedsReview {
				merged.ConflictCount++
			}
		}
	}

	merged.HasConflicts = merged.ConflictCount > 0
	for idx := range contributing {
		merged.ContributingImageIndices = append(merged.ContributingImageIndices, idx)
	}
	sort.Ints(merged.ContributingImageIndices)

	merged.Formatting = AggregateFormatting(sources)

	return merged
}

// resolve picks a value from two or more candidates. Candidates are ranked
// by confidence descending with image index as the tie-break, then grouped
// into equivalence clusters. A single cluster means consensus; two or more
// mean a conflict that needs human review.
func resolve(cands []candidate) (string, model.FieldProvenance) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].confidence != cands[j].confidence {
			return cands[i].confidence > cands[j].confidence
		}
		return cands[i].imageIndex < cands[j].imageIndex
	})

	clusters := clusterCandidates(cands)

	top := clusters[0]
	if len(clusters) == 1 {
		return top.value, model.FieldProvenance{SourceIndex: top.indices[0]}
	}

	second := clusters[1]
	conflictIndices := append(append([]int{}, top.indices...), second.indices...)
	sort.Ints(conflictIndices)

	return top.value, model.FieldProvenance{
		SourceIndex:              top.indices[0],
		NeedsReview:              true,
		ConflictingCandidates:    []string{top.value, second.value},
		ConflictingSourceIndices: conflictIndices,
		ReviewReason:             fmt.Sprintf("Conflicting values found: %q vs %q", top.value, second.value),
	}
}

// clusterCandidates groups ranked candidates into equivalence clusters.
// Iterating in rank order keeps each cluster's representative value the
// highest-confidence member, and leaves clusters sorted by best confidence.
func clusterCandidates(cands []candidate) []cluster {
	var clusters []cluster
	for _, c := range cands {
		placed := false
		for i := range clusters {
			if equivalent(clusters[i].value, c.value) {
				clusters[i].indices = append(clusters[i].indices, c.imageIndex)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, cluster{
				value:      c.value,
				confidence: c.confidence,
				indices:    []int{c.imageIndex},
			})
		}
	}
	return clusters
}

// equivalent reports whether two values should merge into one cluster:
// identical after normalization, or one contains the other with the
// shorter covering at least 80% of the longer's length. The length guard
// keeps "Whiskey" from merging into "Tennessee Whiskey Reserve".
func equivalent(a, b string) bool {
	na, nb := normalize.Fold(a), normalize.Fold(b)
	if na == nb {
		return true
	}
	shorter, longer := na, nb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(longer) == 0 {
		return true
	}
	ratio := float64(len(shorter)) / float64(len(longer))
	return ratio >= containmentLengthRatio && strings.Contains(longer, shorter)
}
