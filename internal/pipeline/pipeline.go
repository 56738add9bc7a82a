// Package pipeline orchestrates a verification run: extract each label
// image, merge the per-image extractions, validate against expected values,
// and persist the resulting report.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/copperworks/labelcheck/internal/extraction"
	"github.com/copperworks/labelcheck/internal/merge"
	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/store"
	"github.com/copperworks/labelcheck/internal/verify"
)

// Extractor runs vision extraction over a set of label images.
type Extractor interface {
	ExtractAll(ctx context.Context, images []extraction.LabelImage) ([]model.SourceExtraction, error)
}

// Pipeline runs verification for one application at a time.
type Pipeline struct {
	extractor Extractor
	store     store.Store
}

// New creates a Pipeline. Store may be nil, in which case results are not
// persisted.
func New(extractor Extractor, st store.Store) *Pipeline {
	return &Pipeline{extractor: extractor, store: st}
}

// Request describes one application to verify. Expected is nil for
// label-only verification.
type Request struct {
	ApplicationID   string
	ApplicationName string
	Images          []extraction.LabelImage
	Expected        *model.ExpectedValues
}

// Run verifies one application. Extraction failure does not return an
// error: the result carries OverallError so batch callers keep going and
// the failure is still recorded.
func (p *Pipeline) Run(ctx context.Context, req Request) (model.ApplicationResult, error) {
	log := zap.L().With(
		zap.String("application_id", req.ApplicationID),
		zap.Int("images", len(req.Images)),
	)
	log.Info("pipeline: starting verification")
	start := time.Now()

	sources, err := p.extractor.ExtractAll(ctx, req.Images)
	if err != nil {
		if ctx.Err() != nil {
			return model.ApplicationResult{}, eris.Wrap(ctx.Err(), "pipeline: canceled")
		}
		log.Error("pipeline: extraction failed", zap.Error(err))
		result := verify.ErrorResult(req.ApplicationID, req.ApplicationName, err.Error(), len(req.Images), time.Since(start))
		return result, p.persist(ctx, result)
	}
	log.Info("pipeline: extraction complete",
		zap.Int("extracted", len(sources)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	merged := merge.Merge(sources)

	result := verify.Compose(verify.Input{
		ApplicationID:   req.ApplicationID,
		ApplicationName: req.ApplicationName,
		Merged:          merged,
		Expected:        req.Expected,
		ImageCount:      len(req.Images),
		Elapsed:         time.Since(start),
	})

	log.Info("pipeline: verification complete",
		zap.String("status", string(result.OverallStatus)),
		zap.Int64("duration_ms", result.ProcessingTimeMs),
	)
	return result, p.persist(ctx, result)
}

func (p *Pipeline) persist(ctx context.Context, result model.ApplicationResult) error {
	if p.store == nil {
		return nil
	}
	if _, err := p.store.SaveReport(ctx, result); err != nil {
		return eris.Wrap(err, "pipeline: save report")
	}
	return nil
}
