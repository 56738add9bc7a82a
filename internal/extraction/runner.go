package extraction

import (
	"context"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/copperworks/labelcheck/internal/model"
	"github.com/copperworks/labelcheck/internal/resilience"
)

// RunnerConfig tunes the concurrent fan-out over an application's images.
type RunnerConfig struct {
	// Concurrency bounds in-flight API calls. Default: 4.
	Concurrency int

	// RequestsPerSecond throttles the API call rate. Zero disables
	// throttling.
	RequestsPerSecond float64

	Retry resilience.RetryConfig
}

// Runner extracts every image of an application concurrently.
type Runner struct {
	extractor *Extractor
	cfg       RunnerConfig
	limiter   *rate.Limiter
}

// NewRunner builds a Runner around an Extractor.
func NewRunner(extractor *Extractor, cfg RunnerConfig) *Runner {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Runner{extractor: extractor, cfg: cfg, limiter: limiter}
}

// ExtractAll runs extraction for every image and returns the successful
// results ordered by image index. Individual image failures are logged and
// skipped; an error is returned only when every image fails, so one bad
// photo never sinks an application.
func (r *Runner) ExtractAll(ctx context.Context, images []LabelImage) ([]model.SourceExtraction, error) {
	if len(images) == 0 {
		return nil, eris.New("extraction: no images to process")
	}

	var (
		mu      sync.Mutex
		results []model.SourceExtraction
		failed  int
		lastErr error
	)

	record := func(img LabelImage, ex model.RawExtraction, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failed++
			lastErr = err
			zap.L().Warn("image extraction failed",
				zap.Int("image_index", img.Index),
				zap.String("image", img.Name),
				zap.Error(err),
			)
			return
		}
		results = append(results, model.SourceExtraction{
			ImageIndex: img.Index,
			Extraction: ex,
		})
	}

	// The first image goes out alone as a cache primer: its request writes
	// the shared system prompt into the prompt cache, so the fan-out below
	// hits a warm cache. Its failure is tolerated like any other image's.
	first := images[0]
	ex, err := r.runOne(ctx, first, r.extractor.PrimeOne)
	if err != nil && ctx.Err() != nil {
		return nil, eris.Wrap(err, "extraction: fan-out")
	}
	record(first, ex, err)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for _, img := range images[1:] {
		g.Go(func() error {
			ex, err := r.runOne(gctx, img, r.extractor.ExtractOne)
			if err != nil && gctx.Err() != nil {
				return err
			}
			// Per-image failure is tolerated; never cancel the group.
			record(img, ex, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "extraction: fan-out")
	}

	if len(results) == 0 {
		return nil, eris.Wrapf(lastErr, "extraction: all %d images failed", len(images))
	}

	if failed > 0 {
		zap.L().Info("partial extraction",
			zap.Int("succeeded", len(results)),
			zap.Int("failed", failed),
		)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ImageIndex < results[j].ImageIndex
	})
	return results, nil
}

// runOne applies the rate limiter and retry policy around a single
// extraction call.
func (r *Runner) runOne(ctx context.Context, img LabelImage, extract func(context.Context, LabelImage) (model.RawExtraction, error)) (model.RawExtraction, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return model.RawExtraction{}, err
		}
	}

	retry := r.cfg.Retry
	retry.OnRetry = resilience.RetryLogger("anthropic", "extract_label")

	return resilience.DoVal(ctx, retry, func(ctx context.Context) (model.RawExtraction, error) {
		return extract(ctx, img)
	})
}
