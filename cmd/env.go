package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/copperworks/labelcheck/internal/expected"
	"github.com/copperworks/labelcheck/internal/extraction"
	"github.com/copperworks/labelcheck/internal/pipeline"
	"github.com/copperworks/labelcheck/internal/resilience"
	"github.com/copperworks/labelcheck/internal/store"
	anthropicpkg "github.com/copperworks/labelcheck/pkg/anthropic"
)

// verifyEnv holds the initialized store and pipeline used by the verify,
// batch, and serve commands.
type verifyEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the environment.
func (ve *verifyEnv) Close() {
	if ve.Store != nil {
		_ = ve.Store.Close()
	}
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.SQLitePath
		if dsn == "" {
			dsn = "labelcheck.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initVerifyEnv sets up the store, the Anthropic client, and the extraction
// pipeline. Callers should defer env.Close().
func initVerifyEnv(ctx context.Context) (*verifyEnv, error) {
	if err := cfg.Validate("verify"); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	client := anthropicpkg.NewClient(cfg.Anthropic.Key)
	extractor := extraction.NewExtractor(client, cfg.Anthropic.VisionModel, int64(cfg.Anthropic.MaxTokens))
	runner := extraction.NewRunner(extractor, extraction.RunnerConfig{
		Concurrency:       cfg.Extraction.Concurrency,
		RequestsPerSecond: cfg.Extraction.RequestsPerSecond,
		Retry:             resilience.FromSettings(cfg.Extraction.RetryAttempts, cfg.Extraction.RetryBackoffMs, cfg.Extraction.RetryMaxBackoffMs),
	})

	return &verifyEnv{
		Store:    st,
		Pipeline: pipeline.New(runner, st),
	}, nil
}

// expectedEntry looks up one application's entry by ID.
func expectedEntry(entries []expected.Entry, id string) (expected.Entry, bool) {
	e, ok := expected.ByID(entries)[id]
	return e, ok
}

// loadExpectedEntries reads an expected-values file, dispatching on the
// file extension.
func loadExpectedEntries(path string) ([]expected.Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return expected.LoadYAML(path)
	case ".xlsx":
		return expected.LoadXLSX(path, expected.XLSXOptions{})
	default:
		return nil, eris.Errorf("unsupported expected-values file type: %s", path)
	}
}
