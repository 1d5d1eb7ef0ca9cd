package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/shiori/internal/config"
	"github.com/hyperjump/shiori/internal/loader"
	"github.com/hyperjump/shiori/internal/models"
)

// BuildReport describes one engine build.
type BuildReport struct {
	Source   string               `json:"source"`
	Loaded   int                  `json:"loaded"`
	Rejected []loader.RecordError `json:"-"`
	Skipped  int                  `json:"skipped"`
	Duration time.Duration        `json:"duration"`
	BuiltAt  time.Time            `json:"built_at"`
}

// Build loads every record from src into a new engine. Rejected rows are
// logged and counted; only a failed load returns an error.
func Build(ctx context.Context, src loader.Source, cfg *config.SearchConfig, logger *zap.Logger) (*Engine, *BuildReport, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	docs, rejected, err := src.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	engine, err := NewEngine(cfg, WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	for _, rerr := range rejected {
		logger.Warn("skipping catalog row", zap.String("source", src.Name()), zap.Error(rerr))
	}

	report := &BuildReport{Source: src.Name(), Rejected: rejected, Skipped: len(rejected)}
	for _, doc := range docs {
		if err := engine.Add(doc); err != nil {
			if errors.Is(err, models.ErrDuplicateDocument) || errors.Is(err, models.ErrInvalidDocument) {
				logger.Warn("skipping document", zap.String("id", doc.ID), zap.Error(err))
				report.Skipped++
				continue
			}
			return nil, nil, err
		}
		report.Loaded++
	}
	report.Duration = time.Since(start)
	report.BuiltAt = time.Now()

	logger.Info("engine built",
		zap.String("source", src.Name()),
		zap.Int("documents", report.Loaded),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", report.Duration),
	)
	return engine, report, nil
}

// Holder publishes the current engine to concurrent readers. A reload builds
// a complete engine before swapping it in, so readers never see a partial one.
type Holder struct {
	engine atomic.Pointer[Engine]
	report atomic.Pointer[BuildReport]
}

// NewHolder returns a holder serving engine.
func NewHolder(engine *Engine, report *BuildReport) *Holder {
	h := &Holder{}
	h.engine.Store(engine)
	h.report.Store(report)
	return h
}

// Load returns the current engine.
func (h *Holder) Load() *Engine {
	return h.engine.Load()
}

// Report returns the report of the build that produced the current engine.
func (h *Holder) Report() *BuildReport {
	return h.report.Load()
}

// Swap installs engine and returns the previous one.
func (h *Holder) Swap(engine *Engine, report *BuildReport) *Engine {
	h.report.Store(report)
	return h.engine.Swap(engine)
}

// Reload rebuilds from src and swaps the result in. On failure the current
// engine keeps serving.
func (h *Holder) Reload(ctx context.Context, src loader.Source, cfg *config.SearchConfig, logger *zap.Logger) error {
	engine, report, err := Build(ctx, src, cfg, logger)
	if err != nil {
		return err
	}
	h.Swap(engine, report)
	return nil
}
