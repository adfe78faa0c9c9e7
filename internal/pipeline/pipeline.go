package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/epw-etl/internal/domain"
	"github.com/couchcryptid/epw-etl/internal/epw"
	"github.com/couchcryptid/epw-etl/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// BatchExtractor returns up to batchSize EPW files that have not been processed yet.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawFile, error)
}

// Transformer decodes a raw file into observations.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawFile) ([]domain.Observation, error)
}

// BatchLoader writes multiple observations to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, observations []domain.Observation) error
}

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability. batchSize
// bounds both the files taken per extract and the observations per load call.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has completed an extract,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not scanned for files yet")
	}
	return nil
}

// Run executes the batch ETL loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-transform-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}
	p.ready.Store(true)

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.FilesExtracted.Add(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	for _, raw := range rawBatch {
		if !p.processFile(ctx, raw, backoff, maxBackoff) {
			return false
		}
	}
	return true
}

// processFile transforms one file, loads its observations in batches and
// commits it. A file that fails to decode is committed so it is not retried.
// A file that fails to load stays uncommitted and is extracted again.
// Returns false if the pipeline should stop.
func (p *Pipeline) processFile(ctx context.Context, raw domain.RawFile, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	observations, err := p.transformer.Transform(ctx, raw)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Warn("transform failed, skipping file",
			"error", err,
			"file", raw.Name,
			"path", raw.Path,
		)
		p.metrics.FileErrors.Inc()
		p.commitFile(ctx, raw)
		return true
	}

	p.metrics.RecordsDecoded.Add(float64(len(observations)))
	p.countMissing(observations)

	for chunk := range chunks(observations, p.batchSize) {
		if err := p.loader.LoadBatch(ctx, chunk); err != nil {
			p.logger.Error("load batch failed",
				"error", err,
				"file", raw.Name,
				"batch_size", len(chunk),
			)
			return p.backoffOrStop(ctx, backoff, maxBackoff)
		}
		p.metrics.BatchSize.Observe(float64(len(chunk)))
		p.metrics.RecordsLoaded.Add(float64(len(chunk)))
	}

	p.commitFile(ctx, raw)
	p.metrics.FilesProcessed.Inc()
	p.metrics.FileProcessingDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("file processed",
		"file", raw.Name,
		"observations", len(observations),
		"duration", time.Since(start),
	)
	return true
}

// countMissing records every numeric field that held its missing sentinel.
func (p *Pipeline) countMissing(observations []domain.Observation) {
	for _, f := range epw.Schema() {
		if !f.HasMissing {
			continue
		}
		missing := 0
		for i := range observations {
			if !f.Present(&observations[i].Record) {
				missing++
			}
		}
		if missing > 0 {
			p.metrics.MissingValues.WithLabelValues(f.Name).Add(float64(missing))
		}
	}
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !retry.SleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = retry.NextBackoff(*backoff, maxBackoff)
	return true
}

// commitFile marks the file processed if a commit function is available.
func (p *Pipeline) commitFile(ctx context.Context, raw domain.RawFile) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit file failed", "error", err, "file", raw.Name)
	}
}

// chunks yields consecutive slices of at most size observations.
func chunks(obs []domain.Observation, size int) func(yield func([]domain.Observation) bool) {
	return func(yield func([]domain.Observation) bool) {
		for len(obs) > 0 {
			n := min(size, len(obs))
			if !yield(obs[:n]) {
				return
			}
			obs = obs[n:]
		}
	}
}
