// Package batch resolves many intervals concurrently through the
// memoizing cache with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"sync"

	"boshenLines/internal/domain"
	"boshenLines/internal/ports"
	"boshenLines/internal/prediction/cache"
)

// DefaultWorkers bounds the fan-out when no degree is configured.
const DefaultWorkers = 8

// Result is one slot of a batch: either a computed sequence or the
// error that interval produced. Slots are index-aligned with the input.
type Result struct {
	Lines []domain.PredictionLine
	Err   error
}

// Config holds configuration for the orchestrator.
type Config struct {
	Workers int // Fan-out degree; DefaultWorkers when <= 0
	Cache   *cache.Cache
	Logger  ports.Logger
}

// Orchestrator fans batches of intervals out over the cache. Duplicate
// intervals inside one batch share the cache's single-flight behavior.
type Orchestrator struct {
	cache   *cache.Cache
	log     ports.Logger
	workers int
}

// New creates a batch orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Cache == nil {
		return nil, fmt.Errorf("%w: cache is required", ports.ErrConfigurationError)
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ports.ErrConfigurationError)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Orchestrator{cache: cfg.Cache, log: cfg.Logger, workers: workers}, nil
}

// CalculateBatch resolves every interval through the cache and returns
// one result per input, in input order regardless of completion order.
// A failing interval records its error in its own slot without
// affecting sibling slots. Cancellation is cooperative: it is checked
// between item dispatches, already-completed slots stay valid, and
// remaining slots are marked with ports.ErrContextCanceled.
func (o *Orchestrator) CalculateBatch(ctx context.Context, intervals []domain.Interval) []Result {
	results := make([]Result, len(intervals))
	if len(intervals) == 0 {
		return results
	}

	workers := o.workers
	if workers > len(intervals) {
		workers = len(intervals)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = Result{Err: canceledResult(intervals[idx])}
					continue
				}
				lines, err := o.cache.GetOrCompute(ctx, intervals[idx])
				results[idx] = Result{Lines: lines, Err: err}
			}
		}()
	}

	canceledAt := -1
dispatch:
	for i := range intervals {
		select {
		case jobs <- i:
		case <-ctx.Done():
			canceledAt = i
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if canceledAt >= 0 {
		for i := canceledAt; i < len(intervals); i++ {
			results[i] = Result{Err: canceledResult(intervals[i])}
		}
		o.log.Warn(ctx, "batch canceled before completion",
			map[string]interface{}{"dispatched": canceledAt, "total": len(intervals)})
	}

	return results
}

func canceledResult(iv domain.Interval) error {
	return fmt.Errorf("%w: interval (%v, %v) not computed", ports.ErrContextCanceled, iv.Low, iv.High)
}
