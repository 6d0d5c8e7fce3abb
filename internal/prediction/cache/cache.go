// Package cache provides a concurrency-safe memoizing store for
// prediction-line calculations: quantized interval keys, single-flight
// de-duplication of concurrent misses, and bounded LRU eviction.
//
// The core data structures are explicit: a map index plus a
// doubly-linked list for O(1) get/insert/evict, and a separate
// in-flight call table so no lock is ever held while a computation
// runs.
package cache

import (
	"container/list"
	"context"
	"fmt"
	"math"
	"sync"

	"boshenLines/internal/domain"
	"boshenLines/internal/ports"
)

const (
	// DefaultCapacity bounds the number of cached intervals.
	DefaultCapacity = 1024
	// DefaultQuantizeDecimals is the fixed decimal precision applied to
	// interval bounds before they are used as cache keys, so
	// floating-point noise in otherwise-equal inputs cannot cause
	// spurious misses.
	DefaultQuantizeDecimals = 6
)

// ComputeFunc is the underlying calculation the cache memoizes.
type ComputeFunc func(iv domain.Interval) ([]domain.PredictionLine, error)

// Config holds configuration for the cache.
type Config struct {
	Capacity         int // Max entries; DefaultCapacity when <= 0
	QuantizeDecimals int // Key precision; DefaultQuantizeDecimals when <= 0
	Compute          ComputeFunc
	Logger           ports.Logger
}

// Statistics is a read-only snapshot of cache performance. Taking a
// snapshot never waits on an in-flight computation.
type Statistics struct {
	Size      int
	MaxSize   int
	HitCount  uint64
	MissCount uint64
	Evictions uint64
}

// quantKey is a (low, high) pair rounded to fixed decimal precision.
type quantKey struct {
	low  int64
	high int64
}

// entry is a fully computed, cached sequence. Entries are only ever
// inserted complete; a caller sees either no entry or a whole one.
type entry struct {
	key   quantKey
	lines []domain.PredictionLine
	hits  uint64
}

// call tracks one in-flight computation. Waiters block on done; lines
// and err are written exactly once before done is closed.
type call struct {
	done  chan struct{}
	lines []domain.PredictionLine
	err   error
}

// Cache is a get-or-compute store for prediction lines. All exported
// methods are safe for concurrent use.
type Cache struct {
	compute  ComputeFunc
	log      ports.Logger
	capacity int
	scale    float64

	mu        sync.Mutex
	index     map[quantKey]*list.Element // values are *entry
	order     *list.List                 // front = most recently used
	inflight  map[quantKey]*call
	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache around the given compute function.
func New(cfg Config) (*Cache, error) {
	if cfg.Compute == nil {
		return nil, fmt.Errorf("%w: compute function is required", ports.ErrConfigurationError)
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required", ports.ErrConfigurationError)
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	decimals := cfg.QuantizeDecimals
	if decimals <= 0 {
		decimals = DefaultQuantizeDecimals
	}
	return &Cache{
		compute:  cfg.Compute,
		log:      cfg.Logger,
		capacity: capacity,
		scale:    math.Pow10(decimals),
		index:    make(map[quantKey]*list.Element),
		order:    list.New(),
		inflight: make(map[quantKey]*call),
	}, nil
}

// GetOrCompute returns the cached sequence for the quantized interval,
// computing it at most once per key across concurrent callers. A failed
// computation is returned to every waiter for that key but never
// cached, so a later call with the same invalid interval re-attempts
// and fails the same way. The returned slice is the caller's own copy.
func (c *Cache) GetOrCompute(ctx context.Context, iv domain.Interval) ([]domain.PredictionLine, error) {
	key := c.quantize(iv)

	c.mu.Lock()
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
		e := el.Value.(*entry)
		e.hits++
		c.hits++
		lines := e.lines
		c.mu.Unlock()
		return cloneLines(lines), nil
	}
	c.misses++
	if cl, ok := c.inflight[key]; ok {
		// Someone else claimed this key; wait for their result.
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: waiting for interval (%v, %v)", ports.ErrContextCanceled, iv.Low, iv.High)
		case <-cl.done:
			if cl.err != nil {
				return nil, cl.err
			}
			return cloneLines(cl.lines), nil
		}
	}
	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.mu.Unlock()

	// Computation runs with no lock held, so slow computations never
	// block unrelated keys or statistics snapshots.
	lines, err := c.compute(iv)

	c.mu.Lock()
	delete(c.inflight, key)
	if err == nil {
		c.insertLocked(key, lines)
	}
	c.mu.Unlock()

	cl.lines = lines
	cl.err = err
	close(cl.done)

	if err != nil {
		return nil, err
	}
	return cloneLines(lines), nil
}

// Stats returns a snapshot of cache statistics. It only takes the
// bookkeeping mutex, which is never held across a computation.
func (c *Cache) Stats() Statistics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Statistics{
		Size:      c.order.Len(),
		MaxSize:   c.capacity,
		HitCount:  c.hits,
		MissCount: c.misses,
		Evictions: c.evictions,
	}
}

// Reset clears all entries and counters. In-flight computations finish
// normally and repopulate the fresh index on success.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[quantKey]*list.Element)
	c.order.Init()
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// insertLocked adds a completed entry and evicts from the LRU tail when
// over capacity. Caller holds c.mu.
func (c *Cache) insertLocked(key quantKey, lines []domain.PredictionLine) {
	if el, ok := c.index[key]; ok {
		// A Reset raced the computation or two owners existed across a
		// Reset; refresh in place.
		c.order.MoveToFront(el)
		el.Value.(*entry).lines = lines
		return
	}
	el := c.order.PushFront(&entry{key: key, lines: lines})
	c.index[key] = el
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		evicted := oldest.Value.(*entry)
		c.order.Remove(oldest)
		delete(c.index, evicted.key)
		c.evictions++
		c.log.Debug(context.Background(), "evicted least-recently-used interval",
			map[string]interface{}{"low": float64(evicted.key.low) / c.scale, "high": float64(evicted.key.high) / c.scale})
	}
}

func (c *Cache) quantize(iv domain.Interval) quantKey {
	return quantKey{
		low:  int64(math.Round(iv.Low * c.scale)),
		high: int64(math.Round(iv.High * c.scale)),
	}
}

func cloneLines(lines []domain.PredictionLine) []domain.PredictionLine {
	out := make([]domain.PredictionLine, len(lines))
	copy(out, lines)
	return out
}
