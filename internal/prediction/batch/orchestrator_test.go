package batch

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"boshenLines/internal/domain"
	"boshenLines/internal/ports"
	"boshenLines/internal/prediction"
	"boshenLines/internal/prediction/cache"
	"boshenLines/internal/prediction/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestOrchestrator(t *testing.T, workers int, compute cache.ComputeFunc) *Orchestrator {
	t.Helper()
	if compute == nil {
		compute = prediction.NewBoshen().CalculateInterval
	}
	lineCache, err := cache.New(cache.Config{Compute: compute, Logger: &mockLogger{}})
	require.NoError(t, err)
	o, err := New(Config{Workers: workers, Cache: lineCache, Logger: &mockLogger{}})
	require.NoError(t, err)
	return o
}

func TestNew_Validation(t *testing.T) {
	lineCache, err := cache.New(cache.Config{
		Compute: prediction.NewBoshen().CalculateInterval,
		Logger:  &mockLogger{},
	})
	require.NoError(t, err)

	_, err = New(Config{Logger: &mockLogger{}})
	assert.Error(t, err, "cache must be required")
	_, err = New(Config{Cache: lineCache})
	assert.Error(t, err, "logger must be required")
}

func TestCalculateBatch_OrderAndInvariants(t *testing.T) {
	o := newTestOrchestrator(t, 8, nil)
	table := prediction.BoshenTable()

	rng := rand.New(rand.NewSource(42))
	intervals := make([]domain.Interval, 100)
	for i := range intervals {
		low := 50.0 + rng.Float64()*1000.0
		intervals[i] = domain.Interval{Low: low, High: low + 0.5 + rng.Float64()*20.0}
	}

	start := time.Now()
	results := o.CalculateBatch(context.Background(), intervals)
	elapsed := time.Since(start)

	require.Len(t, results, 100)
	for i, res := range results {
		require.NoError(t, res.Err, "slot %d", i)
		require.Len(t, res.Lines, 11, "slot %d", i)
		// Index alignment: slot i must be derived from intervals[i].
		assert.InDelta(t, intervals[i].Low, res.Lines[0].Price, 1e-9, "slot %d", i)
		assert.InDelta(t, intervals[i].High, res.Lines[1].Price, 1e-9, "slot %d", i)

		vr := validation.ValidateStructure(res.Lines, table)
		assert.True(t, vr.IsValid, "slot %d: %v", i, vr.Messages)
	}

	// Soft performance guard with generous margin; the work is pure
	// arithmetic and must never take anywhere near this long.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestCalculateBatch_DuplicatesShareComputation(t *testing.T) {
	var computations atomic.Int64
	calc := prediction.NewBoshen()
	o := newTestOrchestrator(t, 8, func(iv domain.Interval) ([]domain.PredictionLine, error) {
		computations.Add(1)
		time.Sleep(5 * time.Millisecond) // widen the concurrency window
		return calc.CalculateInterval(iv)
	})

	intervals := make([]domain.Interval, 40)
	for i := range intervals {
		intervals[i] = domain.Interval{Low: 98.02, High: 98.75}
	}

	results := o.CalculateBatch(context.Background(), intervals)
	require.Len(t, results, 40)
	for i, res := range results {
		require.NoError(t, res.Err, "slot %d", i)
		assert.Equal(t, results[0].Lines, res.Lines)
	}
	assert.EqualValues(t, 1, computations.Load(), "duplicates in one batch share one computation")
}

func TestCalculateBatch_PartialFailure(t *testing.T) {
	o := newTestOrchestrator(t, 4, nil)

	intervals := []domain.Interval{
		{Low: 100.0, High: 105.0},
		{Low: 105.0, High: 100.0}, // inverted
		{Low: 96.25, High: 97.06},
		{Low: 100.0, High: 100.0}, // flat
		{Low: 0, High: 100.0},     // non-positive
		{Low: 200.0, High: 201.0},
	}

	results := o.CalculateBatch(context.Background(), intervals)
	require.Len(t, results, len(intervals))

	for _, i := range []int{0, 2, 5} {
		require.NoError(t, results[i].Err, "slot %d", i)
		assert.Len(t, results[i].Lines, 11, "slot %d", i)
	}
	for _, i := range []int{1, 3, 4} {
		require.Error(t, results[i].Err, "slot %d", i)
		assert.ErrorIs(t, results[i].Err, domain.ErrInvalidRange, "slot %d", i)
		assert.Nil(t, results[i].Lines, "slot %d", i)
	}
}

func TestCalculateBatch_PreCanceledContext(t *testing.T) {
	o := newTestOrchestrator(t, 4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	intervals := []domain.Interval{
		{Low: 100.0, High: 105.0},
		{Low: 200.0, High: 205.0},
	}
	results := o.CalculateBatch(ctx, intervals)
	require.Len(t, results, 2)
	for i, res := range results {
		assert.ErrorIs(t, res.Err, ports.ErrContextCanceled, "slot %d", i)
	}
}

func TestCalculateBatch_MidBatchCancellation(t *testing.T) {
	calc := prediction.NewBoshen()
	o := newTestOrchestrator(t, 2, func(iv domain.Interval) ([]domain.PredictionLine, error) {
		time.Sleep(20 * time.Millisecond)
		return calc.CalculateInterval(iv)
	})

	intervals := make([]domain.Interval, 50)
	for i := range intervals {
		low := 100.0 + float64(i)
		intervals[i] = domain.Interval{Low: low, High: low + 1.0}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(60 * time.Millisecond)
		cancel()
	}()

	results := o.CalculateBatch(ctx, intervals)
	require.Len(t, results, 50)

	var completed, canceled int
	for i, res := range results {
		switch {
		case res.Err == nil:
			// Completed slots stay valid after cancellation.
			assert.Len(t, res.Lines, 11, "slot %d", i)
			completed++
		default:
			assert.ErrorIs(t, res.Err, ports.ErrContextCanceled, "slot %d", i)
			canceled++
		}
	}
	assert.Greater(t, completed, 0, "some slots should complete before the cancel")
	assert.Greater(t, canceled, 0, "some slots should be marked canceled")
}

func TestCalculateBatch_EmptyInput(t *testing.T) {
	o := newTestOrchestrator(t, 4, nil)
	results := o.CalculateBatch(context.Background(), nil)
	assert.Empty(t, results)
}
