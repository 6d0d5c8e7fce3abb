package ports

import (
	"context"

	"boshenLines/internal/domain"
)

// StoredLevelSet is one persisted calculation: the source interval and
// the prediction lines it produced.
type StoredLevelSet struct {
	ID       int64
	Symbol   string
	Interval domain.Interval
	Lines    []domain.PredictionLine
}

// LevelRepository records computed prediction lines for later review.
// It is a consumer of engine output; the engine never depends on it.
type LevelRepository interface {
	// SaveLevels persists one computed sequence for the given symbol.
	SaveLevels(ctx context.Context, symbol string, iv domain.Interval, lines []domain.PredictionLine) (int64, error)

	// GetRecentLevels returns the most recently stored sets for the symbol, newest first.
	GetRecentLevels(ctx context.Context, symbol string, limit int) ([]*StoredLevelSet, error)

	// Close releases the underlying database handle.
	Close() error
}
