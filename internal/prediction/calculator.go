package prediction

import (
	"fmt"

	"boshenLines/internal/domain"
)

// Config holds configuration for the line calculator.
type Config struct {
	Strategy StrategyKind // Defaults to StrategyBoshen when empty
}

// Calculator derives prediction lines from a two-point price interval.
// It is stateless apart from its immutable table and safe for
// unsynchronized concurrent use.
type Calculator struct {
	table Table
}

// New creates a calculator for the configured strategy.
func New(cfg Config) (*Calculator, error) {
	kind := cfg.Strategy
	if kind == "" {
		kind = StrategyBoshen
	}
	table, ok := TableFor(kind)
	if !ok {
		return nil, fmt.Errorf("unsupported calculation strategy: %s", kind)
	}
	return &Calculator{table: table}, nil
}

// NewBoshen creates a calculator with the default Boshen table.
func NewBoshen() *Calculator {
	calc, err := New(Config{Strategy: StrategyBoshen})
	if err != nil {
		// The Boshen table is a compile-time constant; this cannot fail.
		panic(err)
	}
	return calc
}

// Table returns a copy of the calculator's ratio table.
func (c *Calculator) Table() Table { return copyTable(c.table) }

// Calculate maps (low, high) to the table's price levels:
// price[i] = low + ratio[i] * (high - low).
//
// It is pure and deterministic; identical inputs yield identical output
// from any goroutine at any time. Invalid intervals are rejected before
// any computation with a *domain.RangeError naming the violated
// condition.
func (c *Calculator) Calculate(low, high float64) ([]domain.PredictionLine, error) {
	iv := domain.Interval{Low: low, High: high}
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	span := iv.Span()
	lines := make([]domain.PredictionLine, len(c.table.Lines))
	for i, spec := range c.table.Lines {
		lines[i] = domain.PredictionLine{
			Index:     i,
			Name:      spec.Name,
			Ratio:     spec.Ratio,
			Price:     low + spec.Ratio*span,
			IsKeyLine: spec.Key,
		}
	}
	return lines, nil
}

// CalculateInterval is Calculate for callers already holding an Interval.
func (c *Calculator) CalculateInterval(iv domain.Interval) ([]domain.PredictionLine, error) {
	return c.Calculate(iv.Low, iv.High)
}

// FindNearby returns the lines whose percentage distance from
// currentPrice is within tolerancePercent. It never modifies the input
// and returns an empty slice when nothing is in range or the inputs are
// degenerate.
func FindNearby(lines []domain.PredictionLine, currentPrice, tolerancePercent float64) []domain.PredictionLine {
	nearby := make([]domain.PredictionLine, 0)
	if currentPrice <= 0 || tolerancePercent < 0 {
		return nearby
	}
	for _, line := range lines {
		diff := line.Price - currentPrice
		if diff < 0 {
			diff = -diff
		}
		if diff/currentPrice*100 <= tolerancePercent {
			nearby = append(nearby, line)
		}
	}
	return nearby
}
