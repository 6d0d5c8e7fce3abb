package domain

// PredictionLine is a single price level derived from an interval.
// It is created only by the calculator and never mutated afterwards.
type PredictionLine struct {
	Index     int     // Position in the sequence (0-based)
	Name      string  // Display label, e.g. "A line", "line 3"
	Ratio     float64 // Dimensionless multiplier applied to the interval span
	Price     float64 // Computed price level
	IsKeyLine bool    // Whether this line is conventionally highlighted
}
