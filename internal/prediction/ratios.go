package prediction

// StrategyKind selects which ratio table drives the calculation.
// Strategies are pure functions over one table; there is no runtime
// type dispatch.
type StrategyKind string

const (
	// StrategyBoshen is the default, proprietary eleven-line table.
	StrategyBoshen StrategyKind = "BOSHEN"
	// StrategyFibonacci uses Fibonacci extension ratios instead.
	StrategyFibonacci StrategyKind = "FIBONACCI"
)

// LineSpec is one entry of a ratio table: a display name, the
// dimensionless multiplier applied to the interval span, and whether
// the resulting line is a key line.
type LineSpec struct {
	Name  string
	Ratio float64
	Key   bool
}

// Table is an immutable, versioned ratio table. It is never computed or
// derived at runtime; treat the ratios as an opaque analytical constant.
// Changing a table requires updating the canonical regression vectors.
type Table struct {
	Version string
	Lines   []LineSpec
}

// Len returns the number of lines the table produces.
func (t Table) Len() int { return len(t.Lines) }

// KeyIndices returns the indices of the table's key lines.
func (t Table) KeyIndices() []int {
	var idx []int
	for i, l := range t.Lines {
		if l.Key {
			idx = append(idx, i)
		}
	}
	return idx
}

// boshenTable is the proprietary eleven-line table. The ratios are an
// opaque constant inherited from the reference tool; do not re-derive
// or "improve" them.
var boshenTable = Table{
	Version: "boshen-v1",
	Lines: []LineSpec{
		{Name: "A line", Ratio: 0.0},
		{Name: "B line", Ratio: 1.0},
		{Name: "line 1", Ratio: 1.849},
		{Name: "line 2", Ratio: 2.397, Key: true},
		{Name: "line 3", Ratio: 3.137},
		{Name: "line 4", Ratio: 3.401},
		{Name: "line 5", Ratio: 4.000, Key: true},
		{Name: "line 6", Ratio: 4.726},
		{Name: "line 7", Ratio: 5.247, Key: true},
		{Name: "line 8", Ratio: 6.027},
		{Name: "extreme line", Ratio: 6.808},
	},
}

// fibonacciTable carries standard Fibonacci extension ratios above the
// marked interval. The golden-ratio extensions are the key lines.
var fibonacciTable = Table{
	Version: "fib-ext-v1",
	Lines: []LineSpec{
		{Name: "A line", Ratio: 0.0},
		{Name: "B line", Ratio: 1.0},
		{Name: "ext 1.272", Ratio: 1.272},
		{Name: "ext 1.414", Ratio: 1.414},
		{Name: "ext 1.618", Ratio: 1.618, Key: true},
		{Name: "ext 2.000", Ratio: 2.000},
		{Name: "ext 2.618", Ratio: 2.618, Key: true},
		{Name: "ext 3.618", Ratio: 3.618},
		{Name: "ext 4.236", Ratio: 4.236},
	},
}

// BoshenTable returns a copy of the Boshen ratio table.
func BoshenTable() Table { return copyTable(boshenTable) }

// FibonacciTable returns a copy of the Fibonacci extension table.
func FibonacciTable() Table { return copyTable(fibonacciTable) }

// TableFor returns the table backing the given strategy, or false when
// the strategy is unknown.
func TableFor(kind StrategyKind) (Table, bool) {
	switch kind {
	case StrategyBoshen:
		return BoshenTable(), true
	case StrategyFibonacci:
		return FibonacciTable(), true
	default:
		return Table{}, false
	}
}

// copyTable returns a deep copy so callers can never mutate the
// package-level tables through the returned value.
func copyTable(t Table) Table {
	lines := make([]LineSpec, len(t.Lines))
	copy(lines, t.Lines)
	return Table{Version: t.Version, Lines: lines}
}
