// Package validation checks computed prediction-line sequences, either
// against the structural rules of the ratio table that produced them or
// against an externally supplied reference sequence.
package validation

import (
	"fmt"
	"strings"

	"boshenLines/internal/domain"
	"boshenLines/internal/ports"
	"boshenLines/internal/prediction"
)

// ValidationResult reports the outcome of a structural or accuracy check.
type ValidationResult struct {
	IsValid         bool
	Messages        []string
	MaxErrorPercent float64
}

// ValidateStructure checks the rule invariants of a computed sequence
// against the table that produced it: element count, strict monotonic
// prices, every line beyond the interval bounds above the high, and the
// exact key-line index set. It needs no reference data; a failure here
// indicates a calculator defect, not bad user input.
func ValidateStructure(lines []domain.PredictionLine, table prediction.Table) ValidationResult {
	result := ValidationResult{IsValid: true}
	fail := func(format string, args ...interface{}) {
		result.IsValid = false
		result.Messages = append(result.Messages, fmt.Sprintf(format, args...))
	}

	if len(lines) != table.Len() {
		fail("expected %d lines, got %d", table.Len(), len(lines))
		return result
	}
	if table.Len() < 2 {
		return result
	}

	for i := 0; i+1 < len(lines); i++ {
		if !(lines[i].Price < lines[i+1].Price) {
			fail("prices not strictly increasing at index %d: %v >= %v", i, lines[i].Price, lines[i+1].Price)
		}
	}

	// lines[1] is the interval high by construction; everything above
	// the interval must clear it.
	high := lines[1].Price
	for i := 2; i < len(lines); i++ {
		if lines[i].Price <= high {
			fail("line %d price %v does not exceed interval high %v", i, lines[i].Price, high)
		}
	}

	wantKeys := table.KeyIndices()
	var gotKeys []int
	for i, line := range lines {
		if line.IsKeyLine {
			gotKeys = append(gotKeys, i)
		}
	}
	if !equalIntSlices(gotKeys, wantKeys) {
		fail("key-line indices %v, expected %v", gotKeys, wantKeys)
	}

	return result
}

// MustBeStructural panics when the sequence violates the structural
// rules. A violation means the calculator itself is defective, so the
// offending operation halts loudly instead of propagating bad levels.
func MustBeStructural(lines []domain.PredictionLine, table prediction.Table) {
	result := ValidateStructure(lines, table)
	if !result.IsValid {
		panic(fmt.Errorf("%w: %s", ports.ErrStructuralViolation, strings.Join(result.Messages, "; ")))
	}
}

func equalIntSlices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
