package validation

import (
	"fmt"
	"math"

	"boshenLines/internal/domain"
)

// Tolerances for comparing a computed sequence against a reference
// sequence produced by the original tool.
const (
	PriceTolerance      = 0.01  // absolute price difference per line
	RatioTolerance      = 0.001 // absolute ratio difference per line
	MaxErrorPercentCeil = 0.1   // aggregate relative error, in percent
)

// ValidateAccuracy compares a computed sequence against an externally
// supplied reference sequence of the same shape. Per line, the absolute
// price and ratio differences must stay within tolerance; in aggregate,
// the worst relative price error must stay below MaxErrorPercentCeil.
// Used by the regression harness only, never on the calculation path.
func ValidateAccuracy(computed, expected []domain.PredictionLine) ValidationResult {
	result := ValidationResult{IsValid: true}
	fail := func(format string, args ...interface{}) {
		result.IsValid = false
		result.Messages = append(result.Messages, fmt.Sprintf(format, args...))
	}

	if len(computed) != len(expected) {
		fail("sequence length mismatch: computed %d, expected %d", len(computed), len(expected))
		return result
	}

	for i := range expected {
		priceDiff := math.Abs(computed[i].Price - expected[i].Price)
		if priceDiff > PriceTolerance {
			fail("line %d (%s): price %v deviates from expected %v by %v",
				i, expected[i].Name, computed[i].Price, expected[i].Price, priceDiff)
		}

		ratioDiff := math.Abs(computed[i].Ratio - expected[i].Ratio)
		if ratioDiff > RatioTolerance {
			fail("line %d (%s): ratio %v deviates from expected %v by %v",
				i, expected[i].Name, computed[i].Ratio, expected[i].Ratio, ratioDiff)
		}

		if expected[i].Price != 0 {
			errPercent := priceDiff / expected[i].Price * 100
			if errPercent > result.MaxErrorPercent {
				result.MaxErrorPercent = errPercent
			}
		}
	}

	if result.MaxErrorPercent >= MaxErrorPercentCeil {
		fail("max relative error %.6f%% exceeds %.6f%%", result.MaxErrorPercent, MaxErrorPercentCeil)
	}

	return result
}
