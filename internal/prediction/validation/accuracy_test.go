package validation

import (
	"testing"

	"boshenLines/internal/domain"
)

func referenceLines() []domain.PredictionLine {
	ratios := []float64{0.0, 1.0, 1.849, 2.397, 3.137, 3.401, 4.000, 4.726, 5.247, 6.027, 6.808}
	lines := make([]domain.PredictionLine, len(ratios))
	for i, r := range ratios {
		lines[i] = domain.PredictionLine{Index: i, Ratio: r, Price: 100.0 + r*5.0}
	}
	return lines
}

func TestValidateAccuracy_IdenticalSequences(t *testing.T) {
	result := ValidateAccuracy(referenceLines(), referenceLines())
	if !result.IsValid {
		t.Fatalf("Identical sequences should pass: %v", result.Messages)
	}
	if result.MaxErrorPercent != 0 {
		t.Errorf("MaxErrorPercent = %v, expected 0", result.MaxErrorPercent)
	}
}

func TestValidateAccuracy_WithinTolerance(t *testing.T) {
	computed := referenceLines()
	// 0.005 absolute is inside the 0.01 price tolerance and far below
	// the 0.1% aggregate ceiling at these price levels.
	for i := range computed {
		computed[i].Price += 0.005
	}
	result := ValidateAccuracy(computed, referenceLines())
	if !result.IsValid {
		t.Fatalf("Expected pass within tolerance: %v", result.Messages)
	}
	if result.MaxErrorPercent <= 0 || result.MaxErrorPercent >= MaxErrorPercentCeil {
		t.Errorf("MaxErrorPercent = %v, expected small non-zero", result.MaxErrorPercent)
	}
}

func TestValidateAccuracy_PriceDrift(t *testing.T) {
	computed := referenceLines()
	computed[6].Price += 0.02 // beyond the 0.01 price tolerance

	result := ValidateAccuracy(computed, referenceLines())
	if result.IsValid {
		t.Fatal("Expected failure on price drift")
	}
	if len(result.Messages) == 0 {
		t.Error("Failure carries no messages")
	}
}

func TestValidateAccuracy_RatioDrift(t *testing.T) {
	computed := referenceLines()
	computed[4].Ratio += 0.002 // beyond the 0.001 ratio tolerance

	result := ValidateAccuracy(computed, referenceLines())
	if result.IsValid {
		t.Fatal("Expected failure on ratio drift")
	}
}

func TestValidateAccuracy_AggregateCeiling(t *testing.T) {
	expected := []domain.PredictionLine{{Price: 1.0}, {Price: 2.0}}
	computed := []domain.PredictionLine{{Price: 1.002}, {Price: 2.0}}
	// per-line diff 0.002 is inside the absolute tolerance, but 0.2%
	// relative error breaks the aggregate ceiling
	result := ValidateAccuracy(computed, expected)
	if result.IsValid {
		t.Fatal("Expected failure on aggregate relative error")
	}
	if result.MaxErrorPercent < MaxErrorPercentCeil {
		t.Errorf("MaxErrorPercent = %v, expected >= %v", result.MaxErrorPercent, MaxErrorPercentCeil)
	}
}

func TestValidateAccuracy_LengthMismatch(t *testing.T) {
	result := ValidateAccuracy(referenceLines()[:10], referenceLines())
	if result.IsValid {
		t.Fatal("Expected failure on length mismatch")
	}
}
