package validation

import (
	"testing"

	"boshenLines/internal/domain"
	"boshenLines/internal/prediction"
)

func computeLines(t *testing.T, low, high float64) []domain.PredictionLine {
	t.Helper()
	lines, err := prediction.NewBoshen().Calculate(low, high)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return lines
}

func TestValidateStructure(t *testing.T) {
	table := prediction.BoshenTable()

	tests := []struct {
		name    string
		mutate  func(lines []domain.PredictionLine) []domain.PredictionLine
		isValid bool
	}{
		{
			name:    "correct output passes",
			mutate:  func(lines []domain.PredictionLine) []domain.PredictionLine { return lines },
			isValid: true,
		},
		{
			name: "truncated sequence",
			mutate: func(lines []domain.PredictionLine) []domain.PredictionLine {
				return lines[:10]
			},
			isValid: false,
		},
		{
			name: "non-monotonic prices",
			mutate: func(lines []domain.PredictionLine) []domain.PredictionLine {
				lines[5].Price = lines[4].Price
				return lines
			},
			isValid: false,
		},
		{
			name: "line sunk below the interval high",
			mutate: func(lines []domain.PredictionLine) []domain.PredictionLine {
				lines[2].Price = lines[1].Price - 0.01
				return lines
			},
			isValid: false,
		},
		{
			name: "key flag on the wrong line",
			mutate: func(lines []domain.PredictionLine) []domain.PredictionLine {
				lines[3].IsKeyLine = false
				lines[4].IsKeyLine = true
				return lines
			},
			isValid: false,
		},
		{
			name: "extra key line",
			mutate: func(lines []domain.PredictionLine) []domain.PredictionLine {
				lines[10].IsKeyLine = true
				return lines
			},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := tt.mutate(computeLines(t, 98.02, 98.75))
			result := ValidateStructure(lines, table)
			if result.IsValid != tt.isValid {
				t.Errorf("IsValid = %v, expected %v (messages: %v)", result.IsValid, tt.isValid, result.Messages)
			}
			if !tt.isValid && len(result.Messages) == 0 {
				t.Error("Invalid result carries no messages")
			}
		})
	}
}

func TestMustBeStructural_PanicsOnViolation(t *testing.T) {
	table := prediction.BoshenTable()
	lines := computeLines(t, 96.25, 97.06)
	lines[7].Price = lines[6].Price // break monotonicity

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on structural violation")
		}
	}()
	MustBeStructural(lines, table)
}

func TestMustBeStructural_PassesCorrectOutput(t *testing.T) {
	MustBeStructural(computeLines(t, 96.25, 97.06), prediction.BoshenTable())
}
