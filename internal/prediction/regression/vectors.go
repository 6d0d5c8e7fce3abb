package regression

import "boshenLines/internal/domain"

// StandardVectors returns the canonical Boshen vectors. Prices were
// read off the reference tool at two-decimal display precision, well
// inside the accuracy tolerances. Do not edit these without
// re-verifying against the reference tool.
func StandardVectors() []Vector {
	return []Vector{
		{
			Name: "interval 98.02-98.75",
			Low:  98.02,
			High: 98.75,
			Expected: expected([11]float64{
				98.02, 98.75, 99.37, 99.77, 100.31, 100.50, 100.94, 101.47, 101.85, 102.42, 102.99,
			}),
		},
		{
			Name: "interval 96.25-97.06",
			Low:  96.25,
			High: 97.06,
			Expected: expected([11]float64{
				96.25, 97.06, 97.75, 98.19, 98.79, 99.00, 99.49, 100.08, 100.50, 101.13, 101.76,
			}),
		},
		{
			Name: "interval 100.00-105.00",
			Low:  100.00,
			High: 105.00,
			Expected: expected([11]float64{
				100.00, 105.00, 109.245, 111.985, 115.685, 117.005, 120.00, 123.63, 126.235, 130.135, 134.04,
			}),
		},
	}
}

// boshenRatios mirrors the Boshen table for vector construction. Kept
// literal here so a table edit cannot silently rewrite the expectations
// it is supposed to be checked against.
var boshenRatios = [11]float64{0.0, 1.0, 1.849, 2.397, 3.137, 3.401, 4.000, 4.726, 5.247, 6.027, 6.808}

var boshenNames = [11]string{
	"A line", "B line",
	"line 1", "line 2", "line 3", "line 4", "line 5", "line 6", "line 7", "line 8",
	"extreme line",
}

func expected(prices [11]float64) []domain.PredictionLine {
	lines := make([]domain.PredictionLine, len(prices))
	for i, p := range prices {
		lines[i] = domain.PredictionLine{
			Index:     i,
			Name:      boshenNames[i],
			Ratio:     boshenRatios[i],
			Price:     p,
			IsKeyLine: i == 3 || i == 6 || i == 8,
		}
	}
	return lines
}
