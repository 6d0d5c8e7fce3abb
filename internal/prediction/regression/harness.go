// Package regression pins the calculator's output against literal,
// hand-verified reference vectors. It is the acceptance gate for any
// change to a ratio table or the calculation formula.
package regression

import (
	"fmt"
	"strings"

	"boshenLines/internal/domain"
	"boshenLines/internal/prediction"
	"boshenLines/internal/prediction/validation"
)

// Vector is one canonical case: an input interval and the line sequence
// the reference tool produced for it.
type Vector struct {
	Name     string
	Low      float64
	High     float64
	Expected []domain.PredictionLine
}

// CaseResult is the outcome of running one vector.
type CaseResult struct {
	Name            string
	IsValid         bool
	Message         string
	MaxErrorPercent float64
}

// Report aggregates a harness run.
type Report struct {
	PerCase                  []CaseResult
	MaxError                 float64
	AverageError             float64
	MeetsAccuracyRequirement bool
}

// Harness runs the calculator against the standard vectors.
type Harness struct {
	calc *prediction.Calculator
}

// New creates a harness around the given calculator.
func New(calc *prediction.Calculator) *Harness {
	return &Harness{calc: calc}
}

// RunStandardCases calculates every standard vector, asserts the
// structural rules on the computed output, and compares it against the
// vector's expected sequence within the accuracy tolerances.
// MeetsAccuracyRequirement is true iff every case passes with a max
// relative error below the tolerance ceiling.
func (h *Harness) RunStandardCases() Report {
	return h.Run(StandardVectors())
}

// Run executes the given vectors. A structural violation on computed
// output panics (calculator defect); an accuracy miss is recorded as a
// failing case.
func (h *Harness) Run(vectors []Vector) Report {
	report := Report{MeetsAccuracyRequirement: true}
	table := h.calc.Table()

	var errSum float64
	for _, v := range vectors {
		cr := CaseResult{Name: v.Name}

		computed, err := h.calc.Calculate(v.Low, v.High)
		if err != nil {
			cr.Message = fmt.Sprintf("calculation failed: %v", err)
			report.MeetsAccuracyRequirement = false
			report.PerCase = append(report.PerCase, cr)
			continue
		}
		validation.MustBeStructural(computed, table)

		res := validation.ValidateAccuracy(computed, v.Expected)
		cr.IsValid = res.IsValid
		cr.MaxErrorPercent = res.MaxErrorPercent
		if !res.IsValid {
			cr.Message = strings.Join(res.Messages, "; ")
			report.MeetsAccuracyRequirement = false
		}
		if res.MaxErrorPercent >= validation.MaxErrorPercentCeil {
			report.MeetsAccuracyRequirement = false
		}

		if res.MaxErrorPercent > report.MaxError {
			report.MaxError = res.MaxErrorPercent
		}
		errSum += res.MaxErrorPercent
		report.PerCase = append(report.PerCase, cr)
	}

	if len(vectors) > 0 {
		report.AverageError = errSum / float64(len(vectors))
	}
	return report
}
