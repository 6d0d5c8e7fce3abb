// Command regression_runner runs the calculator against the canonical
// vectors and exits non-zero when the output drifts beyond tolerance.
// It is the acceptance gate for any change to a ratio table or the
// calculation formula.
package main

import (
	"fmt"
	"os"

	"boshenLines/internal/ports"
	"boshenLines/internal/prediction"
	"boshenLines/internal/prediction/regression"
)

func main() {
	harness := regression.New(prediction.NewBoshen())
	report := harness.RunStandardCases()

	for _, cr := range report.PerCase {
		status := "PASS"
		if !cr.IsValid {
			status = "FAIL"
		}
		fmt.Printf("%s  %-24s maxError=%.6f%%", status, cr.Name, cr.MaxErrorPercent)
		if cr.Message != "" {
			fmt.Printf("  (%s)", cr.Message)
		}
		fmt.Println()
	}

	fmt.Printf("\nmax error:     %.6f%%\n", report.MaxError)
	fmt.Printf("average error: %.6f%%\n", report.AverageError)

	if !report.MeetsAccuracyRequirement {
		fmt.Println(ports.ErrAccuracyRegression.Error())
		os.Exit(1)
	}
	fmt.Println("accuracy requirement met")
}
