// Command levels computes the prediction lines for a single interval
// and prints them, marking the key lines.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"boshenLines/internal/prediction"
	"boshenLines/internal/prediction/validation"
)

var (
	low      = flag.Float64("low", 0, "interval low price (required)")
	high     = flag.Float64("high", 0, "interval high price (required)")
	strategy = flag.String("strategy", string(prediction.StrategyBoshen), "calculation strategy (BOSHEN or FIBONACCI)")
	near     = flag.Float64("near", 0, "optional current price; prints which lines are within -tolerance of it")
	tol      = flag.Float64("tolerance", 0.5, "tolerance for -near, in percent")
)

func main() {
	flag.Parse()

	calc, err := prediction.New(prediction.Config{Strategy: prediction.StrategyKind(strings.ToUpper(*strategy))})
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	lines, err := calc.Calculate(*low, *high)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot compute lines: %v\n", err)
		os.Exit(1)
	}
	validation.MustBeStructural(lines, calc.Table())

	fmt.Printf("Prediction lines for interval (%.4f, %.4f), table %s:\n", *low, *high, calc.Table().Version)
	for _, line := range lines {
		marker := "   "
		if line.IsKeyLine {
			marker = " * "
		}
		fmt.Printf("%s%-12s ratio=%.3f  price=%.4f\n", marker, line.Name, line.Ratio, line.Price)
	}

	if *near > 0 {
		nearby := prediction.FindNearby(lines, *near, *tol)
		fmt.Printf("\nLines within %.2f%% of %.4f:\n", *tol, *near)
		if len(nearby) == 0 {
			fmt.Println("  (none)")
		}
		for _, line := range nearby {
			fmt.Printf("  %-12s price=%.4f\n", line.Name, line.Price)
		}
	}
}
