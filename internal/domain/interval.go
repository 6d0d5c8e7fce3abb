package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is the common sentinel for all interval validation
// failures. Use errors.Is against it; the concrete *RangeError carries
// the offending bounds and the specific violated condition.
var ErrInvalidRange = errors.New("invalid price interval")

// RangeReason identifies which precondition an interval violated.
type RangeReason string

const (
	ReasonNonPositiveBound RangeReason = "NON_POSITIVE_BOUND"
	ReasonEqualBounds      RangeReason = "EQUAL_BOUNDS"
	ReasonInvertedBounds   RangeReason = "INVERTED_BOUNDS"
)

// RangeError reports an invalid (low, high) interval.
type RangeError struct {
	Low    float64
	High   float64
	Reason RangeReason
}

func (e *RangeError) Error() string {
	switch e.Reason {
	case ReasonNonPositiveBound:
		return fmt.Sprintf("invalid price interval: bounds must be positive (low=%v, high=%v)", e.Low, e.High)
	case ReasonEqualBounds:
		return fmt.Sprintf("invalid price interval: bounds are equal (low=high=%v)", e.Low)
	case ReasonInvertedBounds:
		return fmt.Sprintf("invalid price interval: high must exceed low (low=%v, high=%v)", e.Low, e.High)
	default:
		return fmt.Sprintf("invalid price interval (low=%v, high=%v)", e.Low, e.High)
	}
}

// Unwrap lets callers match the sentinel without knowing the reason.
func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// Interval is the two-point price range an analyst marks on a chart.
type Interval struct {
	Low  float64
	High float64
}

// Validate checks the interval preconditions in a fixed order:
// positive bounds, then equality, then inversion. It returns nil for a
// usable interval and a *RangeError naming the first violated condition
// otherwise.
func (iv Interval) Validate() error {
	if iv.Low <= 0 || iv.High <= 0 {
		return &RangeError{Low: iv.Low, High: iv.High, Reason: ReasonNonPositiveBound}
	}
	if iv.High == iv.Low {
		return &RangeError{Low: iv.Low, High: iv.High, Reason: ReasonEqualBounds}
	}
	if iv.High < iv.Low {
		return &RangeError{Low: iv.Low, High: iv.High, Reason: ReasonInvertedBounds}
	}
	return nil
}

// Span returns high - low.
func (iv Interval) Span() float64 { return iv.High - iv.Low }
