// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/vehicle-decision/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp bounds val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, val))
}

// NonNegative floors val at zero.
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// SafeDivide returns num/den, or fallback when den is not positive.
func SafeDivide(num, den, fallback float64) float64 {
	if den <= 0 {
		return fallback
	}
	return num / den
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Interpolate evaluates the piecewise-linear curve through points at x.
// Points must be sorted by X. Values outside the curve take the nearest end.
func Interpolate(points []Point, x float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if x <= points[0].X {
		return points[0].Y
	}
	for i := 1; i < len(points); i++ {
		if x <= points[i].X {
			lo, hi := points[i-1], points[i]
			span := hi.X - lo.X
			if span <= 0 {
				return hi.Y
			}
			return lo.Y + (hi.Y-lo.Y)*(x-lo.X)/span
		}
	}
	return points[len(points)-1].Y
}

// Point is a vertex of a piecewise-linear curve.
type Point struct {
	X float64
	Y float64
}
