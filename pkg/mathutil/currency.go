// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value half-up to two decimals, i.e. to represent real
// currency. Used for making logical comparisons.
func Round(val float64) float64 {
	return RoundTo(val, constants.DecimalPlaces)
}

// RoundTo rounds a value half away from zero to the given number of places.
// The rounding is done on the shortest decimal representation of val so that
// 1.005 rounds to 1.01 rather than falling victim to binary representation.
func RoundTo(val float64, places int32) float64 {
	if !IsFinite(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// ToDecimal converts a currency value into a decimal rounded to cents.
func ToDecimal(val float64) decimal.Decimal {
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces)
}

// IsFinite reports whether val is neither NaN nor an infinity.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// PercentToRate converts a percentage such as 8.5 into a fraction such as 0.085.
func PercentToRate(percent float64) float64 {
	return percent / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}
