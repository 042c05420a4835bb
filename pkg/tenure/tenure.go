// Package tenure converts user-facing tenure values into whole months.
package tenure

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Unit is the unit a tenure value is expressed in.
type Unit string

const (
	Years  Unit = "years"
	Months Unit = "months"
)

// fractionTolerance absorbs float noise such as 1.1 * 12 = 13.200000000000001.
const fractionTolerance = 1e-9

// ParseUnit parses a unit name. An empty name means years.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "year", "years", "y":
		return Years, nil
	case "month", "months", "m":
		return Months, nil
	}
	return "", fmt.Errorf("unknown tenure unit %q: expected years or months", name)
}

// ToMonths converts (value, unit) into a positive whole number of months.
func ToMonths(value float64, unit Unit) (int, error) {
	if !mathutil.IsFinite(value) {
		return 0, validation.NewInvalidInput("tenure", "must be a finite number")
	}

	var months float64
	switch unit {
	case Years:
		months = value * constants.MonthsPerYear
	case Months:
		months = value
	default:
		return 0, validation.NewInvalidInput("tenureUnit", "must be one of [years, months]")
	}

	whole := math.Round(months)
	if math.Abs(months-whole) > fractionTolerance {
		return 0, validation.NewInvalidInput("tenure", "must be a whole number of months")
	}
	if whole < constants.MinTermMonths {
		return 0, validation.NewInvalidInput("tenure", "must be >= 1 month")
	}
	if whole > constants.MaxTermMonths {
		return 0, validation.NewInvalidInput("tenure", fmt.Sprintf("must be <= %d months", constants.MaxTermMonths))
	}
	return int(whole), nil
}

// ToYears converts (value, unit) into fractional years.
func ToYears(value float64, unit Unit) (float64, error) {
	if !mathutil.IsFinite(value) || value <= 0 {
		return 0, validation.NewInvalidInput("tenure", "must be > 0")
	}
	switch unit {
	case Years:
		return value, nil
	case Months:
		return value / constants.MonthsPerYear, nil
	}
	return 0, validation.NewInvalidInput("tenureUnit", "must be one of [years, months]")
}
