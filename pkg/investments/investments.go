// Package investments projects the value of a recurring contribution stream
// or a one-time investment growing at a fixed expected annual return.
package investments

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Mode selects how money enters the investment.
type Mode string

const (
	// Recurring invests a fixed amount at the start of every month.
	Recurring Mode = "sip"
	// LumpSum invests a single amount up front.
	LumpSum Mode = "lumpsum"
)

// ParseMode accepts the short names and a few common spellings.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sip", "recurring", "monthly":
		return Recurring, nil
	case "lumpsum", "lump-sum", "lump_sum", "single":
		return LumpSum, nil
	}
	return "", fmt.Errorf("unknown investment mode %q: expected sip or lumpsum", name)
}

// Input holds the parameters of an investment projection. Recurring mode
// reads MonthlyContribution and TermMonths; LumpSum reads InitialAmount and
// TermYears, falling back to TermMonths/12 when TermYears is zero.
type Input struct {
	Mode                        Mode    `json:"mode" validate:"oneof=sip lumpsum"`
	MonthlyContribution         float64 `json:"monthlyContribution" validate:"finite,gte=0"`
	InitialAmount               float64 `json:"initialAmount" validate:"finite,gte=0"`
	ExpectedAnnualReturnPercent float64 `json:"expectedAnnualReturnPercent" validate:"finite,gte=0,lte=1000"`
	TermMonths                  int     `json:"termMonths" validate:"gte=0,lte=600"`
	TermYears                   float64 `json:"termYears" validate:"finite,gte=0,lte=50"`
}

// MonthEntry is the state of a recurring investment at the end of a month.
type MonthEntry struct {
	Month    int     `json:"month"`
	Invested float64 `json:"invested"`
	Value    float64 `json:"value"`
	Gain     float64 `json:"gain"`
}

// Result is the outcome of an investment projection. The ratio metrics are
// nil when the invested base is zero.
type Result struct {
	Mode                  Mode         `json:"mode"`
	TotalContributed      float64      `json:"totalContributed"`
	FinalValue            float64      `json:"finalValue"`
	TotalGain             float64      `json:"totalGain"`
	AbsoluteReturnPercent *float64     `json:"absoluteReturnPercent"`
	CAGRPercent           *float64     `json:"cagrPercent"`
	Months                []MonthEntry `json:"monthSchedule,omitempty"`
}

// Clone returns a copy of the result that shares no memory with r.
func (r Result) Clone() Result {
	if r.Months != nil {
		r.Months = append([]MonthEntry(nil), r.Months...)
	}
	r.AbsoluteReturnPercent = clonePtr(r.AbsoluteReturnPercent)
	r.CAGRPercent = clonePtr(r.CAGRPercent)
	return r
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// FutureValueOfContributions is the closed-form value of n monthly
// contributions made at the start of each month.
func FutureValueOfContributions(contribution, annualReturnPercent float64, months int) float64 {
	r := mathutil.MonthlyRate(annualReturnPercent)
	power := math.Pow(1+r, float64(months))
	if r == 0 || power == 1 {
		return contribution * float64(months)
	}
	return contribution * (power - 1) / r * (1 + r)
}

// ComputeInvestmentGrowth projects an investment according to its mode.
func ComputeInvestmentGrowth(input Input) (Result, error) {
	if err := validation.Struct(input); err != nil {
		return Result{}, err
	}

	var (
		result Result
		err    error
	)
	switch input.Mode {
	case Recurring:
		result, err = computeRecurring(input)
	default:
		result, err = computeLumpSum(input)
	}
	if err != nil {
		return Result{}, err
	}

	if !mathutil.IsFinite(result.FinalValue) {
		return Result{}, validation.NewInvalidInput("expectedAnnualReturnPercent", "overflows the projected value over this term")
	}
	return result, nil
}

func computeRecurring(input Input) (Result, error) {
	if err := validation.Require(input.TermMonths >= constants.MinTermMonths, "termMonths", "must be >= 1"); err != nil {
		return Result{}, err
	}

	c := input.MonthlyContribution
	n := input.TermMonths
	r := mathutil.MonthlyRate(input.ExpectedAnnualReturnPercent)

	months := make([]MonthEntry, 0, n)
	value := 0.0
	for month := 1; month <= n; month++ {
		value = (value + c) * (1 + r)
		invested := c * float64(month)
		months = append(months, MonthEntry{
			Month:    month,
			Invested: invested,
			Value:    value,
			Gain:     value - invested,
		})
	}

	contributed := c * float64(n)
	final := FutureValueOfContributions(c, input.ExpectedAnnualReturnPercent, n)

	return Result{
		Mode:                  Recurring,
		TotalContributed:      contributed,
		FinalValue:            final,
		TotalGain:             final - contributed,
		AbsoluteReturnPercent: absoluteReturn(final, contributed),
		CAGRPercent:           cagr(final, contributed, float64(n)/constants.MonthsPerYear),
		Months:                months,
	}, nil
}

func computeLumpSum(input Input) (Result, error) {
	years := input.TermYears
	if years == 0 {
		years = float64(input.TermMonths) / constants.MonthsPerYear
	}
	if err := validation.Require(years > 0, "termYears", "must be > 0"); err != nil {
		return Result{}, err
	}

	initial := input.InitialAmount
	final := initial * math.Pow(1+mathutil.PercentToRate(input.ExpectedAnnualReturnPercent), years)

	return Result{
		Mode:                  LumpSum,
		TotalContributed:      initial,
		FinalValue:            final,
		TotalGain:             final - initial,
		AbsoluteReturnPercent: absoluteReturn(final, initial),
		CAGRPercent:           cagr(final, initial, years),
	}, nil
}

func absoluteReturn(final, base float64) *float64 {
	if base == 0 {
		return nil
	}
	v := (final - base) / base * constants.PercentageMultiplier
	return &v
}

func cagr(final, base, years float64) *float64 {
	if base == 0 || years <= 0 {
		return nil
	}
	v := (math.Pow(final/base, 1/years) - 1) * constants.PercentageMultiplier
	if !mathutil.IsFinite(v) {
		return nil
	}
	return &v
}
