// Package deposits computes the effective yield and month-by-month growth of
// a compounding deposit with optional recurring monthly deposits.
package deposits

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Compounding is the number of compounding periods per year.
type Compounding int

const (
	Daily     Compounding = 365
	Monthly   Compounding = 12
	Quarterly Compounding = 4
	Annually  Compounding = 1
)

// ParseCompounding maps a frequency name to its periods per year. An empty
// name means monthly.
func ParseCompounding(name string) (Compounding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "daily":
		return Daily, nil
	case "", "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	case "annually", "yearly":
		return Annually, nil
	}
	return 0, fmt.Errorf("unknown compounding frequency %q: expected daily, monthly, quarterly or annually", name)
}

func (c Compounding) String() string {
	switch c {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Annually:
		return "annually"
	}
	return fmt.Sprintf("%d/year", int(c))
}

// Input holds the parameters of a deposit.
type Input struct {
	Principal                 float64     `json:"principal" validate:"finite,gte=0"`
	AnnualRatePercent         float64     `json:"annualRatePercent" validate:"finite,gte=0,lte=1000"`
	CompoundingPeriodsPerYear Compounding `json:"compoundingPeriodsPerYear" validate:"oneof=365 12 4 1"`
	TermMonths                int         `json:"termMonths" validate:"gte=1,lte=600"`
	RecurringMonthlyDeposit   float64     `json:"recurringMonthlyDeposit" validate:"finite,gte=0"`
}

// MonthEntry is the state of the deposit at the end of a month.
type MonthEntry struct {
	Month          int     `json:"month"`
	Balance        float64 `json:"balance"`
	InterestEarned float64 `json:"interestEarned"`
}

// Comparison contrasts the compounded balance with simple interest on the
// principal alone.
type Comparison struct {
	SimpleInterestTotal float64 `json:"simpleInterestTotal"`
	CompoundTotal       float64 `json:"compoundTotal"`
	Difference          float64 `json:"difference"`
}

// Growth is the result of growing a deposit. APY is the effective annual
// yield as a fraction (0.0459 for 4.59%), unlike the Percent fields
// elsewhere.
type Growth struct {
	APY            float64      `json:"apy"`
	FinalBalance   float64      `json:"finalBalance"`
	TotalDeposited float64      `json:"totalDeposited"`
	TotalInterest  float64      `json:"totalInterest"`
	Months         []MonthEntry `json:"monthSchedule"`
	Comparison     Comparison   `json:"simpleVsCompoundComparison"`
}

// Clone returns a copy of the growth result that shares no memory with g.
func (g Growth) Clone() Growth {
	if g.Months != nil {
		g.Months = append([]MonthEntry(nil), g.Months...)
	}
	return g
}

// NominalAPY returns the effective annual yield of a nominal annual
// percentage compounded periodsPerYear times, as a fraction.
func NominalAPY(annualRatePercent float64, periodsPerYear Compounding) float64 {
	rate := mathutil.PercentToRate(annualRatePercent)
	n := float64(periodsPerYear)
	return math.Pow(1+rate/n, n) - 1
}

// ComputeDepositGrowth reports the APY using true periodic compounding, but
// always advances the balance monthly at annualRate/12 so every schedule has
// the same granularity regardless of the compounding frequency.
func ComputeDepositGrowth(input Input) (Growth, error) {
	if err := validation.Struct(input); err != nil {
		return Growth{}, err
	}

	rate := mathutil.PercentToRate(input.AnnualRatePercent)
	monthlyRate := rate / constants.MonthsPerYear

	months := make([]MonthEntry, 0, input.TermMonths)
	balance := input.Principal
	for month := 1; month <= input.TermMonths; month++ {
		interest := balance * monthlyRate
		balance += interest + input.RecurringMonthlyDeposit
		months = append(months, MonthEntry{
			Month:          month,
			Balance:        balance,
			InterestEarned: interest,
		})
	}

	if !mathutil.IsFinite(balance) {
		return Growth{}, validation.NewInvalidInput("termMonths", "overflows the balance at this rate")
	}

	deposited := input.RecurringMonthlyDeposit * float64(input.TermMonths)
	simpleTotal := input.Principal*rate*(float64(input.TermMonths)/constants.MonthsPerYear) + input.Principal

	return Growth{
		APY:            NominalAPY(input.AnnualRatePercent, input.CompoundingPeriodsPerYear),
		FinalBalance:   balance,
		TotalDeposited: deposited,
		TotalInterest:  balance - input.Principal - deposited,
		Months:         months,
		Comparison: Comparison{
			SimpleInterestTotal: simpleTotal,
			CompoundTotal:       balance,
			Difference:          balance - simpleTotal,
		},
	}, nil
}
