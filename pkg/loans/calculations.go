// Package loans provides the fixed-payment (EMI) amortization calculator.
package loans

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Input holds the parameters of an amortizing loan.
type Input struct {
	Principal         float64 `json:"principal" validate:"finite,gt=0"`
	AnnualRatePercent float64 `json:"annualRatePercent" validate:"finite,gte=0,lte=1000"`
	TermMonths        int     `json:"termMonths" validate:"gte=1,lte=600"`
}

// PeriodEntry holds the values for a given payment period.
type PeriodEntry struct {
	Index            int     `json:"index"`
	Interest         float64 `json:"interestPortion"`
	Principal        float64 `json:"principalPortion"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Schedule is the result of amortizing a loan.
type Schedule struct {
	Payment       float64       `json:"payment"`
	TotalPaid     float64       `json:"totalPaid"`
	TotalInterest float64       `json:"totalInterest"`
	Periods       []PeriodEntry `json:"schedule"`
}

// Clone returns a copy of the schedule that shares no memory with s.
func (s Schedule) Clone() Schedule {
	if s.Periods != nil {
		s.Periods = append([]PeriodEntry(nil), s.Periods...)
	}
	return s
}

// TotalPrincipal sums the principal portion of every period.
func (s Schedule) TotalPrincipal() float64 {
	total := 0.0
	for _, period := range s.Periods {
		total += period.Principal
	}
	return total
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	periodicInterestRate := mathutil.MonthlyRate(annualRatePercent)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	if periodicInterestRate == 0 || power == 1 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// CalculateMaxPrincipal is the inverse of CalculateMonthlyPayment: the
// largest principal a given monthly payment amortizes over the term.
func CalculateMaxPrincipal(payment, annualRatePercent float64, termMonths int) float64 {
	periodicInterestRate := mathutil.MonthlyRate(annualRatePercent)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	if periodicInterestRate == 0 || power == 1 {
		return payment * float64(termMonths)
	}

	return payment * (power - 1.00) / (periodicInterestRate * power)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualRatePercent)
}

// ComputeLoanSchedule amortizes a loan into equal monthly payments.
//
// The remaining balance is rounded half-up to cents after every period to
// decide termination: once it rounds to zero, or on the final period, it is
// set to exactly zero and generation stops. The schedule can therefore be
// shorter than the term for very small loans. All other amounts are left
// unrounded.
func ComputeLoanSchedule(input Input) (Schedule, error) {
	if err := validation.Struct(input); err != nil {
		return Schedule{}, err
	}

	payment := CalculateMonthlyPayment(input.Principal, input.AnnualRatePercent, input.TermMonths)
	if !mathutil.IsFinite(payment) {
		return Schedule{}, validation.NewInvalidInput("termMonths", "overflows the payment formula at this rate")
	}

	zeroRate := input.AnnualRatePercent == 0
	periods := make([]PeriodEntry, 0, input.TermMonths)
	balance := input.Principal

	for index := 1; index <= input.TermMonths; index++ {
		interest := CalculateInterestPayment(balance, input.AnnualRatePercent)
		principal := payment - interest
		remaining := math.Max(0, balance-principal)

		if index == input.TermMonths || (!zeroRate && mathutil.Round(remaining) == 0) {
			// We will get machine error otherwise so just set to 0.
			remaining = 0
		}

		periods = append(periods, PeriodEntry{
			Index:            index,
			Interest:         interest,
			Principal:        principal,
			RemainingBalance: remaining,
		})

		balance = remaining
		if balance == 0 {
			break
		}
	}

	schedule := Schedule{
		Payment:   payment,
		TotalPaid: payment * float64(len(periods)),
		Periods:   periods,
	}
	if zeroRate {
		schedule.TotalPaid = payment * float64(input.TermMonths)
	} else {
		schedule.TotalInterest = schedule.TotalPaid - input.Principal
	}

	return schedule, nil
}
