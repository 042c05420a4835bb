// Package eligibility estimates how large a loan a borrower can service from
// their income, existing debt and credit score, and analyses the down payment
// for property-secured loans.
package eligibility

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/policy"
	"github.com/iwvelando/finance-calculators/pkg/products"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Input holds a borrower's situation and the requested loan terms. The credit
// score is conventionally 300-900 but any value is accepted.
type Input struct {
	LoanType            products.LoanType `json:"loanType" validate:"oneof=home personal car"`
	MonthlyIncome       float64           `json:"monthlyIncome" validate:"finite,gt=0"`
	ExistingMonthlyDebt float64           `json:"existingMonthlyDebt" validate:"finite,gte=0"`
	CreditScore         int               `json:"creditScore"`
	AnnualRatePercent   float64           `json:"annualRatePercent" validate:"finite,gte=0,lte=1000"`
	TermYears           int               `json:"termYears" validate:"gte=1,lte=50"`
	PropertyValue       float64           `json:"propertyValue" validate:"finite,gte=0"`
}

// TermMonths is the loan term in months.
func (in Input) TermMonths() int {
	return in.TermYears * constants.MonthsPerYear
}

// DownPaymentAnalysis compares the minimum and recommended down payments on
// a property.
type DownPaymentAnalysis struct {
	PropertyValue          float64 `json:"propertyValue"`
	MinimumDownPayment     float64 `json:"minimumDownPayment"`
	RecommendedDownPayment float64 `json:"recommendedDownPayment"`
	LoanWithMinimumDown    float64 `json:"loanWithMinimumDown"`
	ResultingLoanAmount    float64 `json:"resultingLoanAmount"`
	EMIWithMinimumDown     float64 `json:"emiWithMinimumDown"`
	EMIWithRecommendedDown float64 `json:"emiWithRecommendedDown"`
	MonthlyEMISavings      float64 `json:"monthlyEmiSavings"`
	LifetimeEMISavings     float64 `json:"lifetimeEmiSavings"`
}

// Result is the eligibility estimate. DownPayment is nil when the loan type
// is not property-secured or no property value was given.
type Result struct {
	LoanType                     products.LoanType    `json:"loanType"`
	DebtToIncomeRatioPercent     float64              `json:"debtToIncomeRatioPercent"`
	MaxEMICapacity               float64              `json:"maxEmiCapacity"`
	MaxSustainableEMI            float64              `json:"maxSustainableEmi"`
	CreditMultiplier             float64              `json:"creditMultiplier"`
	BaseMaxLoanAmount            float64              `json:"baseMaxLoanAmount"`
	MaxApprovedLoanAmount        float64              `json:"maxApprovedLoanAmount"`
	RecommendedLoanAmount        float64              `json:"recommendedLoanAmount"`
	ResidualAffordabilityPercent float64              `json:"residualAffordabilityPercent"`
	Advisories                   []string             `json:"advisories"`
	DownPayment                  *DownPaymentAnalysis `json:"downPaymentAnalysis,omitempty"`
}

// Clone returns a copy of the result that shares no memory with r.
func (r Result) Clone() Result {
	if r.Advisories != nil {
		r.Advisories = append([]string(nil), r.Advisories...)
	}
	if r.DownPayment != nil {
		dp := *r.DownPayment
		r.DownPayment = &dp
	}
	return r
}

func validate(input Input) error {
	return validation.Struct(input)
}

// ComputeEligibility estimates the maximum and recommended loan amounts.
func ComputeEligibility(input Input) (Result, error) {
	if err := validate(input); err != nil {
		return Result{}, err
	}

	income := input.MonthlyIncome
	debt := input.ExistingMonthlyDebt
	termMonths := input.TermMonths()

	capacity := income*policy.MaxEMIIncomeShare - debt
	sustainable := mathutil.Max(0, capacity*policy.EMISafetyFactor)

	baseMax := loans.CalculateMaxPrincipal(sustainable, input.AnnualRatePercent, termMonths)
	multiplier := policy.CreditMultiplier(input.CreditScore)
	adjustedMax := baseMax * multiplier

	result := Result{
		LoanType:                     input.LoanType,
		DebtToIncomeRatioPercent:     mathutil.CalculatePercentage(debt, income),
		MaxEMICapacity:               capacity,
		MaxSustainableEMI:            sustainable,
		CreditMultiplier:             multiplier,
		BaseMaxLoanAmount:            baseMax,
		MaxApprovedLoanAmount:        adjustedMax,
		RecommendedLoanAmount:        adjustedMax * policy.RecommendedLoanFactor,
		ResidualAffordabilityPercent: (income - debt - sustainable) / income * constants.PercentageMultiplier,
	}
	if !mathutil.IsFinite(result.MaxApprovedLoanAmount) {
		return Result{}, validation.NewInvalidInput("termYears", "overflows the loan amount at this rate")
	}
	result.Advisories = advisories(input, result)

	if input.LoanType.IsPropertySecured() && input.PropertyValue > 0 {
		analysis, err := downPayment(input.PropertyValue, input.AnnualRatePercent, termMonths)
		if err != nil {
			return Result{}, err
		}
		result.DownPayment = analysis
	}
	return result, nil
}

// ComputeDownPaymentAnalysis returns nil, without error, for loan types that
// are not property-secured. A property-secured loan needs a positive property
// value.
func ComputeDownPaymentAnalysis(input Input) (*DownPaymentAnalysis, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	if !input.LoanType.IsPropertySecured() {
		return nil, nil
	}
	if err := validation.Require(input.PropertyValue > 0, "propertyValue",
		fmt.Sprintf("must be > 0 for %s loans", input.LoanType)); err != nil {
		return nil, err
	}
	return downPayment(input.PropertyValue, input.AnnualRatePercent, input.TermMonths())
}

func downPayment(propertyValue, annualRatePercent float64, termMonths int) (*DownPaymentAnalysis, error) {
	minDown := mathutil.ApplyPercentage(propertyValue, policy.MinDownPaymentPercent)
	recommendedDown := mathutil.ApplyPercentage(propertyValue, policy.RecommendedDownPaymentPercent)

	loanWithMin := propertyValue - minDown
	loanWithRecommended := propertyValue - recommendedDown

	emiMin := loans.CalculateMonthlyPayment(loanWithMin, annualRatePercent, termMonths)
	emiRecommended := loans.CalculateMonthlyPayment(loanWithRecommended, annualRatePercent, termMonths)
	savings := emiMin - emiRecommended

	analysis := &DownPaymentAnalysis{
		PropertyValue:          propertyValue,
		MinimumDownPayment:     minDown,
		RecommendedDownPayment: recommendedDown,
		LoanWithMinimumDown:    loanWithMin,
		ResultingLoanAmount:    loanWithRecommended,
		EMIWithMinimumDown:     emiMin,
		EMIWithRecommendedDown: emiRecommended,
		MonthlyEMISavings:      savings,
		LifetimeEMISavings:     savings * float64(termMonths),
	}
	if !analysis.finite() {
		return nil, validation.NewInvalidInput("propertyValue", "is too large for this rate and term")
	}
	return analysis, nil
}

func (a *DownPaymentAnalysis) finite() bool {
	for _, v := range []float64{
		a.MinimumDownPayment, a.RecommendedDownPayment,
		a.LoanWithMinimumDown, a.ResultingLoanAmount,
		a.EMIWithMinimumDown, a.EMIWithRecommendedDown,
		a.MonthlyEMISavings, a.LifetimeEMISavings,
	} {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}

// advisories compares the request against the loan type's published limits.
// They are informational and never change the computed amounts.
func advisories(input Input, result Result) []string {
	notes := []string{}
	profile, ok := products.LoanProfileFor(input.LoanType)
	if !ok {
		return notes
	}

	if result.DebtToIncomeRatioPercent > profile.MaxDTIPercent {
		notes = append(notes, fmt.Sprintf("debt-to-income ratio %.1f%% exceeds the %.0f%% limit for %s loans",
			result.DebtToIncomeRatioPercent, profile.MaxDTIPercent, profile.Type))
	}
	if input.CreditScore < profile.MinCreditScore {
		notes = append(notes, fmt.Sprintf("credit score %d is below the minimum of %d for %s loans",
			input.CreditScore, profile.MinCreditScore, profile.Type))
	}
	if input.TermYears > profile.MaxTenureYears {
		notes = append(notes, fmt.Sprintf("tenure of %d years exceeds the %d-year maximum for %s loans",
			input.TermYears, profile.MaxTenureYears, profile.Type))
	}
	if result.MaxSustainableEMI == 0 {
		notes = append(notes, "existing debt leaves no capacity for a new EMI")
	}
	return notes
}
