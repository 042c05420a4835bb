package config

import (
	"github.com/iwvelando/finance-calculators/pkg/deposits"
	"github.com/iwvelando/finance-calculators/pkg/eligibility"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/products"
	"github.com/iwvelando/finance-calculators/pkg/tenure"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Tenure is a term length as a user would enter it. A zero Value means
// "use the product default" where one exists.
type Tenure struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"` // years (default) or months
}

// IsZero reports whether the tenure was left out.
func (t Tenure) IsZero() bool {
	return t.Value == 0
}

func (t Tenure) months() (int, error) {
	unit, err := tenure.ParseUnit(t.Unit)
	if err != nil {
		return 0, validation.NewInvalidInput("tenure.unit", "must be one of [years, months]")
	}
	return tenure.ToMonths(t.Value, unit)
}

func (t Tenure) years() (float64, error) {
	unit, err := tenure.ParseUnit(t.Unit)
	if err != nil {
		return 0, validation.NewInvalidInput("tenure.unit", "must be one of [years, months]")
	}
	return tenure.ToYears(t.Value, unit)
}

func yearsTenure(years int) Tenure {
	return Tenure{Value: float64(years), Unit: string(tenure.Years)}
}

// LoanSpec describes an amortizing loan. Rate and tenure fall back to the
// loan type's defaults.
type LoanSpec struct {
	Type              string   `json:"type,omitempty" yaml:"type,omitempty"`
	Principal         float64  `json:"principal" yaml:"principal"`
	AnnualRatePercent *float64 `json:"annualRatePercent,omitempty" yaml:"annualRatePercent,omitempty"`
	Tenure            Tenure   `json:"tenure" yaml:"tenure"`
}

// Profile returns the product profile the spec draws defaults from.
func (s LoanSpec) Profile() (products.LoanProfile, error) {
	lt, err := products.ParseLoanType(s.Type)
	if err != nil {
		return products.LoanProfile{}, validation.NewInvalidInput("type", "must be one of [home, personal, car]")
	}
	profile, _ := products.LoanProfileFor(lt)
	return profile, nil
}

// ToInput resolves defaults and converts the spec into a calculator input.
func (s LoanSpec) ToInput() (loans.Input, error) {
	profile, err := s.Profile()
	if err != nil {
		return loans.Input{}, err
	}

	rate := profile.DefaultRatePercent
	if s.AnnualRatePercent != nil {
		rate = *s.AnnualRatePercent
	}
	term := s.Tenure
	if term.IsZero() {
		term = yearsTenure(profile.DefaultTenureYears)
	}
	months, err := term.months()
	if err != nil {
		return loans.Input{}, err
	}

	return loans.Input{
		Principal:         s.Principal,
		AnnualRatePercent: rate,
		TermMonths:        months,
	}, nil
}

// DepositSpec describes a deposit account. Rate and tenure fall back to the
// account type's defaults and compounding defaults to monthly.
type DepositSpec struct {
	Account                 string   `json:"account,omitempty" yaml:"account,omitempty"`
	Principal               float64  `json:"principal" yaml:"principal"`
	AnnualRatePercent       *float64 `json:"annualRatePercent,omitempty" yaml:"annualRatePercent,omitempty"`
	Compounding             string   `json:"compounding,omitempty" yaml:"compounding,omitempty"`
	Tenure                  Tenure   `json:"tenure" yaml:"tenure"`
	RecurringMonthlyDeposit float64  `json:"recurringMonthlyDeposit,omitempty" yaml:"recurringMonthlyDeposit,omitempty"`
}

// Profile returns the account profile the spec draws defaults from.
func (s DepositSpec) Profile() (products.AccountProfile, error) {
	at, err := products.ParseAccountType(s.Account)
	if err != nil {
		return products.AccountProfile{}, validation.NewInvalidInput("account", "must be one of [savings, cd, high-yield]")
	}
	profile, _ := products.AccountProfileFor(at)
	return profile, nil
}

// ToInput resolves defaults and converts the spec into a calculator input.
func (s DepositSpec) ToInput() (deposits.Input, error) {
	profile, err := s.Profile()
	if err != nil {
		return deposits.Input{}, err
	}

	compounding, err := deposits.ParseCompounding(s.Compounding)
	if err != nil {
		return deposits.Input{}, validation.NewInvalidInput("compounding", "must be one of [daily, monthly, quarterly, annually]")
	}

	rate := profile.DefaultRatePercent
	if s.AnnualRatePercent != nil {
		rate = *s.AnnualRatePercent
	}
	term := s.Tenure
	if term.IsZero() {
		term = yearsTenure(profile.DefaultTenureYears)
	}
	months, err := term.months()
	if err != nil {
		return deposits.Input{}, err
	}

	return deposits.Input{
		Principal:                 s.Principal,
		AnnualRatePercent:         rate,
		CompoundingPeriodsPerYear: compounding,
		TermMonths:                months,
		RecurringMonthlyDeposit:   s.RecurringMonthlyDeposit,
	}, nil
}

// InvestmentSpec describes a recurring or lump sum investment. Without an
// explicit return, the midpoint of the fund category's return band is used.
type InvestmentSpec struct {
	Mode                        string   `json:"mode" yaml:"mode"`
	Fund                        string   `json:"fund,omitempty" yaml:"fund,omitempty"`
	MonthlyContribution         float64  `json:"monthlyContribution,omitempty" yaml:"monthlyContribution,omitempty"`
	InitialAmount               float64  `json:"initialAmount,omitempty" yaml:"initialAmount,omitempty"`
	ExpectedAnnualReturnPercent *float64 `json:"expectedAnnualReturnPercent,omitempty" yaml:"expectedAnnualReturnPercent,omitempty"`
	Tenure                      Tenure   `json:"tenure" yaml:"tenure"`
}

// ToInput resolves defaults and converts the spec into a calculator input.
func (s InvestmentSpec) ToInput() (investments.Input, error) {
	mode, err := investments.ParseMode(s.Mode)
	if err != nil {
		return investments.Input{}, validation.NewInvalidInput("mode", "must be one of [sip, lumpsum]")
	}

	var rate float64
	switch {
	case s.ExpectedAnnualReturnPercent != nil:
		rate = *s.ExpectedAnnualReturnPercent
	case s.Fund != "":
		category, ok := products.FundCategoryFor(s.Fund)
		if !ok {
			return investments.Input{}, validation.NewInvalidInput("fund", "must be one of [equity, debt, hybrid, index]")
		}
		rate = (category.MinReturnPercent + category.MaxReturnPercent) / 2
	default:
		return investments.Input{}, validation.NewInvalidInput("expectedAnnualReturnPercent", "is required without a fund")
	}

	input := investments.Input{
		Mode:                        mode,
		MonthlyContribution:         s.MonthlyContribution,
		InitialAmount:               s.InitialAmount,
		ExpectedAnnualReturnPercent: rate,
	}

	if mode == investments.Recurring {
		input.TermMonths, err = s.Tenure.months()
	} else {
		input.TermYears, err = s.Tenure.years()
	}
	if err != nil {
		return investments.Input{}, err
	}
	return input, nil
}

// EligibilitySpec describes a borrower and the loan they are asking about.
type EligibilitySpec struct {
	LoanType            string   `json:"loanType,omitempty" yaml:"loanType,omitempty"`
	MonthlyIncome       float64  `json:"monthlyIncome" yaml:"monthlyIncome"`
	ExistingMonthlyDebt float64  `json:"existingMonthlyDebt,omitempty" yaml:"existingMonthlyDebt,omitempty"`
	CreditScore         int      `json:"creditScore" yaml:"creditScore"`
	AnnualRatePercent   *float64 `json:"annualRatePercent,omitempty" yaml:"annualRatePercent,omitempty"`
	TermYears           int      `json:"termYears,omitempty" yaml:"termYears,omitempty"`
	PropertyValue       float64  `json:"propertyValue,omitempty" yaml:"propertyValue,omitempty"`
}

// ToInput resolves defaults and converts the spec into a calculator input.
func (s EligibilitySpec) ToInput() (eligibility.Input, error) {
	lt, err := products.ParseLoanType(s.LoanType)
	if err != nil {
		return eligibility.Input{}, validation.NewInvalidInput("loanType", "must be one of [home, personal, car]")
	}
	profile, _ := products.LoanProfileFor(lt)

	rate := profile.DefaultRatePercent
	if s.AnnualRatePercent != nil {
		rate = *s.AnnualRatePercent
	}
	years := s.TermYears
	if years == 0 {
		years = profile.DefaultTenureYears
	}

	return eligibility.Input{
		LoanType:            lt,
		MonthlyIncome:       s.MonthlyIncome,
		ExistingMonthlyDebt: s.ExistingMonthlyDebt,
		CreditScore:         s.CreditScore,
		AnnualRatePercent:   rate,
		TermYears:           years,
		PropertyValue:       s.PropertyValue,
	}, nil
}
