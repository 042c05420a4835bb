// Package policy holds the lending policy shared by the loan and eligibility
// calculators.
package policy

// Affordability constants
const (
	// MaxEMIIncomeShare is the share of monthly income that may go to all EMIs.
	MaxEMIIncomeShare = 0.40

	// EMISafetyFactor is applied to the raw EMI capacity (a 20% haircut).
	EMISafetyFactor = 0.80

	// RecommendedLoanFactor is applied to the credit-adjusted maximum loan.
	RecommendedLoanFactor = 0.80
)

// Down payment constants for property-secured loans, in percent of the
// property value.
const (
	MinDownPaymentPercent         = 10.0
	RecommendedDownPaymentPercent = 20.0
)

// CreditTier maps a minimum credit score to a loan amount multiplier.
type CreditTier struct {
	MinScore   int     `json:"minScore"`
	Multiplier float64 `json:"multiplier"`
}

// FallbackCreditMultiplier applies below the lowest tier.
const FallbackCreditMultiplier = 0.7

// creditTiers is ordered from the highest score down.
var creditTiers = [...]CreditTier{
	{MinScore: 750, Multiplier: 1.0},
	{MinScore: 700, Multiplier: 0.9},
	{MinScore: 650, Multiplier: 0.8},
}

// CreditTiers returns a copy of the tier table, highest score first.
func CreditTiers() []CreditTier {
	tiers := creditTiers
	return tiers[:]
}

// CreditMultiplier returns the step-function multiplier for a credit score.
// Each tier's lower bound is inclusive.
func CreditMultiplier(score int) float64 {
	for _, tier := range creditTiers {
		if score >= tier.MinScore {
			return tier.Multiplier
		}
	}
	return FallbackCreditMultiplier
}
