// Package products describes the loan, deposit account and fund categories
// the calculators are offered for, with their advertised ranges and defaults.
package products

import (
	"fmt"
	"strings"
)

// LoanType identifies a loan product.
type LoanType string

const (
	LoanTypeHome     LoanType = "home"
	LoanTypePersonal LoanType = "personal"
	LoanTypeCar      LoanType = "car"
)

// LoanProfile holds the advertised limits and defaults of a loan product.
type LoanProfile struct {
	Type                  LoanType `json:"type"`
	MinAmount             float64  `json:"minAmount"`
	MaxAmount             float64  `json:"maxAmount"`
	DefaultRatePercent    float64  `json:"defaultRatePercent"`
	DefaultTenureYears    int      `json:"defaultTenureYears"`
	MaxTenureYears        int      `json:"maxTenureYears"`
	MaxDTIPercent         float64  `json:"maxDtiPercent"`
	MinCreditScore        int      `json:"minCreditScore"`
	MinDownPaymentPercent float64  `json:"minDownPaymentPercent"`
	PropertySecured       bool     `json:"propertySecured"`
	Description           string   `json:"description"`
}

var loanProfiles = map[LoanType]LoanProfile{
	LoanTypeHome: {
		Type:                  LoanTypeHome,
		MinAmount:             500000,
		MaxAmount:             100000000,
		DefaultRatePercent:    8.5,
		DefaultTenureYears:    20,
		MaxTenureYears:        30,
		MaxDTIPercent:         40,
		MinCreditScore:        650,
		MinDownPaymentPercent: 10,
		PropertySecured:       true,
		Description:           "Home loans typically have lower interest rates and longer tenures",
	},
	LoanTypePersonal: {
		Type:                  LoanTypePersonal,
		MinAmount:             50000,
		MaxAmount:             5000000,
		DefaultRatePercent:    12,
		DefaultTenureYears:    5,
		MaxTenureYears:        5,
		MaxDTIPercent:         50,
		MinCreditScore:        600,
		MinDownPaymentPercent: 0,
		Description:           "Personal loans are unsecured and have higher interest rates",
	},
	LoanTypeCar: {
		Type:                  LoanTypeCar,
		MinAmount:             100000,
		MaxAmount:             5000000,
		DefaultRatePercent:    10,
		DefaultTenureYears:    7,
		MaxTenureYears:        7,
		MaxDTIPercent:         45,
		MinCreditScore:        650,
		MinDownPaymentPercent: 10,
		Description:           "Car loans are secured by the vehicle and have moderate rates",
	},
}

// ParseLoanType parses a loan type name. An empty name means a home loan.
func ParseLoanType(name string) (LoanType, error) {
	lt := LoanType(strings.ToLower(strings.TrimSpace(name)))
	if lt == "" {
		return LoanTypeHome, nil
	}
	if _, ok := loanProfiles[lt]; !ok {
		return "", fmt.Errorf("unknown loan type %q: expected home, personal or car", name)
	}
	return lt, nil
}

// LoanProfileFor returns the profile of a loan type.
func LoanProfileFor(lt LoanType) (LoanProfile, bool) {
	profile, ok := loanProfiles[lt]
	return profile, ok
}

// IsPropertySecured reports whether loans of this type are secured by a
// property, which makes the down payment analysis applicable.
func (lt LoanType) IsPropertySecured() bool {
	return loanProfiles[lt].PropertySecured
}

// LoanProfiles returns every loan profile in a stable order.
func LoanProfiles() []LoanProfile {
	return []LoanProfile{
		loanProfiles[LoanTypeHome],
		loanProfiles[LoanTypePersonal],
		loanProfiles[LoanTypeCar],
	}
}

// AccountType identifies a deposit account product.
type AccountType string

const (
	AccountTypeSavings   AccountType = "savings"
	AccountTypeCD        AccountType = "cd"
	AccountTypeHighYield AccountType = "high-yield"
)

// AccountProfile holds the advertised limits and defaults of a deposit account.
type AccountProfile struct {
	Type               AccountType `json:"type"`
	MinAmount          float64     `json:"minAmount"`
	MaxAmount          float64     `json:"maxAmount"`
	DefaultRatePercent float64     `json:"defaultRatePercent"`
	DefaultTenureYears int         `json:"defaultTenureYears"`
	Description        string      `json:"description"`
}

var accountProfiles = map[AccountType]AccountProfile{
	AccountTypeSavings: {
		Type:               AccountTypeSavings,
		MinAmount:          1000,
		MaxAmount:          10000000,
		DefaultRatePercent: 4.5,
		DefaultTenureYears: 5,
		Description:        "Regular savings account with moderate interest rates",
	},
	AccountTypeCD: {
		Type:               AccountTypeCD,
		MinAmount:          10000,
		MaxAmount:          50000000,
		DefaultRatePercent: 6.5,
		DefaultTenureYears: 3,
		Description:        "Fixed deposit with higher rates and locked tenure",
	},
	AccountTypeHighYield: {
		Type:               AccountTypeHighYield,
		MinAmount:          25000,
		MaxAmount:          100000000,
		DefaultRatePercent: 7.5,
		DefaultTenureYears: 5,
		Description:        "High-yield savings with premium rates and higher minimums",
	},
}

// ParseAccountType parses an account type name. An empty name means savings.
func ParseAccountType(name string) (AccountType, error) {
	at := AccountType(strings.ToLower(strings.TrimSpace(name)))
	if at == "" {
		return AccountTypeSavings, nil
	}
	if _, ok := accountProfiles[at]; !ok {
		return "", fmt.Errorf("unknown account type %q: expected savings, cd or high-yield", name)
	}
	return at, nil
}

// AccountProfileFor returns the profile of an account type.
func AccountProfileFor(at AccountType) (AccountProfile, bool) {
	profile, ok := accountProfiles[at]
	return profile, ok
}

// AccountProfiles returns every account profile in a stable order.
func AccountProfiles() []AccountProfile {
	return []AccountProfile{
		accountProfiles[AccountTypeSavings],
		accountProfiles[AccountTypeCD],
		accountProfiles[AccountTypeHighYield],
	}
}

// FundCategory describes a mutual fund category and its typical returns.
type FundCategory struct {
	Key              string  `json:"key"`
	Name             string  `json:"name"`
	Risk             string  `json:"risk"`
	MinReturnPercent float64 `json:"minReturnPercent"`
	MaxReturnPercent float64 `json:"maxReturnPercent"`
	Horizon          string  `json:"horizon"`
	Description      string  `json:"description"`
}

// FundCategories returns the fund categories in display order.
func FundCategories() []FundCategory {
	return []FundCategory{
		{
			Key:              "equity",
			Name:             "Equity Funds",
			Risk:             "High",
			MinReturnPercent: 12,
			MaxReturnPercent: 18,
			Horizon:          "5+ years",
			Description:      "Invest in stocks, suitable for long-term growth",
		},
		{
			Key:              "debt",
			Name:             "Debt Funds",
			Risk:             "Low to Medium",
			MinReturnPercent: 6,
			MaxReturnPercent: 9,
			Horizon:          "1-3 years",
			Description:      "Invest in bonds and fixed income securities",
		},
		{
			Key:              "hybrid",
			Name:             "Hybrid Funds",
			Risk:             "Medium",
			MinReturnPercent: 9,
			MaxReturnPercent: 12,
			Horizon:          "3-5 years",
			Description:      "Mix of equity and debt for balanced growth",
		},
		{
			Key:              "index",
			Name:             "Index Funds",
			Risk:             "Medium",
			MinReturnPercent: 10,
			MaxReturnPercent: 15,
			Horizon:          "5+ years",
			Description:      "Track market indices, lower expense ratios",
		},
	}
}

// FundCategoryFor looks up a fund category by key.
func FundCategoryFor(key string) (FundCategory, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, category := range FundCategories() {
		if category.Key == key {
			return category, true
		}
	}
	return FundCategory{}, false
}
