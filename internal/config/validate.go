package config

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing reported here stops a calculation from running;
// hard input errors surface when the calculation itself runs.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Output.Format != "" {
		if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	if c.Output.PreviewRows < 0 {
		warnings = append(warnings, fmt.Sprintf("output previewRows %d is negative, using %d",
			c.Output.PreviewRows, constants.DefaultPreviewRows))
	}

	if len(c.ActiveCalculations()) == 0 {
		warnings = append(warnings, "no active calculations configured")
	}

	seen := make(map[string]bool)
	for i, calc := range c.Calculations {
		name := calc.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("calculation %s has no name", name))
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("calculation name %s is used more than once", name))
		}
		seen[calc.Name] = true

		kind, err := calc.ResolvedKind()
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}

		switch kind {
		case KindLoan:
			warnings = append(warnings, loanWarnings(name, *calc.Loan)...)
		case KindDeposit:
			warnings = append(warnings, depositWarnings(name, *calc.Deposit)...)
		}
	}

	return warnings
}

func loanWarnings(name string, spec LoanSpec) []string {
	profile, err := spec.Profile()
	if err != nil {
		return []string{fmt.Sprintf("calculation %s: %v", name, err)}
	}

	var warnings []string
	if spec.Principal < profile.MinAmount || spec.Principal > profile.MaxAmount {
		warnings = append(warnings, fmt.Sprintf("calculation %s: principal %.2f is outside the %.0f-%.0f range offered for %s loans",
			name, spec.Principal, profile.MinAmount, profile.MaxAmount, profile.Type))
	}
	if !spec.Tenure.IsZero() {
		if months, err := spec.Tenure.months(); err == nil && months > profile.MaxTenureYears*constants.MonthsPerYear {
			warnings = append(warnings, fmt.Sprintf("calculation %s: tenure of %d months exceeds the %d-year maximum for %s loans",
				name, months, profile.MaxTenureYears, profile.Type))
		}
	}
	return warnings
}

func depositWarnings(name string, spec DepositSpec) []string {
	profile, err := spec.Profile()
	if err != nil {
		return []string{fmt.Sprintf("calculation %s: %v", name, err)}
	}

	if spec.Principal < profile.MinAmount || spec.Principal > profile.MaxAmount {
		return []string{fmt.Sprintf("calculation %s: principal %.2f is outside the %.0f-%.0f range offered for %s accounts",
			name, spec.Principal, profile.MinAmount, profile.MaxAmount, profile.Type)}
	}
	return nil
}
