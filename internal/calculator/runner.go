package calculator

import (
	"fmt"

	"github.com/iwvelando/finance-calculators/internal/config"
	"github.com/iwvelando/finance-calculators/pkg/deposits"
	"github.com/iwvelando/finance-calculators/pkg/eligibility"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"go.uber.org/zap"
)

// Outcome holds the result of one configured calculation. Exactly one of the
// result fields is set, matching Kind.
type Outcome struct {
	Name        string              `json:"name"`
	Kind        config.Kind         `json:"kind"`
	Loan        *loans.Schedule     `json:"loan,omitempty"`
	Deposit     *deposits.Growth    `json:"deposit,omitempty"`
	Investment  *investments.Result `json:"investment,omitempty"`
	Eligibility *eligibility.Result `json:"eligibility,omitempty"`
}

// Run resolves a calculation's spec and runs the matching calculator.
func (s *Service) Run(calc config.Calculation) (Outcome, error) {
	kind, err := calc.ResolvedKind()
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{Name: calc.Name, Kind: kind}
	switch kind {
	case config.KindLoan:
		input, err := calc.Loan.ToInput()
		if err != nil {
			return outcome, err
		}
		schedule, err := s.LoanSchedule(input)
		if err != nil {
			return outcome, err
		}
		outcome.Loan = &schedule

	case config.KindDeposit:
		input, err := calc.Deposit.ToInput()
		if err != nil {
			return outcome, err
		}
		growth, err := s.DepositGrowth(input)
		if err != nil {
			return outcome, err
		}
		outcome.Deposit = &growth

	case config.KindInvestment:
		input, err := calc.Investment.ToInput()
		if err != nil {
			return outcome, err
		}
		result, err := s.InvestmentGrowth(input)
		if err != nil {
			return outcome, err
		}
		outcome.Investment = &result

	case config.KindEligibility:
		input, err := calc.Eligibility.ToInput()
		if err != nil {
			return outcome, err
		}
		result, err := s.Eligibility(input)
		if err != nil {
			return outcome, err
		}
		outcome.Eligibility = &result
	}

	return outcome, nil
}

// RunAll runs every active calculation in the configuration, in order.
func RunAll(logger *zap.Logger, conf config.Configuration) ([]Outcome, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service := NewService(logger, DefaultMemoEntries)
	var results []Outcome
	for _, calc := range conf.Calculations {
		if !calc.Active {
			logger.Debug(fmt.Sprintf("skipping calculation %s because it is inactive", calc.Name),
				zap.String("op", "calculator.RunAll"),
			)
			continue
		}

		outcome, err := service.Run(calc)
		if err != nil {
			return results, fmt.Errorf("calculation %s: %w", calc.Name, err)
		}
		logger.Info(fmt.Sprintf("completed calculation %s", calc.Name),
			zap.String("op", "calculator.RunAll"),
			zap.String("kind", string(outcome.Kind)),
		)
		results = append(results, outcome)
	}

	return results, nil
}
