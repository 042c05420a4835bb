// Package calculator runs the financial calculators on behalf of the CLI and
// the HTTP server, adding logging and memoization around the pure engines.
package calculator

import (
	"github.com/iwvelando/finance-calculators/pkg/deposits"
	"github.com/iwvelando/finance-calculators/pkg/eligibility"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"go.uber.org/zap"
)

// Service is safe for concurrent use.
type Service struct {
	logger      *zap.Logger
	loans       *Memo[loans.Input, loans.Schedule]
	deposits    *Memo[deposits.Input, deposits.Growth]
	investments *Memo[investments.Input, investments.Result]
	eligibility *Memo[eligibility.Input, eligibility.Result]
	downPayment *Memo[eligibility.Input, *eligibility.DownPaymentAnalysis]
}

// NewService creates a service whose memos hold up to memoEntries results
// per calculator.
func NewService(logger *zap.Logger, memoEntries int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:      logger,
		loans:       NewMemo[loans.Input](memoEntries, loans.Schedule.Clone),
		deposits:    NewMemo[deposits.Input](memoEntries, deposits.Growth.Clone),
		investments: NewMemo[investments.Input](memoEntries, investments.Result.Clone),
		eligibility: NewMemo[eligibility.Input](memoEntries, eligibility.Result.Clone),
		downPayment: NewMemo[eligibility.Input](memoEntries, cloneDownPayment),
	}
}

func cloneDownPayment(dp *eligibility.DownPaymentAnalysis) *eligibility.DownPaymentAnalysis {
	if dp == nil {
		return nil
	}
	c := *dp
	return &c
}

// LoanSchedule amortizes a loan.
func (s *Service) LoanSchedule(input loans.Input) (loans.Schedule, error) {
	schedule, hit, err := s.loans.GetOrCompute(input, loans.ComputeLoanSchedule)
	if err != nil {
		s.logger.Debug("rejected loan input",
			zap.String("op", "calculator.LoanSchedule"),
			zap.Error(err),
		)
		return schedule, err
	}
	s.logger.Debug("computed loan schedule",
		zap.String("op", "calculator.LoanSchedule"),
		zap.Float64("principal", input.Principal),
		zap.Int("termMonths", input.TermMonths),
		zap.Int("periods", len(schedule.Periods)),
		zap.Bool("memoized", hit),
	)
	return schedule, nil
}

// DepositGrowth grows a deposit.
func (s *Service) DepositGrowth(input deposits.Input) (deposits.Growth, error) {
	growth, hit, err := s.deposits.GetOrCompute(input, deposits.ComputeDepositGrowth)
	if err != nil {
		s.logger.Debug("rejected deposit input",
			zap.String("op", "calculator.DepositGrowth"),
			zap.Error(err),
		)
		return growth, err
	}
	s.logger.Debug("computed deposit growth",
		zap.String("op", "calculator.DepositGrowth"),
		zap.Float64("principal", input.Principal),
		zap.Int("termMonths", input.TermMonths),
		zap.Bool("memoized", hit),
	)
	return growth, nil
}

// InvestmentGrowth projects an investment.
func (s *Service) InvestmentGrowth(input investments.Input) (investments.Result, error) {
	result, hit, err := s.investments.GetOrCompute(input, investments.ComputeInvestmentGrowth)
	if err != nil {
		s.logger.Debug("rejected investment input",
			zap.String("op", "calculator.InvestmentGrowth"),
			zap.Error(err),
		)
		return result, err
	}
	s.logger.Debug("computed investment growth",
		zap.String("op", "calculator.InvestmentGrowth"),
		zap.String("mode", string(input.Mode)),
		zap.Bool("memoized", hit),
	)
	return result, nil
}

// Eligibility estimates loan eligibility.
func (s *Service) Eligibility(input eligibility.Input) (eligibility.Result, error) {
	result, hit, err := s.eligibility.GetOrCompute(input, eligibility.ComputeEligibility)
	if err != nil {
		s.logger.Debug("rejected eligibility input",
			zap.String("op", "calculator.Eligibility"),
			zap.Error(err),
		)
		return result, err
	}
	s.logger.Debug("computed eligibility",
		zap.String("op", "calculator.Eligibility"),
		zap.String("loanType", string(input.LoanType)),
		zap.Int("advisories", len(result.Advisories)),
		zap.Bool("memoized", hit),
	)
	return result, nil
}

// DownPayment analyses the down payment. The analysis is nil when the loan
// type is not property-secured.
func (s *Service) DownPayment(input eligibility.Input) (*eligibility.DownPaymentAnalysis, error) {
	analysis, hit, err := s.downPayment.GetOrCompute(input, eligibility.ComputeDownPaymentAnalysis)
	if err != nil {
		s.logger.Debug("rejected down payment input",
			zap.String("op", "calculator.DownPayment"),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Debug("computed down payment analysis",
		zap.String("op", "calculator.DownPayment"),
		zap.Bool("applicable", analysis != nil),
		zap.Bool("memoized", hit),
	)
	return analysis, nil
}
