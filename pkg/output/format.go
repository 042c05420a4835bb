// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/deposits"
	"github.com/iwvelando/finance-calculators/pkg/eligibility"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/investments"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []calculator.Outcome, previewRows int) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results, previewRows)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	}
	return fmt.Errorf("unsupported output format %s", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
// Schedules are truncated to previewRows rows; non-positive values use the
// default preview size.
func PrettyFormat(w io.Writer, results []calculator.Outcome, previewRows int) error {
	if previewRows <= 0 {
		previewRows = constants.DefaultPreviewRows
	}

	pw := &prettyWriter{w: w, p: message.NewPrinter(language.English)}
	for i, result := range results {
		pw.printf("--- Results for calculation %s (%s) ---\n", result.Name, result.Kind)
		switch {
		case result.Loan != nil:
			pw.loan(*result.Loan, previewRows)
		case result.Deposit != nil:
			pw.deposit(*result.Deposit, previewRows)
		case result.Investment != nil:
			pw.investment(*result.Investment, previewRows)
		case result.Eligibility != nil:
			pw.eligibility(*result.Eligibility)
		}
		if len(results) > 1 && i < len(results)-1 {
			pw.printf("\n")
		}
	}
	return pw.err
}

type prettyWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (pw *prettyWriter) printf(format string, args ...interface{}) {
	if pw.err != nil {
		return
	}
	_, pw.err = pw.p.Fprintf(pw.w, format, args...)
}

func (pw *prettyWriter) money(label string, amount float64) {
	pw.printf("%-26s %s\n", label+":", format.Currency(amount))
}

func (pw *prettyWriter) truncated(shown, total int, unit string) {
	if shown < total {
		pw.printf("... (showing %d of %d %s)\n", shown, total, unit)
	}
}

func (pw *prettyWriter) loan(schedule loans.Schedule, previewRows int) {
	pw.money("Monthly payment", schedule.Payment)
	pw.money("Total paid", schedule.TotalPaid)
	pw.money("Total interest", schedule.TotalInterest)
	pw.printf("Period | Interest | Principal | Remaining\n")
	pw.printf("______ | ________ | _________ | _________\n")
	shown := min(previewRows, len(schedule.Periods))
	for _, period := range schedule.Periods[:shown] {
		pw.printf("%d | $%.2f | $%.2f | $%.2f\n", period.Index, period.Interest, period.Principal, period.RemainingBalance)
	}
	pw.truncated(shown, len(schedule.Periods), "periods")
}

func (pw *prettyWriter) deposit(growth deposits.Growth, previewRows int) {
	pw.printf("%-26s %s\n", "APY:", format.Percent(growth.APY*constants.PercentageMultiplier))
	pw.money("Final balance", growth.FinalBalance)
	pw.money("Total deposited", growth.TotalDeposited)
	pw.money("Total interest", growth.TotalInterest)
	pw.money("Simple interest total", growth.Comparison.SimpleInterestTotal)
	pw.money("Compounding advantage", growth.Comparison.Difference)
	pw.printf("Month | Balance | Interest\n")
	pw.printf("_____ | _______ | ________\n")
	shown := min(previewRows, len(growth.Months))
	for _, month := range growth.Months[:shown] {
		pw.printf("%d | $%.2f | $%.2f\n", month.Month, month.Balance, month.InterestEarned)
	}
	pw.truncated(shown, len(growth.Months), "months")
}

func (pw *prettyWriter) investment(result investments.Result, previewRows int) {
	pw.printf("%-26s %s\n", "Mode:", result.Mode)
	pw.money("Total contributed", result.TotalContributed)
	pw.money("Final value", result.FinalValue)
	pw.money("Total gain", result.TotalGain)
	pw.printf("%-26s %s\n", "Absolute return:", format.OptionalPercent(result.AbsoluteReturnPercent))
	pw.printf("%-26s %s\n", "CAGR:", format.OptionalPercent(result.CAGRPercent))
	if len(result.Months) == 0 {
		return
	}
	pw.printf("Month | Invested | Value | Gain\n")
	pw.printf("_____ | ________ | _____ | ____\n")
	shown := min(previewRows, len(result.Months))
	for _, month := range result.Months[:shown] {
		pw.printf("%d | $%.2f | $%.2f | $%.2f\n", month.Month, month.Invested, month.Value, month.Gain)
	}
	pw.truncated(shown, len(result.Months), "months")
}

func (pw *prettyWriter) eligibility(result eligibility.Result) {
	pw.printf("%-26s %s\n", "Loan type:", result.LoanType)
	pw.printf("%-26s %s\n", "Debt-to-income ratio:", format.Percent(result.DebtToIncomeRatioPercent))
	pw.money("Max EMI capacity", result.MaxEMICapacity)
	pw.money("Max sustainable EMI", result.MaxSustainableEMI)
	pw.printf("%-26s %.1f\n", "Credit multiplier:", result.CreditMultiplier)
	pw.money("Max approved loan", result.MaxApprovedLoanAmount)
	pw.money("Recommended loan", result.RecommendedLoanAmount)
	pw.printf("%-26s %s\n", "Residual affordability:", format.Percent(result.ResidualAffordabilityPercent))
	for _, advisory := range result.Advisories {
		pw.printf("Advisory: %s\n", advisory)
	}
	if dp := result.DownPayment; dp != nil {
		pw.printf("Down payment analysis:\n")
		pw.money("  Minimum down payment", dp.MinimumDownPayment)
		pw.money("  Recommended down payment", dp.RecommendedDownPayment)
		pw.money("  EMI with minimum down", dp.EMIWithMinimumDown)
		pw.money("  EMI with recommended down", dp.EMIWithRecommendedDown)
		pw.money("  Lifetime EMI savings", dp.LifetimeEMISavings)
	}
}

// CsvFormat outputs in comma-separated value format, one metric per row.
// Schedule rows carry their period number; summary rows leave it empty.
func CsvFormat(w io.Writer, results []calculator.Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"calculation", "kind", "period", "metric", "value"}); err != nil {
		return err
	}

	for _, result := range results {
		for _, row := range csvRows(result) {
			record := append([]string{result.Name, string(result.Kind)}, row...)
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// CsvString renders results as CSV into a string.
func CsvString(results []calculator.Outcome) (string, error) {
	var b strings.Builder
	if err := CsvFormat(&b, results); err != nil {
		return "", err
	}
	return b.String(), nil
}

func money(v float64) string {
	return mathutil.ToDecimal(v).StringFixed(constants.DecimalPlaces)
}

func ratio(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalRatio(v *float64) string {
	if v == nil {
		return ""
	}
	return ratio(*v)
}

func summary(metric, value string) []string {
	return []string{"", metric, value}
}

func periodRow(period int, metric, value string) []string {
	return []string{strconv.Itoa(period), metric, value}
}

func csvRows(result calculator.Outcome) [][]string {
	var rows [][]string
	switch {
	case result.Loan != nil:
		s := result.Loan
		rows = append(rows,
			summary("payment", money(s.Payment)),
			summary("totalPaid", money(s.TotalPaid)),
			summary("totalInterest", money(s.TotalInterest)),
		)
		for _, p := range s.Periods {
			rows = append(rows,
				periodRow(p.Index, "interestPortion", money(p.Interest)),
				periodRow(p.Index, "principalPortion", money(p.Principal)),
				periodRow(p.Index, "remainingBalance", money(p.RemainingBalance)),
			)
		}

	case result.Deposit != nil:
		g := result.Deposit
		rows = append(rows,
			summary("apy", ratio(g.APY)),
			summary("finalBalance", money(g.FinalBalance)),
			summary("totalDeposited", money(g.TotalDeposited)),
			summary("totalInterest", money(g.TotalInterest)),
			summary("simpleInterestTotal", money(g.Comparison.SimpleInterestTotal)),
			summary("difference", money(g.Comparison.Difference)),
		)
		for _, m := range g.Months {
			rows = append(rows,
				periodRow(m.Month, "balance", money(m.Balance)),
				periodRow(m.Month, "interestEarned", money(m.InterestEarned)),
			)
		}

	case result.Investment != nil:
		r := result.Investment
		rows = append(rows,
			summary("mode", string(r.Mode)),
			summary("totalContributed", money(r.TotalContributed)),
			summary("finalValue", money(r.FinalValue)),
			summary("totalGain", money(r.TotalGain)),
			summary("absoluteReturnPercent", optionalRatio(r.AbsoluteReturnPercent)),
			summary("cagrPercent", optionalRatio(r.CAGRPercent)),
		)
		for _, m := range r.Months {
			rows = append(rows,
				periodRow(m.Month, "invested", money(m.Invested)),
				periodRow(m.Month, "value", money(m.Value)),
				periodRow(m.Month, "gain", money(m.Gain)),
			)
		}

	case result.Eligibility != nil:
		e := result.Eligibility
		rows = append(rows,
			summary("loanType", string(e.LoanType)),
			summary("debtToIncomeRatioPercent", ratio(e.DebtToIncomeRatioPercent)),
			summary("maxEmiCapacity", money(e.MaxEMICapacity)),
			summary("maxSustainableEmi", money(e.MaxSustainableEMI)),
			summary("creditMultiplier", ratio(e.CreditMultiplier)),
			summary("baseMaxLoanAmount", money(e.BaseMaxLoanAmount)),
			summary("maxApprovedLoanAmount", money(e.MaxApprovedLoanAmount)),
			summary("recommendedLoanAmount", money(e.RecommendedLoanAmount)),
			summary("residualAffordabilityPercent", ratio(e.ResidualAffordabilityPercent)),
		)
		for _, advisory := range e.Advisories {
			rows = append(rows, summary("advisory", advisory))
		}
		if dp := e.DownPayment; dp != nil {
			rows = append(rows,
				summary("minimumDownPayment", money(dp.MinimumDownPayment)),
				summary("recommendedDownPayment", money(dp.RecommendedDownPayment)),
				summary("emiWithMinimumDown", money(dp.EMIWithMinimumDown)),
				summary("emiWithRecommendedDown", money(dp.EMIWithRecommendedDown)),
				summary("lifetimeEmiSavings", money(dp.LifetimeEMISavings)),
			)
		}
	}
	return rows
}

// JSONFormat outputs the full results as indented JSON.
func JSONFormat(w io.Writer, results []calculator.Outcome) error {
	if results == nil {
		results = []calculator.Outcome{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
