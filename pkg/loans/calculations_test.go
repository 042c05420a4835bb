package loans

import (
	"fmt"
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMonthlyPayment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termMonths        int
		expectedRange     []float64 // [min, max] expected range
	}{
		{
			name:              "Standard 30-year mortgage",
			principal:         240000,
			annualRatePercent: 6.0,
			termMonths:        360,
			expectedRange:     []float64{1438, 1440}, // Around $1438.92
		},
		{
			name:              "5-year car loan",
			principal:         20000,
			annualRatePercent: 4.0,
			termMonths:        60,
			expectedRange:     []float64{368, 369}, // Around $368.33
		},
		{
			name:              "Zero interest loan",
			principal:         10000,
			annualRatePercent: 0.0,
			termMonths:        60,
			expectedRange:     []float64{166.66, 166.67}, // Exactly $166.666...
		},
		{
			name:              "High interest loan",
			principal:         10000,
			annualRatePercent: 18.0,
			termMonths:        36,
			expectedRange:     []float64{361, 362}, // Around $361.52
		},
		{
			name:              "Reference home loan",
			principal:         5000000,
			annualRatePercent: 8.5,
			termMonths:        240,
			expectedRange:     []float64{43390, 43392},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateMonthlyPayment(tt.principal, tt.annualRatePercent, tt.termMonths)

			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("CalculateMonthlyPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}

func TestCalculateMonthlyPaymentNegligibleRate(t *testing.T) {
	// A rate too small to move (1+r)^n off 1 must not divide by zero.
	payment := CalculateMonthlyPayment(1200, 1e-15, 12)
	assert.InDelta(t, 100, payment, 1e-9)
}

func TestCalculateInterestPayment(t *testing.T) {
	tests := []struct {
		name               string
		remainingPrincipal float64
		annualRatePercent  float64
		expected           float64
	}{
		{"Standard mortgage interest", 200000, 6.0, 1000.0},
		{"Car loan interest", 15000, 4.5, 56.25},
		{"Zero interest", 10000, 0.0, 0.0},
		{"High interest", 5000, 24.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateInterestPayment(tt.remainingPrincipal, tt.annualRatePercent)

			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("CalculateInterestPayment() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestCalculateMaxPrincipalRoundTrip(t *testing.T) {
	tests := []struct {
		payment           float64
		annualRatePercent float64
		termMonths        int
	}{
		{20000, 8.5, 240},
		{5000, 12, 60},
		{1500, 0, 84},
		{750, 36, 12},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.0f@%.1f%%x%d", tt.payment, tt.annualRatePercent, tt.termMonths), func(t *testing.T) {
			principal := CalculateMaxPrincipal(tt.payment, tt.annualRatePercent, tt.termMonths)
			recovered := CalculateMonthlyPayment(principal, tt.annualRatePercent, tt.termMonths)
			assert.InDelta(t, tt.payment, recovered, 0.01)
		})
	}

	assert.Equal(t, 1500.0*84, CalculateMaxPrincipal(1500, 0, 84))
}

func TestComputeLoanScheduleReferenceLoan(t *testing.T) {
	schedule, err := ComputeLoanSchedule(Input{Principal: 5000000, AnnualRatePercent: 8.5, TermMonths: 240})
	require.NoError(t, err)

	assert.InDelta(t, 43391, schedule.Payment, 1)
	require.Len(t, schedule.Periods, 240)

	last := schedule.Periods[len(schedule.Periods)-1]
	assert.Equal(t, 240, last.Index)
	assert.Equal(t, 0.0, last.RemainingBalance)

	assert.InDelta(t, 5000000, schedule.TotalPrincipal(), 1)
	assert.InDelta(t, schedule.Payment*240, schedule.TotalPaid, 1e-6)
	assert.InDelta(t, schedule.TotalPaid-5000000, schedule.TotalInterest, 1e-6)

	first := schedule.Periods[0]
	assert.InDelta(t, 5000000*0.085/12, first.Interest, 1e-6)
	assert.InDelta(t, schedule.Payment-first.Interest, first.Principal, 1e-9)
}

func TestComputeLoanScheduleInvariants(t *testing.T) {
	inputs := []Input{
		{Principal: 100000, AnnualRatePercent: 5, TermMonths: 60},
		{Principal: 250000, AnnualRatePercent: 6.75, TermMonths: 360},
		{Principal: 1000, AnnualRatePercent: 24, TermMonths: 12},
		{Principal: 999.99, AnnualRatePercent: 0.1, TermMonths: 7},
		{Principal: 50000, AnnualRatePercent: 120, TermMonths: 48},
		{Principal: 12345.67, AnnualRatePercent: 9.99, TermMonths: 1},
	}

	for _, input := range inputs {
		t.Run(fmt.Sprintf("%.2f@%.2f%%x%d", input.Principal, input.AnnualRatePercent, input.TermMonths), func(t *testing.T) {
			schedule, err := ComputeLoanSchedule(input)
			require.NoError(t, err)
			require.NotEmpty(t, schedule.Periods)
			assert.LessOrEqual(t, len(schedule.Periods), input.TermMonths)

			previous := input.Principal
			for i, period := range schedule.Periods {
				assert.Equal(t, i+1, period.Index)
				assert.LessOrEqual(t, period.RemainingBalance, previous)
				assert.GreaterOrEqual(t, period.RemainingBalance, 0.0)
				previous = period.RemainingBalance
			}

			assert.Equal(t, 0.0, schedule.Periods[len(schedule.Periods)-1].RemainingBalance)
			assert.InDelta(t, input.Principal, schedule.TotalPrincipal(), 1)
		})
	}
}

func TestComputeLoanScheduleZeroRate(t *testing.T) {
	schedule, err := ComputeLoanSchedule(Input{Principal: 12000, AnnualRatePercent: 0, TermMonths: 60})
	require.NoError(t, err)

	assert.Equal(t, 200.0, schedule.Payment)
	assert.Equal(t, 0.0, schedule.TotalInterest)
	assert.InDelta(t, 12000, schedule.TotalPaid, 0.01)
	require.Len(t, schedule.Periods, 60)

	for _, period := range schedule.Periods {
		assert.Equal(t, 0.0, period.Interest)
		assert.Equal(t, schedule.Payment, period.Principal)
	}
	assert.Equal(t, 0.0, schedule.Periods[59].RemainingBalance)
}

func TestComputeLoanScheduleZeroRateKeepsFullTerm(t *testing.T) {
	// A flat schedule never terminates early, even when the balance
	// rounds to zero before the last period.
	schedule, err := ComputeLoanSchedule(Input{Principal: 0.01, AnnualRatePercent: 0, TermMonths: 3})
	require.NoError(t, err)

	assert.Len(t, schedule.Periods, 3)
	assert.InDelta(t, 0.01, schedule.TotalPaid, 1e-12)
}

func TestComputeLoanScheduleEarlyTermination(t *testing.T) {
	schedule, err := ComputeLoanSchedule(Input{Principal: 0.01, AnnualRatePercent: 12, TermMonths: 3})
	require.NoError(t, err)

	require.Len(t, schedule.Periods, 2)
	assert.Equal(t, 0.0, schedule.Periods[1].RemainingBalance)
	assert.InDelta(t, schedule.Payment*2, schedule.TotalPaid, 1e-12)
}

func TestComputeLoanScheduleRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		field string
	}{
		{"zero principal", Input{Principal: 0, AnnualRatePercent: 5, TermMonths: 12}, "principal"},
		{"negative principal", Input{Principal: -100, AnnualRatePercent: 5, TermMonths: 12}, "principal"},
		{"negative rate", Input{Principal: 1000, AnnualRatePercent: -1, TermMonths: 12}, "annualRatePercent"},
		{"zero term", Input{Principal: 1000, AnnualRatePercent: 5, TermMonths: 0}, "termMonths"},
		{"NaN principal", Input{Principal: math.NaN(), AnnualRatePercent: 5, TermMonths: 12}, "principal"},
		{"infinite rate", Input{Principal: 1000, AnnualRatePercent: math.Inf(1), TermMonths: 12}, "annualRatePercent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLoanSchedule(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, validation.ErrInvalidInput)

			invalid, ok := validation.AsInvalidInput(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestComputeLoanScheduleIsIdempotent(t *testing.T) {
	input := Input{Principal: 350000, AnnualRatePercent: 7.25, TermMonths: 180}

	first, err := ComputeLoanSchedule(input)
	require.NoError(t, err)
	second, err := ComputeLoanSchedule(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScheduleClone(t *testing.T) {
	schedule, err := ComputeLoanSchedule(Input{Principal: 1000, AnnualRatePercent: 5, TermMonths: 3})
	require.NoError(t, err)

	clone := schedule.Clone()
	clone.Periods[0].Interest = -1

	assert.NotEqual(t, clone.Periods[0].Interest, schedule.Periods[0].Interest)
}
