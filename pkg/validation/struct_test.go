package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Principal float64 `json:"principal" validate:"finite,gt=0"`
	Rate      float64 `json:"annualRatePercent" validate:"finite,gte=0,lte=1000"`
	Term      int     `json:"termMonths" validate:"gte=1"`
	Frequency int     `json:"compoundingPeriodsPerYear" validate:"oneof=365 12 4 1"`
}

func validSample() sampleInput {
	return sampleInput{Principal: 1000, Rate: 5, Term: 12, Frequency: 12}
}

func TestStructAcceptsValidInput(t *testing.T) {
	require.NoError(t, Struct(validSample()))
}

func TestStructReportsFirstViolation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*sampleInput)
		field      string
		constraint string
	}{
		{"zero principal", func(s *sampleInput) { s.Principal = 0 }, "principal", "must be > 0"},
		{"NaN principal", func(s *sampleInput) { s.Principal = math.NaN() }, "principal", "must be a finite number"},
		{"infinite rate", func(s *sampleInput) { s.Rate = math.Inf(1) }, "annualRatePercent", "must be a finite number"},
		{"negative rate", func(s *sampleInput) { s.Rate = -0.5 }, "annualRatePercent", "must be >= 0"},
		{"absurd rate", func(s *sampleInput) { s.Rate = 5000 }, "annualRatePercent", "must be <= 1000"},
		{"zero term", func(s *sampleInput) { s.Term = 0 }, "termMonths", "must be >= 1"},
		{"unsupported frequency", func(s *sampleInput) { s.Frequency = 52 }, "compoundingPeriodsPerYear", "must be one of [365, 12, 4, 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSample()
			tt.mutate(&input)

			err := Struct(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			invalid, ok := AsInvalidInput(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, tt.constraint, invalid.Constraint)
		})
	}
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(true, "propertyValue", "must be > 0"))

	err := Require(false, "propertyValue", "must be > 0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: propertyValue must be > 0", err.Error())
}
