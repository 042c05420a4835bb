package validation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the single error kind the calculators produce. Every
// rejection wraps it so callers can test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError names the input field and the constraint it violated.
type InvalidInputError struct {
	Field      string
	Constraint string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Constraint)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInput creates an InvalidInputError for field.
func NewInvalidInput(field, constraint string) *InvalidInputError {
	return &InvalidInputError{Field: field, Constraint: constraint}
}

// Require returns an InvalidInputError for field unless ok holds.
func Require(ok bool, field, constraint string) error {
	if ok {
		return nil
	}
	return NewInvalidInput(field, constraint)
}

// AsInvalidInput extracts the InvalidInputError from err, if any.
func AsInvalidInput(err error) (*InvalidInputError, bool) {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return invalid, true
	}
	return nil, false
}
