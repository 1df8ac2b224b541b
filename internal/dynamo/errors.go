package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidStep indicates a zero or non-finite step size, or a grid
	// that cannot be materialised.
	ErrInvalidStep = errors.New("dynamo: invalid step size")

	// ErrInvalidArgument indicates a missing right-hand side, a non-finite
	// bound or initial value, or an empty time grid.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")
)

// ProblemError wraps an error with the offending field.
type ProblemError struct {
	Field   string
	Value   float64
	Reason  string
	Wrapped error
}

func (e *ProblemError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s (%s=%g)", e.Wrapped, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s (%s=%g)", e.Wrapped, e.Reason, e.Field, e.Value)
}

func (e *ProblemError) Unwrap() error {
	return e.Wrapped
}

func invalid(sentinel error, field string, value float64, reason string) error {
	return &ProblemError{Field: field, Value: value, Reason: reason, Wrapped: sentinel}
}
