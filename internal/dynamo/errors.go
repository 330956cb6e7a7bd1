package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepRejected is returned by adaptive steppers when the step must be retried.
	ErrStepRejected = errors.New("dynamo: step rejected by error control")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidGrid indicates a sample grid that is too short or not strictly increasing.
	ErrInvalidGrid = errors.New("dynamo: sample grid must be strictly increasing with at least two points")
)

// IntegrationError wraps an error with the grid position where it occurred.
type IntegrationError struct {
	Index   int
	T       float64
	State   State
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("sample %d (t=%.4f): %v", e.Index, e.T, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
