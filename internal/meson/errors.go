package meson

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuark  = errors.New("meson: unknown quark")
	ErrUnknownPreset = errors.New("meson: no preset for quark pair")

	// ErrInvalidQuantumNumber indicates n < 1 or l < 0.
	ErrInvalidQuantumNumber = errors.New("meson: invalid quantum number")

	// ErrDegenerateNormalization indicates ∫u² dr is not a positive finite number.
	ErrDegenerateNormalization = errors.New("meson: degenerate normalization")
)

// SolveError reports which state request failed.
type SolveError struct {
	N, L    int
	Bracket [2]float64
	Err     error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("solve n=%d l=%d in [%g, %g]: %v", e.N, e.L, e.Bracket[0], e.Bracket[1], e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}
