package dynamo

import (
	"context"
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a first-order ODE system dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator reports ErrStepRejected when the local error of the
// attempted step exceeds tol; the returned dt is the suggested retry size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

// Solver integrates an initial value problem from grid[0] and returns one
// state per grid point, with result[0] equal to x0.
type Solver interface {
	Solve(ctx context.Context, dyn System, x0 State, grid []float64) ([]State, error)
}

type Config struct {
	Tolerance     float64
	MinDt         float64
	Substeps      int
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-8,
		MinDt:         1e-14,
		Substeps:      4,
		Adaptive:      true,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Adaptive && c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping, got %g", c.Tolerance)
	}
	if c.Adaptive && c.MinDt <= 0 {
		return fmt.Errorf("min dt must be positive for adaptive stepping, got %g", c.MinDt)
	}
	if !c.Adaptive && c.Substeps < 1 {
		return fmt.Errorf("substeps must be at least 1, got %d", c.Substeps)
	}
	return nil
}
