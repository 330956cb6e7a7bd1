package integrators

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/quarkonium/internal/dynamo"
)

// GridSolver samples an initial value problem on a caller-supplied grid.
// Each Solve call builds its own stepper, so a GridSolver may be shared
// between goroutines.
type GridSolver struct {
	newStepper func() dynamo.Integrator
	cfg        dynamo.Config
}

func NewGridSolver(newStepper func() dynamo.Integrator, cfg dynamo.Config) *GridSolver {
	return &GridSolver{newStepper: newStepper, cfg: cfg}
}

func (g *GridSolver) Config() dynamo.Config { return g.cfg }

func (g *GridSolver) Solve(ctx context.Context, dyn dynamo.System, x0 dynamo.State, grid []float64) ([]dynamo.State, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system expects %d",
			dynamo.ErrDimensionMismatch, len(x0), dyn.StateDim())
	}

	stepper := g.newStepper()
	adaptive, canAdapt := stepper.(dynamo.AdaptiveIntegrator)
	useAdaptive := g.cfg.Adaptive && canAdapt

	traj := make([]dynamo.State, len(grid))
	traj[0] = x0.Clone()

	x := x0.Clone()
	dt := grid[1] - grid[0]

	for i := 1; i < len(grid); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var err error
		if useAdaptive {
			x, dt, err = g.advanceAdaptive(adaptive, dyn, x, grid[i-1], grid[i], dt)
		} else {
			x = g.advanceFixed(stepper, dyn, x, grid[i-1], grid[i])
		}
		if err != nil {
			return nil, &dynamo.IntegrationError{Index: i, T: grid[i-1], State: x, Wrapped: err}
		}
		if g.cfg.ValidateState && !x.IsValid() {
			return nil, &dynamo.IntegrationError{Index: i, T: grid[i], State: x, Wrapped: dynamo.ErrInvalidState}
		}
		traj[i] = x
	}

	return traj, nil
}

func (g *GridSolver) advanceFixed(stepper dynamo.Integrator, dyn dynamo.System, x dynamo.State, t, end float64) dynamo.State {
	h := (end - t) / float64(g.cfg.Substeps)
	for k := 0; k < g.cfg.Substeps; k++ {
		x = stepper.Step(dyn, x, t+float64(k)*h, h)
	}
	return x
}

// advanceAdaptive integrates from t to exactly end, carrying the step size
// suggestion over to the next interval.
func (g *GridSolver) advanceAdaptive(stepper dynamo.AdaptiveIntegrator, dyn dynamo.System, x dynamo.State, t, end, dt float64) (dynamo.State, float64, error) {
	for t < end {
		h := dt
		last := h >= end-t
		if last {
			h = end - t
		}

		next, dtNew, err := stepper.StepAdaptive(dyn, x, t, h, g.cfg.Tolerance)
		switch {
		case err == nil:
			x = next
			if last {
				// a clipped step says little about the step size the
				// next interval can afford
				t, dt = end, math.Max(dt, dtNew)
			} else {
				t, dt = t+h, dtNew
			}
		case errors.Is(err, dynamo.ErrStepRejected):
			dt = dtNew
			if dt < g.cfg.MinDt {
				return x, dt, dynamo.ErrStepTooSmall
			}
		default:
			return x, dt, err
		}
	}
	return x, dt, nil
}

// ValidateGrid checks that grid has at least two finite, strictly increasing samples.
func ValidateGrid(grid []float64) error {
	if len(grid) < 2 {
		return fmt.Errorf("%w: got %d points", dynamo.ErrInvalidGrid, len(grid))
	}
	for i := range grid {
		if math.IsNaN(grid[i]) || math.IsInf(grid[i], 0) {
			return fmt.Errorf("%w: non-finite sample at index %d", dynamo.ErrInvalidGrid, i)
		}
		if i > 0 && grid[i] <= grid[i-1] {
			return fmt.Errorf("%w: grid[%d]=%g does not exceed grid[%d]=%g", dynamo.ErrInvalidGrid, i, grid[i], i-1, grid[i-1])
		}
	}
	return nil
}
