package integrators

import (
	"context"
	"fmt"

	"github.com/ready-steady/ode/dopri"

	"github.com/san-kum/quarkonium/internal/dynamo"
)

// DopriSolver samples an initial value problem on a grid with the
// Dormand-Prince integrator from github.com/ready-steady/ode. The library
// picks its own steps and interpolates onto the grid points.
//
// Cancellation is only observed before and after the integration; a single
// Solve call runs to completion once started.
type DopriSolver struct {
	cfg dynamo.Config
}

func NewDopriSolver(cfg dynamo.Config) *DopriSolver {
	return &DopriSolver{cfg: cfg}
}

func (d *DopriSolver) Config() dynamo.Config { return d.cfg }

func (d *DopriSolver) Solve(ctx context.Context, dyn dynamo.System, x0 dynamo.State, grid []float64) ([]dynamo.State, error) {
	if d.cfg.Tolerance <= 0 {
		return nil, fmt.Errorf("tolerance must be positive, got %g", d.cfg.Tolerance)
	}
	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}
	if len(x0) != dyn.StateDim() {
		return nil, fmt.Errorf("%w: initial state has %d components, system expects %d",
			dynamo.ErrDimensionMismatch, len(x0), dyn.StateDim())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	integrator, err := dopri.New(&dopri.Config{
		AbsError: d.cfg.Tolerance,
		RelError: d.cfg.Tolerance,
	})
	if err != nil {
		return nil, err
	}

	// the library only reports fixed points for three or more samples
	xs := grid
	if len(grid) == 2 {
		xs = []float64{grid[0], (grid[0] + grid[1]) / 2, grid[1]}
	}

	deriv := func(t float64, x, dx []float64) {
		copy(dx, dyn.Derive(dynamo.State(x), t))
	}
	ys, _, err := integrator.Compute(deriv, x0, xs)
	if err != nil {
		return nil, &dynamo.IntegrationError{Index: 0, T: grid[0], State: x0.Clone(),
			Wrapped: fmt.Errorf("%w: %v", dynamo.ErrStepTooSmall, err)}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(x0)
	traj := make([]dynamo.State, 0, len(grid))
	for i := range xs {
		if len(xs) != len(grid) && i == 1 {
			continue
		}
		x := dynamo.State(ys[i*n : (i+1)*n : (i+1)*n])
		if d.cfg.ValidateState && !x.IsValid() {
			return nil, &dynamo.IntegrationError{Index: len(traj), T: xs[i], State: x, Wrapped: dynamo.ErrInvalidState}
		}
		traj = append(traj, x)
	}
	return traj, nil
}
