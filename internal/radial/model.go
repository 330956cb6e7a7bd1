package radial

import (
	"context"

	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/integrators"
	"github.com/san-kum/quarkonium/internal/shooting"
)

// Model binds a sample grid to an IVP solver. It holds no trial parameters,
// so concurrent Trial calls are safe whenever the solver is.
type Model struct {
	solver dynamo.Solver
	grid   []float64
}

func NewModel(solver dynamo.Solver, grid []float64) (*Model, error) {
	if err := integrators.ValidateGrid(grid); err != nil {
		return nil, err
	}
	g := make([]float64, len(grid))
	copy(g, grid)
	return &Model{solver: solver, grid: g}, nil
}

func (m *Model) Grid() []float64 { return m.grid }

// InitialState is u = 0 with unit slope at the first grid point.
func InitialState() dynamo.State { return dynamo.State{0, 1} }

// Trial integrates the radial equation for p and returns u on the grid.
func (m *Model) Trial(ctx context.Context, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	traj, err := m.solver.Solve(ctx, NewEquation(p), InitialState(), m.grid)
	if err != nil {
		return nil, err
	}
	u := make([]float64, len(traj))
	for i, s := range traj {
		u[i] = s[0]
	}
	return u, nil
}

// Evaluator classifies trials that differ from base only in param.
func (m *Model) Evaluator(base Params, param Parameter) shooting.Evaluator {
	return func(ctx context.Context, v float64) (shooting.Signature, error) {
		u, err := m.Trial(ctx, base.With(param, v))
		if err != nil {
			return shooting.Signature{}, err
		}
		return shooting.Classify(u), nil
	}
}
