package radial

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/integrators"
	"github.com/san-kum/quarkonium/internal/shooting"
)

func testGrid(rmax float64) []float64 {
	n := int(math.Ceil((rmax - 0.0001) / 0.01))
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = 0.0001 + 0.01*float64(i)
	}
	return grid
}

func testModel(t *testing.T, rmax float64) *Model {
	t.Helper()
	solver := integrators.NewGridSolver(func() dynamo.Integrator { return integrators.NewRK45() }, dynamo.DefaultConfig())
	m, err := NewModel(solver, testGrid(rmax))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func TestEquationDerive(t *testing.T) {
	p := Params{Mu: 0.67, L: 1, Energy: 0.4, Slope: 0.2, Coulomb: 0.4}
	eq := NewEquation(p)

	r := 2.0
	dx := eq.Derive(dynamo.State{0.5, -0.25}, r)

	want := (2.0/(r*r) - 2*0.67*(0.4-0.2*r+4*0.4/(3*r))) * 0.5
	if dx[0] != -0.25 {
		t.Errorf("du/dr = %f, want -0.25", dx[0])
	}
	if math.Abs(dx[1]-want) > 1e-12 {
		t.Errorf("d2u/dr2 = %.12f, want %.12f", dx[1], want)
	}
}

func TestEquationDeriveAtOrigin(t *testing.T) {
	eq := NewEquation(Params{Mu: 1, L: 2, Energy: 1, Slope: 1, Coulomb: 1})

	for _, r := range []float64{0, -1} {
		dx := eq.Derive(dynamo.State{1, 3}, r)
		if dx[0] != 3 || dx[1] != 0 {
			t.Errorf("Derive at r=%g = %v, want [3 0]", r, dx)
		}
	}
}

func TestParamsWith(t *testing.T) {
	base := Params{Mu: 1, Energy: 0.1, Slope: 0.2}

	e := base.With(Energy, 0.7)
	s := base.With(Slope, 0.9)

	if e.Energy != 0.7 || e.Slope != 0.2 {
		t.Errorf("With(Energy) = %+v", e)
	}
	if s.Slope != 0.9 || s.Energy != 0.1 {
		t.Errorf("With(Slope) = %+v", s)
	}
	if base.Energy != 0.1 || base.Slope != 0.2 {
		t.Error("With mutated the receiver")
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"negative l", Params{Mu: 1, L: -1}},
		{"zero mass", Params{Mu: 0}},
		{"nan mass", Params{Mu: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestPotential(t *testing.T) {
	p := Params{Slope: 0.2, Coulomb: 0.3}
	if got, want := p.Potential(1.0), 0.2-0.4; math.Abs(got-want) > 1e-12 {
		t.Errorf("V(1) = %f, want %f", got, want)
	}
}

func TestTrialStartsAtInitialCondition(t *testing.T) {
	m := testModel(t, 5)

	u, err := m.Trial(context.Background(), Params{Mu: 0.5, Slope: 1, Energy: 2})
	if err != nil {
		t.Fatalf("trial failed: %v", err)
	}
	if len(u) != len(m.Grid()) {
		t.Fatalf("expected %d samples, got %d", len(m.Grid()), len(u))
	}
	if u[0] != 0 {
		t.Errorf("u[0] = %g, want 0", u[0])
	}
	if u[1] <= 0 {
		t.Errorf("u should rise from the origin, got u[1] = %g", u[1])
	}
}

func TestTrialRejectsInvalidParams(t *testing.T) {
	m := testModel(t, 1)
	if _, err := m.Trial(context.Background(), Params{Mu: 1, L: -2}); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestNewModelRejectsBadGrid(t *testing.T) {
	solver := integrators.NewGridSolver(func() dynamo.Integrator { return integrators.NewRK45() }, dynamo.DefaultConfig())
	if _, err := NewModel(solver, []float64{1, 0.5}); !errors.Is(err, dynamo.ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
}

// With mu = 1/2, b = 1 and no Coulomb term the s-wave levels are the
// negated zeros of the Airy function.
func TestLinearPotentialGroundState(t *testing.T) {
	m := testModel(t, 10)
	base := Params{Mu: 0.5, L: 0, Slope: 1}

	res, err := shooting.Bisect(context.Background(), m.Evaluator(base, Energy), 2.2, 2.5, shooting.DefaultConfig())
	if err != nil {
		t.Fatalf("bisect failed: %v", err)
	}

	const airyZero = 2.338107410459767
	if math.Abs(res.Value-airyZero) > 1e-3 {
		t.Errorf("E = %.6f, want %.6f", res.Value, airyZero)
	}
}

func TestSlopeSearchRecoversSlope(t *testing.T) {
	m := testModel(t, 10)
	base := Params{Mu: 0.5, L: 0, Energy: 2.338107410459767}

	res, err := shooting.Bisect(context.Background(), m.Evaluator(base, Slope), 0.9, 1.1, shooting.DefaultConfig())
	if err != nil {
		t.Fatalf("bisect failed: %v", err)
	}
	if math.Abs(res.Value-1) > 1e-3 {
		t.Errorf("b = %.6f, want 1", res.Value)
	}
}
