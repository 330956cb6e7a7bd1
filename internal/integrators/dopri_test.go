package integrators

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/quarkonium/internal/dynamo"
)

func TestDopriSolver_SamplesOnGrid(t *testing.T) {
	grid := linspace(0, 2*math.Pi, 200)
	traj, err := NewDopriSolver(dynamo.DefaultConfig()).Solve(context.Background(), &harmonicOscillator{}, dynamo.State{1, 0}, grid)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if len(traj) != len(grid) {
		t.Fatalf("expected %d samples, got %d", len(grid), len(traj))
	}
	if traj[0][0] != 1 || traj[0][1] != 0 {
		t.Errorf("first sample should equal x0, got %v", traj[0])
	}
	for i, r := range grid {
		if math.Abs(traj[i][0]-math.Cos(r)) > 1e-5 {
			t.Fatalf("sample %d: got %.8f, want %.8f", i, traj[i][0], math.Cos(r))
		}
	}
}

func TestDopriSolver_TwoPointGrid(t *testing.T) {
	traj, err := NewDopriSolver(dynamo.DefaultConfig()).Solve(context.Background(), &harmonicOscillator{}, dynamo.State{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if len(traj) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(traj))
	}
	if math.Abs(traj[1][0]-math.Cos(1)) > 1e-6 {
		t.Errorf("x(1) = %.10f, want %.10f", traj[1][0], math.Cos(1))
	}
}

func TestDopriSolver_MatchesGridSolverNearSingularity(t *testing.T) {
	r0 := 1e-4
	grid := make([]float64, 100)
	for i := range grid {
		grid[i] = r0 + 0.01*float64(i)
	}

	ctx := context.Background()
	want, err := rk45Solver().Solve(ctx, &stiffRadial{}, dynamo.State{0, 1}, grid)
	if err != nil {
		t.Fatalf("grid solve failed: %v", err)
	}
	got, err := NewDopriSolver(dynamo.DefaultConfig()).Solve(ctx, &stiffRadial{}, dynamo.State{0, 1}, grid)
	if err != nil {
		t.Fatalf("dopri solve failed: %v", err)
	}

	last := len(grid) - 1
	if rel := math.Abs(got[last][0]-want[last][0]) / want[last][0]; rel > 1e-4 {
		t.Errorf("u(%g): dopri %g, grid %g", grid[last], got[last][0], want[last][0])
	}
}

func TestDopriSolver_ReportsFailure(t *testing.T) {
	_, err := NewDopriSolver(dynamo.DefaultConfig()).Solve(context.Background(), &blowUp{}, dynamo.State{1}, linspace(0, 1, 5))

	var ierr *dynamo.IntegrationError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *IntegrationError, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrStepTooSmall) && !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("unexpected cause: %v", err)
	}
}

func TestDopriSolver_InvalidInput(t *testing.T) {
	ctx := context.Background()
	dyn := &harmonicOscillator{}

	bad := dynamo.DefaultConfig()
	bad.Tolerance = 0
	if _, err := NewDopriSolver(bad).Solve(ctx, dyn, dynamo.State{1, 0}, linspace(0, 1, 5)); err == nil {
		t.Error("expected error for zero tolerance")
	}

	solver := NewDopriSolver(dynamo.DefaultConfig())
	if _, err := solver.Solve(ctx, dyn, dynamo.State{1, 0}, []float64{0, 1, 0.5}); !errors.Is(err, dynamo.ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
	if _, err := solver.Solve(ctx, dyn, dynamo.State{1}, []float64{0, 1}); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := solver.Solve(canceled, dyn, dynamo.State{1, 0}, linspace(0, 1, 10)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
