package experiment

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/quarkonium/internal/config"
	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/integrators"
	"github.com/san-kum/quarkonium/internal/shooting"
)

func TestRegistryIntegrators(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"dopri", "euler", "leapfrog", "rk4", "rk45", "verlet"}, r.ListIntegrators())

	for _, name := range []string{"euler", "leapfrog", "rk4", "rk45", "verlet"} {
		in, err := r.GetIntegrator(name)
		require.NoError(t, err, name)
		assert.NotNil(t, in)
	}

	_, err := r.GetIntegrator("dopri")
	assert.Error(t, err, "dopri has no single-step form")
	_, err = r.GetIntegrator("bogus")
	assert.Error(t, err)
}

func TestRegistrySolver(t *testing.T) {
	r := NewRegistry()

	s, err := r.Solver("rk45", dynamo.DefaultConfig())
	require.NoError(t, err)
	require.IsType(t, &integrators.GridSolver{}, s)
	assert.Equal(t, dynamo.DefaultConfig(), s.(*integrators.GridSolver).Config())

	d, err := r.Solver("dopri", dynamo.DefaultConfig())
	require.NoError(t, err)
	require.IsType(t, &integrators.DopriSolver{}, d)

	bad := dynamo.DefaultConfig()
	bad.Tolerance = 0
	for _, name := range []string{"rk45", "dopri"} {
		_, err = r.Solver(name, bad)
		assert.Error(t, err, name)
	}

	_, err = r.Solver("bogus", dynamo.DefaultConfig())
	assert.Error(t, err)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("midpoint", func() dynamo.Integrator { return integrators.NewRK4() })

	_, err := r.GetIntegrator("midpoint")
	assert.NoError(t, err)
}

func TestRunCharmoniumGroundState(t *testing.T) {
	cfg := config.GetPreset("charmonium")
	cfg.States = cfg.States[:1]

	var iterations atomic.Int64
	exp := New(cfg, nil, nil)
	exp.Observe(func(shooting.Iteration) { iterations.Add(1) })

	res, err := exp.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "charmonium", res.Name)
	assert.Equal(t, "rk45", res.Integrator)
	assert.InDelta(t, 0.19509, res.Slope, 1e-4)
	require.Len(t, res.Wavefunctions, 1)
	assert.InDelta(t, 0.388, res.Wavefunctions[0].Energy, 1e-3)
	assert.Positive(t, iterations.Load())
}

func TestRunDopriMatchesGridSolver(t *testing.T) {
	run := func(integrator string) *Result {
		cfg := config.GetPreset("charmonium")
		cfg.States = cfg.States[:1]
		cfg.Integrator = integrator
		res, err := New(cfg, nil, nil).Run(context.Background())
		require.NoError(t, err, integrator)
		require.Len(t, res.Wavefunctions, 1)
		return res
	}

	grid, lib := run("rk45"), run("dopri")
	assert.Equal(t, "dopri", lib.Integrator)
	assert.InDelta(t, grid.Slope, lib.Slope, 1e-4)
	assert.InDelta(t, grid.Wavefunctions[0].Energy, lib.Wavefunctions[0].Energy, 1e-4)
	assert.InDelta(t, 0.388, lib.Wavefunctions[0].Energy, 1e-3)
	assert.Equal(t, 0.0, lib.Wavefunctions[0].U[0])
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Integrator = "bogus"

	_, err := New(cfg, nil, nil).Run(context.Background())
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.Workers = 0
	_, err = New(cfg, nil, nil).Run(context.Background())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
