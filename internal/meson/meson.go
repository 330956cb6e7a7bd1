// Package meson solves bound states of a heavy quark pair. A Meson first
// fits the string tension so that the measured ground state is reproduced,
// then shoots on energy for each requested (n, l) state.
package meson

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/integrators"
	"github.com/san-kum/quarkonium/internal/metrics"
	"github.com/san-kum/quarkonium/internal/radial"
	"github.com/san-kum/quarkonium/internal/shooting"
)

type Options struct {
	// Solver integrates every trial. Nil selects adaptive RK45.
	Solver dynamo.Solver
	// Search bounds both bisections. A zero value selects shooting.DefaultConfig.
	Search shooting.Config
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Solver: integrators.NewGridSolver(func() dynamo.Integrator { return integrators.NewRK45() }, dynamo.DefaultConfig()),
		Search: shooting.DefaultConfig(),
		Logger: slog.New(slog.DiscardHandler),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Solver == nil {
		o.Solver = d.Solver
	}
	if o.Search.MaxIterations == 0 && o.Search.Threshold == 0 {
		o.Search.Threshold = d.Search.Threshold
		o.Search.MaxIterations = d.Search.MaxIterations
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}

// StateRequest asks for the state (N, L) with an energy inside Bracket.
type StateRequest struct {
	N, L    int
	Bracket [2]float64
}

func (r StateRequest) Validate() error {
	if r.N < 1 {
		return fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidQuantumNumber, r.N)
	}
	if r.L < 0 {
		return fmt.Errorf("%w: l must be >= 0, got %d", ErrInvalidQuantumNumber, r.L)
	}
	return nil
}

// Meson is safe for concurrent Solve calls once New returns.
type Meson struct {
	preset Preset
	opts   Options
	model  *radial.Model
	base   radial.Params
}

// New builds the model for preset and fits its string tension.
func New(ctx context.Context, preset Preset, opts Options) (*Meson, error) {
	opts = opts.withDefaults()
	if err := opts.Search.Validate(); err != nil {
		return nil, err
	}
	model, err := radial.NewModel(opts.Solver, preset.Grid())
	if err != nil {
		return nil, fmt.Errorf("meson %s: %w", preset.Name, err)
	}
	m := &Meson{
		preset: preset,
		opts:   opts,
		model:  model,
		base: radial.Params{
			Mu:      preset.ReducedMass(),
			Energy:  preset.ReferenceEnergy(),
			Coulomb: preset.Coulomb,
		},
	}
	if _, err := m.SolveSlope(ctx, preset.SlopeBracket[0], preset.SlopeBracket[1]); err != nil {
		return nil, fmt.Errorf("meson %s: %w", preset.Name, err)
	}
	return m, nil
}

// SolveSlope fits the string tension inside [lo, hi] so that the reference
// energy is an l = 0 eigenvalue, and keeps it for later solves. It must
// not run concurrently with Solve.
func (m *Meson) SolveSlope(ctx context.Context, lo, hi float64) (float64, error) {
	base := m.base
	base.L = 0
	res, err := shooting.Bisect(ctx, m.model.Evaluator(base, radial.Slope), lo, hi,
		m.searchConfig(radial.Slope, 1, 0))
	if err != nil {
		return 0, fmt.Errorf("slope search in [%g, %g]: %w", lo, hi, err)
	}
	m.base.Slope = res.Value
	m.opts.Logger.Info("slope fitted",
		"preset", m.preset.Name,
		"slope", res.Value,
		"iterations", res.Iterations,
		"stop", res.Stop.String(),
	)
	return res.Value, nil
}

func (m *Meson) Slope() float64        { return m.base.Slope }
func (m *Meson) Preset() Preset        { return m.preset }
func (m *Meson) Params() radial.Params { return m.base }

func (m *Meson) Grid() []float64 {
	g := make([]float64, len(m.model.Grid()))
	copy(g, m.model.Grid())
	return g
}

// Solve finds the energy of req and returns its normalized wavefunction.
// Every failure is a *SolveError.
func (m *Meson) Solve(ctx context.Context, req StateRequest) (*Wavefunction, error) {
	fail := func(err error) error {
		return &SolveError{N: req.N, L: req.L, Bracket: req.Bracket, Err: err}
	}
	if err := req.Validate(); err != nil {
		return nil, fail(err)
	}
	base := m.base
	base.L = req.L
	res, err := shooting.Bisect(ctx, m.Evaluator(req.L), req.Bracket[0], req.Bracket[1],
		m.searchConfig(radial.Energy, req.N, req.L))
	if err != nil {
		return nil, fail(err)
	}
	u, err := m.model.Trial(ctx, base.With(radial.Energy, res.Value))
	if err != nil {
		return nil, fail(err)
	}
	u, err = Normalize(m.model.Grid(), u)
	if err != nil {
		return nil, fail(err)
	}
	m1, m2 := m.preset.Masses()
	m.opts.Logger.Info("state solved",
		"preset", m.preset.Name,
		"n", req.N,
		"l", req.L,
		"energy", res.Value,
		"iterations", res.Iterations,
	)
	return &Wavefunction{
		N:          req.N,
		L:          req.L,
		Energy:     res.Value,
		Mass:       m1 + m2 + res.Value,
		Slope:      m.base.Slope,
		Grid:       m.Grid(),
		U:          u,
		Iterations: res.Iterations,
		Signature:  res.Signature,
		Stop:       res.Stop,
	}, nil
}

// Evaluator classifies energy trials for angular momentum l at the fitted
// slope.
func (m *Meson) Evaluator(l int) shooting.Evaluator {
	base := m.base
	base.L = l
	return m.model.Evaluator(base, radial.Energy)
}

func (m *Meson) searchConfig(param radial.Parameter, n, l int) shooting.Config {
	cfg := m.opts.Search
	user := cfg.OnIteration
	log := m.opts.Logger
	cfg.OnIteration = func(it shooting.Iteration) {
		log.Debug("bisect",
			"param", param.String(),
			"n", n,
			"l", l,
			"k", it.K,
			"a", it.A,
			"b", it.B,
			"c", it.C,
			"sig_a", it.SigA.String(),
			"sig_b", it.SigB.String(),
			"sig_c", it.SigC.String(),
		)
		if user != nil {
			user(it)
		}
	}
	return cfg
}

// Normalize scales u so that ∫u² dr over r is one. u is not modified.
func Normalize(r, u []float64) ([]float64, error) {
	norm := metrics.Integrate(r, metrics.Density(u))
	if !(norm > 0) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: ∫u² dr = %g", ErrDegenerateNormalization, norm)
	}
	scale := 1 / math.Sqrt(norm)
	out := make([]float64, len(u))
	for i, v := range u {
		out[i] = v * scale
	}
	return out, nil
}
