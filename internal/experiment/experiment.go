// Package experiment turns a run plan into solved wavefunctions.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/quarkonium/internal/config"
	"github.com/san-kum/quarkonium/internal/meson"
	"github.com/san-kum/quarkonium/internal/shooting"
)

type Result struct {
	Name          string
	Preset        meson.Preset
	Integrator    string
	Slope         float64
	Wavefunctions []*meson.Wavefunction
	Started       time.Time
	Elapsed       time.Duration
}

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *slog.Logger
	observer func(shooting.Iteration)
}

func New(cfg *config.Config, registry *Registry, logger *slog.Logger) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Observe registers fn for every bisection iteration of the run. fn may be
// called from several goroutines when Workers > 1.
func (e *Experiment) Observe(fn func(shooting.Iteration)) {
	e.observer = fn
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	preset, err := e.cfg.MesonPreset()
	if err != nil {
		return nil, err
	}
	solver, err := e.registry.Solver(e.cfg.Integrator, e.cfg.SolverConfig())
	if err != nil {
		return nil, err
	}

	search := e.cfg.SearchConfig()
	search.OnIteration = e.observer

	start := time.Now()
	e.logger.Info("run started",
		"name", e.cfg.Name,
		"preset", preset.Name,
		"integrator", e.cfg.Integrator,
		"states", len(e.cfg.States),
	)

	m, err := meson.New(ctx, preset, meson.Options{
		Solver: solver,
		Search: search,
		Logger: e.logger,
	})
	if err != nil {
		return nil, err
	}

	wfs, err := m.SolveAll(ctx, e.cfg.Requests(), e.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.cfg.Name, err)
	}

	res := &Result{
		Name:          e.cfg.Name,
		Preset:        preset,
		Integrator:    e.cfg.Integrator,
		Slope:         m.Slope(),
		Wavefunctions: wfs,
		Started:       start,
		Elapsed:       time.Since(start),
	}
	e.logger.Info("run finished", "name", res.Name, "elapsed", res.Elapsed)
	return res, nil
}
