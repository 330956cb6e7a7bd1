package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/quarkonium/internal/dynamo"
	"github.com/san-kum/quarkonium/internal/integrators"
)

// Registry maps integrator names to stepper factories, and to whole-grid
// solvers for integrators that pick their own steps.
type Registry struct {
	integrators map[string]func() dynamo.Integrator
	solvers     map[string]func(dynamo.Config) dynamo.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
		solvers:     make(map[string]func(dynamo.Config) dynamo.Solver),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }
	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }

	r.solvers["dopri"] = func(cfg dynamo.Config) dynamo.Solver { return integrators.NewDopriSolver(cfg) }

	return r
}

func (r *Registry) Register(name string, factory func() dynamo.Integrator) {
	r.integrators[name] = factory
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

// Solver returns the named grid solver, or wraps the named stepper in a
// GridSolver. Each Solve call gets its own stepper.
func (r *Registry) Solver(name string, cfg dynamo.Config) (dynamo.Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fn, ok := r.solvers[name]; ok {
		return fn(cfg), nil
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return integrators.NewGridSolver(fn, cfg), nil
}

// ListIntegrators returns every name Solver accepts.
func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators)+len(r.solvers))
	for name := range r.integrators {
		names = append(names, name)
	}
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
