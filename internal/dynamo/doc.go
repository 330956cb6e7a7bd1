// Package dynamo provides the numerical primitives shared by the solver.
//
// The package defines the fundamental interfaces and types for integrating
// first-order systems of ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: single-step numerical integrator
//   - [Solver]: initial value problem sampled on a fixed grid
//
// # Example
//
//	eq := radial.NewEquation(params)
//	newRK45 := func() dynamo.Integrator { return integrators.NewRK45() }
//	solver := integrators.NewGridSolver(newRK45, dynamo.DefaultConfig())
//	traj, err := solver.Solve(ctx, eq, dynamo.State{0, 1}, grid)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// Solvers that build a fresh integrator per Solve call may be shared.
package dynamo
