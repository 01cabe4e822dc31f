// Package ode provides the simulation primitives for classical models.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (dX/dt = f(X, t)):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems
//   - [Integrator]: numerical stepper interface
//   - [Simulator]: orchestrates fixed-grid runs
//
// # Example
//
//	dyn := models.NewDoublePendulum()
//	integ := integrators.NewRK4()
//	s := ode.NewSimulator(dyn, integ)
//	result, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parameter sweeps and
// perturbed-initial-condition ensembles, use the [Ensemble] type which
// runs independent simulators concurrently.
package ode
