// Package dynamo provides the core simulation primitives shared by every
// experiment in physlab.
//
// The package defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations:
//
//   - [State]: flat vector representing system state
//   - [System]: interface for ODE systems (du/dt = f(u, t))
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepping
//   - [Simulator]: orchestrates a run and samples output times
//
// # Example
//
//	box, _ := hotbox.New(params)
//	sim := dynamo.New(box, integrators.NewRK45())
//	result, err := sim.Run(ctx, box.InitialState(25), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For concurrent parameter
// sweeps, use [Ensemble], which gives every run its own simulator and
// state vector.
package dynamo
