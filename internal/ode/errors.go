package ode

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrEnergyDrift indicates the energy-drift guard tripped.
	ErrEnergyDrift = errors.New("ode: maximum energy drift exceeded")

	// ErrStepTooSmall indicates the adaptive timestep fell below MinDt.
	ErrStepTooSmall = errors.New("ode: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("ode: dimension mismatch between state and system")
)

// StepError wraps an error with the step and simulation time at which
// it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
