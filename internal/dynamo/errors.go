package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrNonFinite indicates the state picked up a NaN or Inf entry.
	ErrNonFinite = errors.New("dynamo: non-finite state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep fell below the minimum.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrStepBudget indicates the run exhausted its step budget.
	ErrStepBudget = errors.New("dynamo: step budget exhausted")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("dynamo: run canceled by context")
)

// ConfigError reports an invalid grid or simulation configuration.
// It is returned before any integration is attempted.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config: " + e.Msg
}

func Configf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// IntegrationError reports a failed run. Partial holds the trajectory
// sampled before the failure, and Time is the last valid time reached.
type IntegrationError struct {
	Time    float64
	Steps   int
	Partial *Result
	Wrapped error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at t=%.6g after %d steps: %v", e.Time, e.Steps, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}
