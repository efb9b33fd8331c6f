package dynamo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// du/dt = -u, solution u(t) = u0 * exp(-t).
type decay struct{}

func (d *decay) StateDim() int { return 1 }

func (d *decay) Derive(x State, t float64) State {
	return State{-x[0]}
}

// blowsUp produces a NaN derivative after the given time.
type blowsUp struct{ after float64 }

func (b *blowsUp) StateDim() int { return 1 }

func (b *blowsUp) Derive(x State, t float64) State {
	if t > b.after {
		return State{math.NaN()}
	}
	return State{1}
}

type eulerStep struct{}

func (e *eulerStep) Step(dyn System, x State, t, dt float64) State {
	dx := dyn.Derive(x, t)
	out := make(State, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

func TestRunSamplesAtOutputTimes(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.001
	cfg.Duration = 1.0
	cfg.OutputTimes = []float64{0, 0.25, 0.5, 1.0}

	res, err := sim.Run(context.Background(), State{1}, cfg)
	require.NoError(t, err)
	require.True(t, res.Completed)
	require.Len(t, res.Times, 4)

	for i, want := range cfg.OutputTimes {
		assert.InDelta(t, want, res.Times[i], 1e-9)
		assert.InDelta(t, math.Exp(-want), res.States[i][0], 1e-3)
	}
	assert.InDelta(t, 1.0, res.LastTime(), 1e-9)
}

func TestRunRecordsEveryStepWithoutOutputTimes(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	res, err := sim.Run(context.Background(), State{1}, cfg)
	require.NoError(t, err)
	assert.Len(t, res.Times, 11) // t=0 plus 10 steps
	assert.Equal(t, 10, res.StepsTaken)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	cases := []struct {
		name string
		mod  func(*Config)
		x0   State
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, State{1}},
		{"negative duration", func(c *Config) { c.Duration = -1 }, State{1}},
		{"adaptive without tolerance", func(c *Config) { c.Adaptive = true; c.Tolerance = 0 }, State{1}},
		{"dimension mismatch", func(c *Config) {}, State{1, 2}},
		{"output time past duration", func(c *Config) { c.OutputTimes = []float64{99} }, State{1}},
		{"adaptive with fixed-step integrator", func(c *Config) { c.Adaptive = true }, State{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Duration = 1
			tc.mod(&cfg)
			_, err := sim.Run(context.Background(), tc.x0, cfg)
			require.Error(t, err)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRunSurfacesNonFiniteAsIntegrationError(t *testing.T) {
	sim := New(&blowsUp{after: 0.5}, &eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0
	cfg.OutputTimes = []float64{0.2, 0.4, 0.9}

	res, err := sim.Run(context.Background(), State{0}, cfg)
	require.Error(t, err)

	var intErr *IntegrationError
	require.ErrorAs(t, err, &intErr)
	assert.ErrorIs(t, err, ErrNonFinite)

	// The partial trajectory holds the samples before the failure.
	require.NotNil(t, intErr.Partial)
	assert.Len(t, intErr.Partial.Times, 2)
	assert.False(t, intErr.Partial.Completed)
	assert.Greater(t, intErr.Time, 0.4)
	assert.Same(t, res, intErr.Partial)
}

func TestRunStepBudget(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.001
	cfg.Duration = 1.0
	cfg.MaxSteps = 5

	_, err := sim.Run(context.Background(), State{1}, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepBudget)
}

func TestRunHonorsCancellation(t *testing.T) {
	sim := New(&decay{}, &eulerStep{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.Dt = 0.001
	cfg.Duration = 1.0

	_, err := sim.Run(ctx, State{1}, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestEnsembleRunsIndependently(t *testing.T) {
	build := func(i int) (*Simulator, State, Config) {
		cfg := DefaultConfig()
		cfg.Dt = 0.01
		cfg.Duration = 1.0
		cfg.OutputTimes = []float64{1.0}
		return New(&decay{}, &eulerStep{}), State{float64(i + 1)}, cfg
	}

	results, err := NewEnsemble(4, build).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Forward Euler on du/dt=-u contracts by exactly (1-dt) per step,
	// so each run must land on its own discrete solution.
	for i, res := range results {
		want := float64(i+1) * math.Pow(1-0.01, 100)
		assert.InDelta(t, want, res.States[0][0], 1e-9, "run %d", i)
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{3, 4}
	assert.InDelta(t, 5, s.Norm(), 1e-12)
	assert.InDelta(t, 3.5, s.Mean(), 1e-12)
	assert.True(t, s.IsValid())
	assert.False(t, State{math.Inf(1)}.IsValid())

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 3.0, s[0])

	d := s.Sub(State{1, 1})
	assert.Equal(t, State{2, 3}, d)
}
