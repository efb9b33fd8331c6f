package dynamo

import (
	"context"
	"math"
	"sort"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 at t=0 to cfg.Duration, sampling the state at
// cfg.OutputTimes (or every accepted step when none are given). A
// failed run returns an *IntegrationError whose Partial field carries
// the samples collected before the failure.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	outputs := append([]float64(nil), cfg.OutputTimes...)
	sort.Float64s(outputs)

	result := &Result{
		Times:   make([]float64, 0, len(outputs)+1),
		States:  make([]State, 0, len(outputs)+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	eps := 1e-9 * math.Max(1, cfg.Duration)
	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	oi := 0
	if len(outputs) == 0 || outputs[0] <= eps {
		result.Times = append(result.Times, 0)
		result.States = append(result.States, x.Clone())
		if oi < len(outputs) {
			oi++
		}
	}

	fail := func(err error) (*Result, error) {
		return result, &IntegrationError{Time: t, Steps: result.StepsTaken, Partial: result, Wrapped: err}
	}

	for t < cfg.Duration-eps {
		select {
		case <-ctx.Done():
			return fail(ErrCanceled)
		default:
		}

		if cfg.MaxSteps > 0 && result.StepsTaken >= cfg.MaxSteps {
			return fail(ErrStepBudget)
		}

		// Clamp the attempted step so accepted steps land exactly on
		// the next requested output time.
		target := cfg.Duration
		if oi < len(outputs) && outputs[oi] < target {
			target = outputs[oi]
		}
		attempt := math.Min(dt, target-t)

		var (
			newX  State
			taken float64
		)
		if cfg.Adaptive {
			adaptive, ok := s.integrator.(AdaptiveIntegrator)
			if !ok {
				return nil, Configf("integrator %T does not support adaptive stepping", s.integrator)
			}
			var dtNext float64
			var stepErr error
			newX, taken, dtNext, stepErr = adaptive.StepAdaptive(s.dyn, x, t, attempt, cfg.Tolerance)
			if stepErr != nil {
				return fail(stepErr)
			}
			if dtNext < cfg.MinDt {
				return fail(ErrStepTooSmall)
			}
			dt = math.Min(dtNext, cfg.MaxDt)
		} else {
			newX = s.integrator.Step(s.dyn, x, t, attempt)
			taken = attempt
		}

		if cfg.ValidateState && !newX.IsValid() {
			return fail(ErrNonFinite)
		}

		x = newX
		t += taken
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		if len(outputs) == 0 {
			result.Times = append(result.Times, t)
			result.States = append(result.States, x.Clone())
		} else if oi < len(outputs) && t >= outputs[oi]-eps {
			result.Times = append(result.Times, t)
			result.States = append(result.States, x.Clone())
			oi++
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Completed = true

	return result, nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return Configf("dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return Configf("duration must be positive, got %g", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return Configf("tolerance must be positive for adaptive stepping")
	}
	if len(x0) != s.dyn.StateDim() {
		return Configf("initial state has %d entries, system expects %d", len(x0), s.dyn.StateDim())
	}
	for _, ot := range cfg.OutputTimes {
		if ot < 0 || ot > cfg.Duration {
			return Configf("output time %g outside [0, %g]", ot, cfg.Duration)
		}
	}
	return nil
}
