package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

// Mean returns the average of all state entries. For a flattened
// temperature field this is the volume-average temperature.
func (s State) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s))
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) State
}

// AdaptiveIntegrator steps with local error control. StepAdaptive
// advances by at most dt, returning the accepted state, the step
// actually taken, and a suggestion for the next step.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (next State, taken, dtNext float64, err error)
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt            float64   // initial (adaptive) or fixed step size
	Duration      float64   // simulated end time
	OutputTimes   []float64 // sample times; empty means every accepted step
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	MaxSteps      int
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-10,
		MaxSteps:      5_000_000,
		Adaptive:      false,
		ValidateState: true,
	}
}

type Result struct {
	Times      []float64
	States     []State
	Metrics    map[string]float64
	StepsTaken int
	Completed  bool
}

// LastTime reports the final sampled time, or 0 for an empty result.
func (r *Result) LastTime() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	return r.Times[len(r.Times)-1]
}
