// Package heat1d solves the heat equation on a unit rod: an implicit
// finite-difference scheme for Robin (convective) boundaries and the
// closed-form Fourier series for Dirichlet (fixed zero) boundaries.
package heat1d

import (
	"gonum.org/v1/gonum/mat"

	"github.com/datawolf04/physlab/internal/dynamo"
)

// RobinParams configures the implicit Robin solve on the unit rod.
// The rod starts at a uniform InitialTemp and cools into a zero-
// temperature environment through both ends, with boundary coupling
// strength Biot.
type RobinParams struct {
	InitialTemp float64
	Points      int     // spatial points across [0,1]
	MaxTime     float64 // simulated duration
	Dt          float64 // time step
	Biot        float64 // Robin coupling coefficient b
}

// RobinSolution holds the space-time temperature surface: U is
// Points x len(Times), one column per time step.
type RobinSolution struct {
	X     []float64
	Times []float64
	U     *mat.Dense
}

// SolveRobin advances the implicit scheme K u_new = G u_old step by
// step. K is factorized once; each step is a single triangular solve.
func SolveRobin(p RobinParams) (*RobinSolution, error) {
	if p.Points < 3 {
		return nil, dynamo.Configf("need at least 3 spatial points, got %d", p.Points)
	}
	if p.Dt <= 0 || p.MaxTime <= 0 {
		return nil, dynamo.Configf("time step and duration must be positive, got dt=%g tmax=%g", p.Dt, p.MaxTime)
	}
	if p.Biot <= 0 {
		return nil, dynamo.Configf("Robin coefficient must be positive, got %g", p.Biot)
	}

	n := p.Points
	h := 1 / float64(n-1)
	steps := int(p.MaxTime/p.Dt + 0.5)
	if steps < 1 {
		return nil, dynamo.Configf("duration %g shorter than one step %g", p.MaxTime, p.Dt)
	}

	// Scheme coefficients: interior rows of K are [C B C], boundary
	// rows fold the Robin condition into the corner entries.
	a := 2 * (1 + 3*p.Dt*(p.Biot+h)/(p.Biot*h*h))
	b := 4 * (1 + 3*p.Dt/(h*h))
	c := 1 - 6*p.Dt/(h*h)

	k := mat.NewDense(n, n, nil)
	for i := 1; i < n-1; i++ {
		k.Set(i, i-1, c)
		k.Set(i, i, b)
		k.Set(i, i+1, c)
	}
	k.Set(0, 0, a)
	k.Set(0, 1, c)
	k.Set(n-1, n-2, c)
	k.Set(n-1, n-1, a)

	var lu mat.LU
	lu.Factorize(k)

	sol := &RobinSolution{
		X:     make([]float64, n),
		Times: make([]float64, steps),
		U:     mat.NewDense(n, steps, nil),
	}
	for i := range sol.X {
		sol.X[i] = float64(i) * h
	}

	u := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		u.SetVec(i, p.InitialTemp)
	}

	rhs := mat.NewVecDense(n, nil)
	next := mat.NewVecDense(n, nil)

	for step := 0; step < steps; step++ {
		sol.Times[step] = float64(step) * p.Dt
		if step > 0 {
			// rhs = G u_old with G tridiagonal [1 4 1] (2,1 / 1,2 at
			// the ends), applied directly.
			rhs.SetVec(0, 2*u.AtVec(0)+u.AtVec(1))
			for i := 1; i < n-1; i++ {
				rhs.SetVec(i, u.AtVec(i-1)+4*u.AtVec(i)+u.AtVec(i+1))
			}
			rhs.SetVec(n-1, u.AtVec(n-2)+2*u.AtVec(n-1))

			if err := lu.SolveVecTo(next, false, rhs); err != nil {
				return nil, dynamo.Configf("Robin system singular: %v", err)
			}
			u.CopyVec(next)
		}
		for i := 0; i < n; i++ {
			sol.U.Set(i, step, u.AtVec(i))
		}
	}

	return sol, nil
}

// Profile returns the temperature profile at time step idx.
func (s *RobinSolution) Profile(idx int) []float64 {
	n, _ := s.U.Dims()
	out := make([]float64, n)
	mat.Col(out, idx, s.U)
	return out
}

// MidpointHistory returns the rod-center temperature over time.
func (s *RobinSolution) MidpointHistory() []float64 {
	n, steps := s.U.Dims()
	out := make([]float64, steps)
	mat.Row(out, n/2, s.U)
	return out
}
