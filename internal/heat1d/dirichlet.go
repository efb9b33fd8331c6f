package heat1d

import "math"

// dirichletTerms truncates the Fourier series; the tail after m terms
// is bounded by 4*T0/((2m+1)*pi), well below plotting precision.
const dirichletTerms = 1000

// DirichletExact evaluates the closed-form solution for the unit rod
// with both ends held at zero and a uniform initial temperature t0:
//
//	u(x,t) = sum_n 4*t0/((2n+1)*pi) * sin((2n+1)*pi*x) * exp(-(2n+1)^2*pi^2*t)
func DirichletExact(t, x, t0 float64) float64 {
	sum := 0.0
	for n := 0; n < dirichletTerms; n++ {
		m := float64(2*n + 1)
		decay := math.Exp(-m * m * math.Pi * math.Pi * t)
		sum += 4 * t0 / (m * math.Pi) * math.Sin(m*math.Pi*x) * decay
		// Higher modes decay faster; once this one is dead the tail is too.
		if decay < 1e-15 {
			break
		}
	}
	return sum
}

// DirichletProfile samples the exact solution at time t over the given
// positions.
func DirichletProfile(t float64, xs []float64, t0 float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = DirichletExact(t, x, t0)
	}
	return out
}
