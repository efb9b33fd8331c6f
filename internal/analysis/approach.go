package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/datawolf04/physlab/internal/dynamo"
)

// ApproachFit characterizes an exponential relaxation toward an
// equilibrium value: u(t) = ueq - (ueq - u0) * exp(-t/tau).
type ApproachFit struct {
	Equilibrium  float64
	TimeConstant float64
	R2           float64
}

// FitApproach estimates the relaxation time constant of a series
// approaching the known equilibrium ueq, by linear regression of
// log(ueq - u) against time. Points within eps of equilibrium are
// skipped; the log blows up there.
func FitApproach(times, values []float64, ueq float64) (ApproachFit, error) {
	if len(times) != len(values) {
		return ApproachFit{}, dynamo.Configf("times and values differ in length: %d vs %d", len(times), len(values))
	}

	eps := 1e-9 * math.Max(1, math.Abs(ueq))
	var ts, logs []float64
	for i, u := range values {
		gap := ueq - u
		if math.Abs(gap) <= eps {
			continue
		}
		ts = append(ts, times[i])
		logs = append(logs, math.Log(math.Abs(gap)))
	}
	if len(ts) < 3 {
		return ApproachFit{}, dynamo.Configf("need at least 3 points away from equilibrium, got %d", len(ts))
	}

	alpha, beta := stat.LinearRegression(ts, logs, nil, false)
	if beta >= 0 {
		return ApproachFit{}, dynamo.Configf("series is not relaxing toward %g (slope %g)", ueq, beta)
	}

	r2 := stat.RSquared(ts, logs, nil, alpha, beta)
	return ApproachFit{
		Equilibrium:  ueq,
		TimeConstant: -1 / beta,
		R2:           r2,
	}, nil
}

// SeriesSummary holds basic descriptive statistics of one series.
type SeriesSummary struct {
	Mean, Std, Min, Max float64
}

func Summarize(values []float64) SeriesSummary {
	if len(values) == 0 {
		return SeriesSummary{}
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return SeriesSummary{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
}
