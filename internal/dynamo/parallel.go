package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs independent simulations concurrently, one per
// parameter-sweep point. Each run owns its simulator and state vector.
type Ensemble struct {
	n     int
	build func(i int) (*Simulator, State, Config)
}

func NewEnsemble(n int, build func(i int) (*Simulator, State, Config)) *Ensemble {
	return &Ensemble{n: n, build: build}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.n)
	errs := make([]error, e.n)

	var wg sync.WaitGroup
	for i := 0; i < e.n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			s, x0, cfg := e.build(idx)
			results[idx], errs[idx] = s.Run(ctx, x0, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
