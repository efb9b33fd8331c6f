package integrators

import "github.com/datawolf04/physlab/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	newX := make(dynamo.State, len(x))
	for i := range x {
		newX[i] = x[i] + dt*dx[i]
	}
	return newX
}
