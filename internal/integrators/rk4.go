package integrators

import "github.com/datawolf04/physlab/internal/dynamo"

type RK4 struct{}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)

	k1 := dyn.Derive(x, t)

	x2 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x2[i] = x[i] + dt/2*k1[i]
	}
	k2 := dyn.Derive(x2, t+dt/2)

	x3 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x3[i] = x[i] + dt/2*k2[i]
	}
	k3 := dyn.Derive(x3, t+dt/2)

	x4 := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		x4[i] = x[i] + dt*k3[i]
	}
	k4 := dyn.Derive(x4, t+dt)

	newX := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		newX[i] = x[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return newX
}
