// Package physics holds the closed-form and ODE-based mechanics models:
// projectile motion from an elevated launch (vacuum and quadratic drag)
// and the puck-stick collision.
package physics

import (
	"math"

	"github.com/datawolf04/physlab/internal/dynamo"
	"github.com/datawolf04/physlab/internal/integrators"
)

const gravity = 9.81

// IdealProjectile is the standard vacuum treatment of a projectile
// fired from an elevated position: closed-form kinematics, no ODE.
type IdealProjectile struct {
	V0     float64 // launch speed, m/s
	Theta  float64 // launch angle, radians
	Height float64 // launch elevation, m
}

func NewIdealProjectile(speed, angleDeg, height float64) (*IdealProjectile, error) {
	if speed <= 0 {
		return nil, dynamo.Configf("launch speed must be positive, got %g", speed)
	}
	if height < 0 {
		return nil, dynamo.Configf("launch height must be non-negative, got %g", height)
	}
	return &IdealProjectile{
		V0:     speed,
		Theta:  angleDeg * math.Pi / 180,
		Height: height,
	}, nil
}

// TimeOfFlight is the time until the projectile returns to y=0.
func (p *IdealProjectile) TimeOfFlight() float64 {
	v0y := p.V0 * math.Sin(p.Theta)
	return (v0y + math.Sqrt(v0y*v0y+2*gravity*p.Height)) / gravity
}

// Range is the horizontal distance covered over the full flight.
func (p *IdealProjectile) Range() float64 {
	return p.V0 * math.Cos(p.Theta) * p.TimeOfFlight()
}

func (p *IdealProjectile) Position(t float64) (x, y float64) {
	v0x := p.V0 * math.Cos(p.Theta)
	v0y := p.V0 * math.Sin(p.Theta)
	return v0x * t, p.Height + v0y*t - 0.5*gravity*t*t
}

func (p *IdealProjectile) Velocity(t float64) (vx, vy float64) {
	return p.V0 * math.Cos(p.Theta), p.V0*math.Sin(p.Theta) - gravity*t
}

func (p *IdealProjectile) Acceleration() (ax, ay float64) {
	return 0, -gravity
}

// DragParams configures the quadratic-drag projectile.
type DragParams struct {
	Speed    float64 // m/s
	AngleDeg float64 // degrees from horizontal
	Height   float64 // m
	Mass     float64 // kg
	DragCoef float64 // kg/m
}

// DragEOM is the turbulent-drag equation of motion as a dynamo.System
// over state [x, y, vx, vy].
type DragEOM struct {
	coef float64 // DragCoef / Mass
}

func (d *DragEOM) StateDim() int { return 4 }

func (d *DragEOM) Derive(u dynamo.State, _ float64) dynamo.State {
	vx, vy := u[2], u[3]
	speed := math.Hypot(vx, vy)
	return dynamo.State{
		vx,
		vy,
		-d.coef * speed * vx,
		-gravity - d.coef*speed*vy,
	}
}

// Trajectory is a sampled drag flight ending at the splash (y=0).
type Trajectory struct {
	Times        []float64
	X, Y, VX, VY []float64
	TimeOfFlight float64
	Range        float64
}

// SimulateDrag integrates the drag flight until the projectile hits
// y=0, refining the splash time by bisection on the final step. The
// flight is capped at ten vacuum flight times; a projectile still
// aloft then indicates inconsistent parameters.
func SimulateDrag(p DragParams) (*Trajectory, error) {
	if p.Mass <= 0 {
		return nil, dynamo.Configf("mass must be positive, got %g", p.Mass)
	}
	if p.DragCoef < 0 {
		return nil, dynamo.Configf("drag coefficient must be non-negative, got %g", p.DragCoef)
	}
	ideal, err := NewIdealProjectile(p.Speed, p.AngleDeg, p.Height)
	if err != nil {
		return nil, err
	}

	eom := &DragEOM{coef: p.DragCoef / p.Mass}
	integ := integrators.NewRK4()

	tMax := 10 * ideal.TimeOfFlight()
	dt := ideal.TimeOfFlight() / 2000

	u := dynamo.State{0, p.Height, p.Speed * math.Cos(ideal.Theta), p.Speed * math.Sin(ideal.Theta)}
	traj := &Trajectory{}
	record := func(t float64, u dynamo.State) {
		traj.Times = append(traj.Times, t)
		traj.X = append(traj.X, u[0])
		traj.Y = append(traj.Y, u[1])
		traj.VX = append(traj.VX, u[2])
		traj.VY = append(traj.VY, u[3])
	}
	record(0, u)

	t := 0.0
	for t < tMax {
		next := integ.Step(eom, u, t, dt)
		if next[1] <= 0 && u[3] < 0 {
			// Bisect the crossing within [t, t+dt].
			lo, hi := 0.0, dt
			for i := 0; i < 60 && hi-lo > 1e-12; i++ {
				mid := (lo + hi) / 2
				probe := integ.Step(eom, u, t, mid)
				if probe[1] <= 0 {
					hi = mid
				} else {
					lo = mid
				}
			}
			splash := integ.Step(eom, u, t, hi)
			record(t+hi, splash)
			traj.TimeOfFlight = t + hi
			traj.Range = splash[0]
			return traj, nil
		}
		u = next
		t += dt
		record(t, u)
	}

	return nil, dynamo.Configf("projectile still aloft after %g s; check parameters", tMax)
}
