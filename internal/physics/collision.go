package physics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/datawolf04/physlab/internal/dynamo"
)

// CollisionParams configures the puck-stick impact. A puck slides
// toward a free stick at rest and strikes it a distance ImpactParam
// from the stick's center, perpendicular to the stick.
type CollisionParams struct {
	PuckMass    float64 // kg
	StickMass   float64 // kg
	StickLength float64 // m
	PuckSpeed   float64 // incoming puck speed, m/s
	ImpactParam float64 // signed offset from stick center, m
	Restitution float64 // 0 perfectly inelastic, 1 elastic
}

func (p CollisionParams) validate() error {
	if p.PuckMass <= 0 || p.StickMass <= 0 {
		return dynamo.Configf("masses must be positive, got puck=%g stick=%g", p.PuckMass, p.StickMass)
	}
	if p.StickLength <= 0 {
		return dynamo.Configf("stick length must be positive, got %g", p.StickLength)
	}
	if p.Restitution < 0 || p.Restitution > 1 {
		return dynamo.Configf("restitution must lie in [0,1], got %g", p.Restitution)
	}
	if math.Abs(p.ImpactParam) > p.StickLength/2 {
		return dynamo.Configf("impact parameter %g misses a stick of length %g", p.ImpactParam, p.StickLength)
	}
	return nil
}

// MomentOfInertia is the stick's moment about its center.
func (p CollisionParams) MomentOfInertia() float64 {
	return p.StickMass * p.StickLength * p.StickLength / 12
}

// CollisionOutcome holds the post-impact velocities: the puck keeps
// moving along the incoming axis, the stick translates and spins.
type CollisionOutcome struct {
	PuckVel    float64 // m/s
	StickVel   float64 // stick center of mass, m/s
	StickOmega float64 // rad/s
}

// Solve finds the post-impact state from linear momentum, angular
// momentum about the stick center, and the restitution condition at
// the contact point:
//
//	m1 v1 + m2 v2        = m1 u1
//	m1 b v1 + I w2       = m1 b u1
//	-v1 + v2 + b w2      = e u1
func Solve(p CollisionParams) (CollisionOutcome, error) {
	if err := p.validate(); err != nil {
		return CollisionOutcome{}, err
	}

	m1, m2 := p.PuckMass, p.StickMass
	b, u1 := p.ImpactParam, p.PuckSpeed
	moment := p.MomentOfInertia()

	a := mat.NewDense(3, 3, []float64{
		m1, m2, 0,
		m1 * b, 0, moment,
		-1, 1, b,
	})
	rhs := mat.NewVecDense(3, []float64{
		m1 * u1,
		m1 * b * u1,
		p.Restitution * u1,
	})

	var v mat.VecDense
	if err := v.SolveVec(a, rhs); err != nil {
		return CollisionOutcome{}, dynamo.Configf("impact system singular: %v", err)
	}
	return CollisionOutcome{
		PuckVel:    v.AtVec(0),
		StickVel:   v.AtVec(1),
		StickOmega: v.AtVec(2),
	}, nil
}

// Frame is one sampled instant of the collision scene. The puck moves
// along x; the stick starts vertical with its center at the origin.
type Frame struct {
	T          float64
	PuckX      float64
	PuckY      float64
	StickX     float64 // stick center of mass
	StickTheta float64 // rotation from vertical, rad
}

// CollisionEvent is a sampled before-and-after playback of the impact.
type CollisionEvent struct {
	Outcome     CollisionOutcome
	ImpactTime  float64
	Frames      []Frame
	TotalP      float64 // linear momentum along x, conserved
	TotalLAbout float64 // angular momentum about the stick center, conserved
}

// SimulateCollision plays the scene kinematically: constant velocities
// before the instantaneous impact, constant velocities and spin after.
// The puck starts startDist upstream of the stick line.
func SimulateCollision(p CollisionParams, startDist, duration, dt float64) (*CollisionEvent, error) {
	if startDist <= 0 || duration <= 0 || dt <= 0 {
		return nil, dynamo.Configf("start distance, duration and dt must be positive")
	}
	if p.PuckSpeed <= 0 {
		return nil, dynamo.Configf("puck speed must be positive, got %g", p.PuckSpeed)
	}
	out, err := Solve(p)
	if err != nil {
		return nil, err
	}

	impact := startDist / p.PuckSpeed
	ev := &CollisionEvent{
		Outcome:     out,
		ImpactTime:  impact,
		TotalP:      p.PuckMass * p.PuckSpeed,
		TotalLAbout: p.PuckMass * p.PuckSpeed * p.ImpactParam,
	}

	for t := 0.0; t <= duration+dt/2; t += dt {
		var f Frame
		f.T = t
		f.PuckY = p.ImpactParam
		if t < impact {
			f.PuckX = -startDist + p.PuckSpeed*t
		} else {
			since := t - impact
			f.PuckX = out.PuckVel * since
			f.StickX = out.StickVel * since
			f.StickTheta = out.StickOmega * since
		}
		ev.Frames = append(ev.Frames, f)
	}
	return ev, nil
}
