package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawolf04/physlab/internal/dynamo"
)

func TestIdealProjectileFlatGround(t *testing.T) {
	// From ground level the textbook formulas apply directly.
	p, err := NewIdealProjectile(20, 45, 0)
	require.NoError(t, err)

	wantTof := 2 * 20 * math.Sin(math.Pi/4) / gravity
	assert.InEpsilon(t, wantTof, p.TimeOfFlight(), 1e-12)
	assert.InEpsilon(t, 20*20/gravity, p.Range(), 1e-12)

	// The projectile lands at y=0.
	_, y := p.Position(p.TimeOfFlight())
	assert.InDelta(t, 0, y, 1e-9)
}

func TestIdealProjectileElevatedLaunch(t *testing.T) {
	p, err := NewIdealProjectile(15, 30, 50)
	require.NoError(t, err)

	// Elevation extends the flight past the flat-ground time.
	flat := 2 * 15 * math.Sin(math.Pi/6) / gravity
	assert.Greater(t, p.TimeOfFlight(), flat)

	x, y := p.Position(0)
	assert.Zero(t, x)
	assert.InDelta(t, 50, y, 1e-12)

	_, y = p.Position(p.TimeOfFlight())
	assert.InDelta(t, 0, y, 1e-9)

	vx, _ := p.Velocity(p.TimeOfFlight())
	assert.InEpsilon(t, 15*math.Cos(math.Pi/6), vx, 1e-12)

	ax, ay := p.Acceleration()
	assert.Zero(t, ax)
	assert.Equal(t, -gravity, ay)
}

func TestIdealProjectileRejectsBadInput(t *testing.T) {
	var cfgErr *dynamo.ConfigError

	_, err := NewIdealProjectile(0, 45, 10)
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)

	_, err = NewIdealProjectile(10, 45, -1)
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDragZeroCoefMatchesVacuum(t *testing.T) {
	p := DragParams{Speed: 25, AngleDeg: 40, Height: 30, Mass: 1, DragCoef: 0}
	traj, err := SimulateDrag(p)
	require.NoError(t, err)

	ideal, err := NewIdealProjectile(p.Speed, p.AngleDeg, p.Height)
	require.NoError(t, err)

	assert.InEpsilon(t, ideal.TimeOfFlight(), traj.TimeOfFlight, 1e-6)
	assert.InEpsilon(t, ideal.Range(), traj.Range, 1e-6)
	assert.InDelta(t, 0, traj.Y[len(traj.Y)-1], 1e-6)
}

func TestDragShortensFlight(t *testing.T) {
	base := DragParams{Speed: 30, AngleDeg: 45, Height: 20, Mass: 0.5}

	free, err := SimulateDrag(base)
	require.NoError(t, err)

	withDrag := base
	withDrag.DragCoef = 0.02
	dragged, err := SimulateDrag(withDrag)
	require.NoError(t, err)

	assert.Less(t, dragged.Range, free.Range)
	assert.Less(t, dragged.TimeOfFlight, free.TimeOfFlight)

	// Height never exceeds the vacuum apex.
	apex := base.Height + math.Pow(base.Speed*math.Sin(math.Pi/4), 2)/(2*gravity)
	for _, y := range dragged.Y {
		assert.LessOrEqual(t, y, apex+1e-9)
	}
}

func TestDragRejectsBadInput(t *testing.T) {
	var cfgErr *dynamo.ConfigError

	_, err := SimulateDrag(DragParams{Speed: 10, AngleDeg: 45, Mass: 0, DragCoef: 0.1})
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)

	_, err = SimulateDrag(DragParams{Speed: 10, AngleDeg: 45, Mass: 1, DragCoef: -0.1})
	require.Error(t, err)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSolveConservesMomentum(t *testing.T) {
	p := CollisionParams{
		PuckMass:    1,
		StickMass:   2,
		StickLength: 6,
		PuckSpeed:   2,
		ImpactParam: 2,
		Restitution: 0.5,
	}
	out, err := Solve(p)
	require.NoError(t, err)

	// Linear momentum.
	before := p.PuckMass * p.PuckSpeed
	after := p.PuckMass*out.PuckVel + p.StickMass*out.StickVel
	assert.InEpsilon(t, before, after, 1e-12)

	// Angular momentum about the stick center.
	lBefore := p.PuckMass * p.PuckSpeed * p.ImpactParam
	lAfter := p.PuckMass*out.PuckVel*p.ImpactParam + p.MomentOfInertia()*out.StickOmega
	assert.InEpsilon(t, lBefore, lAfter, 1e-12)

	// Contact-point separation speed follows the restitution law.
	sep := out.StickVel + p.ImpactParam*out.StickOmega - out.PuckVel
	assert.InEpsilon(t, p.Restitution*p.PuckSpeed, sep, 1e-12)
}

func TestSolveElasticCenterHit(t *testing.T) {
	// A centered elastic hit reduces to the 1D two-body formulas and
	// imparts no spin.
	p := CollisionParams{
		PuckMass:    1,
		StickMass:   3,
		StickLength: 2,
		PuckSpeed:   4,
		ImpactParam: 0,
		Restitution: 1,
	}
	out, err := Solve(p)
	require.NoError(t, err)

	m1, m2, u1 := p.PuckMass, p.StickMass, p.PuckSpeed
	assert.InEpsilon(t, (m1-m2)/(m1+m2)*u1, out.PuckVel, 1e-12)
	assert.InEpsilon(t, 2*m1/(m1+m2)*u1, out.StickVel, 1e-12)
	assert.InDelta(t, 0, out.StickOmega, 1e-12)
}

func TestSolveInelasticLosesEnergy(t *testing.T) {
	p := CollisionParams{
		PuckMass:    1,
		StickMass:   2,
		StickLength: 4,
		PuckSpeed:   3,
		ImpactParam: 1,
		Restitution: 0.3,
	}
	out, err := Solve(p)
	require.NoError(t, err)

	keBefore := 0.5 * p.PuckMass * p.PuckSpeed * p.PuckSpeed
	keAfter := 0.5*p.PuckMass*out.PuckVel*out.PuckVel +
		0.5*p.StickMass*out.StickVel*out.StickVel +
		0.5*p.MomentOfInertia()*out.StickOmega*out.StickOmega
	assert.Less(t, keAfter, keBefore)
	assert.Greater(t, keAfter, 0.0)
}

func TestSolveRejectsBadInput(t *testing.T) {
	var cfgErr *dynamo.ConfigError
	cases := []struct {
		name string
		p    CollisionParams
	}{
		{"zero puck mass", CollisionParams{StickMass: 1, StickLength: 1, PuckSpeed: 1}},
		{"zero stick length", CollisionParams{PuckMass: 1, StickMass: 1, PuckSpeed: 1}},
		{"restitution above one", CollisionParams{PuckMass: 1, StickMass: 1, StickLength: 1, PuckSpeed: 1, Restitution: 1.5}},
		{"impact beyond stick end", CollisionParams{PuckMass: 1, StickMass: 1, StickLength: 1, PuckSpeed: 1, ImpactParam: 0.8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.p)
			require.Error(t, err)
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestSimulateCollisionPlayback(t *testing.T) {
	p := CollisionParams{
		PuckMass:    1,
		StickMass:   2,
		StickLength: 6,
		PuckSpeed:   2,
		ImpactParam: 2,
		Restitution: 0.5,
	}
	ev, err := SimulateCollision(p, 4, 6, 0.01)
	require.NoError(t, err)
	require.NotEmpty(t, ev.Frames)

	assert.InEpsilon(t, 2.0, ev.ImpactTime, 1e-12)

	// Before the impact the stick is at rest at the origin.
	first := ev.Frames[0]
	assert.InDelta(t, -4, first.PuckX, 1e-12)
	assert.Zero(t, first.StickX)
	assert.Zero(t, first.StickTheta)

	// After the impact both bodies move with the solved velocities.
	last := ev.Frames[len(ev.Frames)-1]
	since := last.T - ev.ImpactTime
	assert.InDelta(t, ev.Outcome.PuckVel*since, last.PuckX, 1e-9)
	assert.InDelta(t, ev.Outcome.StickVel*since, last.StickX, 1e-9)
	assert.InDelta(t, ev.Outcome.StickOmega*since, last.StickTheta, 1e-9)

	// The system center of mass drifts at constant velocity throughout.
	total := p.PuckMass + p.StickMass
	vcm := p.PuckMass * p.PuckSpeed / total
	for _, f := range ev.Frames {
		cm := (p.PuckMass*f.PuckX + p.StickMass*f.StickX) / total
		want := -4*p.PuckMass/total + vcm*f.T
		assert.InDelta(t, want, cm, 1e-9, "t=%g", f.T)
	}
}
