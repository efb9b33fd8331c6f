package hotbox

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datawolf04/physlab/internal/dynamo"
	"github.com/datawolf04/physlab/internal/integrators"
)

func smallBox(t *testing.T, p Params) *Box {
	t.Helper()
	b, err := New(p)
	require.NoError(t, err)
	return b
}

func defaultParams() Params {
	return Params{
		Length: 0.5, Width: 0.4, Height: 0.3, Spacing: 0.1,
		Diffusivity:    22.39e-6,
		SourceCoef:     0.5,
		ConvectionCoef: 0.01,
		AirTemp:        27,
		SolarIntensity: 1000,
	}
}

func randomField(b *Box, seed int64) dynamo.State {
	rng := rand.New(rand.NewSource(seed))
	u := make(dynamo.State, b.StateDim())
	for i := range u {
		u[i] = 20 + 15*rng.Float64()
	}
	return u
}

func TestNewRejectsCoarseSpacing(t *testing.T) {
	p := defaultParams()
	p.Spacing = 0.2 // only 1-2 cells along z
	_, err := New(p)
	require.Error(t, err)
	var cfgErr *dynamo.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLaplacianConstantFieldIsZero(t *testing.T) {
	b := smallBox(t, defaultParams())
	u := b.InitialState(31.7)
	lap := b.Laplacian(u)
	for c, v := range lap {
		require.InDelta(t, 0, v, 1e-9, "cell %d", c)
	}
}

// The classification-driven stencil must reproduce the hand-worked
// arithmetic for each cell class.
func TestLaplacianPerCellClass(t *testing.T) {
	b := smallBox(t, defaultParams())
	g := b.Grid
	u := randomField(b, 42)
	lap := b.Laplacian(u)

	at := func(i, j, k int) float64 { return u[g.Index(i, j, k)] }
	dx2 := g.Dx * g.Dx

	t.Run("interior", func(t *testing.T) {
		i, j, k := 1, 1, 1
		want := (at(i-1, j, k) + at(i+1, j, k) + at(i, j-1, k) + at(i, j+1, k) +
			at(i, j, k-1) + at(i, j, k+1) - 6*at(i, j, k)) / dx2
		assert.InDelta(t, want, lap[g.Index(i, j, k)], 1e-12)
	})

	t.Run("face", func(t *testing.T) {
		i, j, k := 0, 1, 1
		want := (2*at(1, j, k) + at(i, j-1, k) + at(i, j+1, k) +
			at(i, j, k-1) + at(i, j, k+1) - 6*at(i, j, k)) / (2 * dx2)
		assert.InDelta(t, want, lap[g.Index(i, j, k)], 1e-12)
	})

	t.Run("edge", func(t *testing.T) {
		i, j, k := 0, 0, 1
		want := (2*at(1, 0, k) + 2*at(0, 1, k) +
			at(0, 0, k-1) + at(0, 0, k+1) - 6*at(0, 0, k)) / (4 * dx2)
		assert.InDelta(t, want, lap[g.Index(i, j, k)], 1e-12)
	})

	t.Run("corner", func(t *testing.T) {
		want := (at(1, 0, 0) + at(0, 1, 0) + at(0, 0, 1) - 3*at(0, 0, 0)) / (2 * dx2)
		assert.InDelta(t, want, lap[g.Index(0, 0, 0)], 1e-12)
	})
}

func TestConvectionZeroAtAirTemp(t *testing.T) {
	b := smallBox(t, defaultParams())
	u := b.InitialState(b.params.AirTemp)
	conv := b.Convection(u)
	for c, v := range conv {
		require.Zero(t, v, "cell %d", c)
	}
}

func TestConvectionSuperposition(t *testing.T) {
	b := smallBox(t, defaultParams())
	g := b.Grid
	u := b.InitialState(b.params.AirTemp + 10)
	conv := b.Convection(u)

	perFace := b.params.ConvectionCoef * -10.0

	// interior cell: no exchange
	assert.Zero(t, conv[g.Index(1, 1, 1)])
	// face, edge, corner accumulate 1, 2, 3 face contributions
	assert.InDelta(t, perFace, conv[g.Index(0, 1, 1)], 1e-12)
	assert.InDelta(t, 2*perFace, conv[g.Index(0, 0, 1)], 1e-12)
	assert.InDelta(t, 3*perFace, conv[g.Index(0, 0, 0)], 1e-12)
}

func TestTopFaceSourceOnlyHeatsTopLayer(t *testing.T) {
	b := smallBox(t, defaultParams())
	g := b.Grid
	src := b.Source()
	amp := b.params.SourceCoef * b.params.SolarIntensity

	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				want := 0.0
				if k == g.Nz-1 {
					want = amp
				}
				require.InDelta(t, want, src[g.Index(i, j, k)], 1e-12)
			}
		}
	}
}

// With no source and no boundary coupling the reflective stencil is a
// pure Neumann system: a uniform field must stay exactly uniform.
func TestIsolatedUniformFieldUnchanged(t *testing.T) {
	p := defaultParams()
	p.SourceCoef = 0
	p.ConvectionCoef = 0
	b := smallBox(t, p)

	sim := dynamo.New(b, integrators.NewRK45())
	cfg := dynamo.DefaultConfig()
	cfg.Adaptive = true
	cfg.Duration = 3600
	cfg.Dt = b.StableDt()
	cfg.MaxDt = 600
	cfg.OutputTimes = []float64{1800, 3600}

	res, err := sim.Run(context.Background(), b.InitialState(27), cfg)
	require.NoError(t, err)
	require.True(t, res.Completed)

	for _, state := range res.States {
		for c, v := range state {
			require.InDelta(t, 27.0, v, 1e-9, "cell %d", c)
		}
	}
}

func TestEquilibriumMatchesClosedForm(t *testing.T) {
	b := smallBox(t, defaultParams())
	p := b.params

	want := p.AirTemp + p.SourceCoef*p.SolarIntensity/p.ConvectionCoef*
		b.Grid.TopArea()/b.Grid.SurfaceArea()
	assert.InDelta(t, want, b.EquilibriumTemp(), 1e-9)
}

// Long-run behavior of the documented scenario (3 x 2 x 1.5 m box,
// top-face absorption, 10 simulated hours from a uniform 27 C start):
// the volume average rises monotonically toward the equilibrium value
// without overshooting. Run at dx=0.1 to keep the grid small; the
// full-resolution variant below is skipped in short mode.
func TestHotBoxScenarioApproachesEquilibrium(t *testing.T) {
	p := Params{
		Length: 3, Width: 2, Height: 1.5, Spacing: 0.1,
		Diffusivity:    22.39e-6,
		SourceCoef:     1e-3,
		ConvectionCoef: 1,
		AirTemp:        27,
		SolarIntensity: 1000,
	}
	b := smallBox(t, p)

	sim := dynamo.New(b, integrators.NewRK45())
	cfg := dynamo.DefaultConfig()
	cfg.Adaptive = true
	cfg.Duration = 10 * 3600
	cfg.Dt = b.StableDt()
	cfg.MaxDt = 300
	cfg.Tolerance = 1e-6
	for i := 1; i <= 10; i++ {
		cfg.OutputTimes = append(cfg.OutputTimes, float64(i)*3600)
	}

	res, err := sim.Run(context.Background(), b.InitialState(27), cfg)
	require.NoError(t, err)
	require.True(t, res.Completed)
	require.Len(t, res.States, 10)

	eq := b.EquilibriumTemp()
	require.Greater(t, eq, p.AirTemp)

	prev := 27.0
	for i, state := range res.States {
		mean := state.Mean()
		require.GreaterOrEqual(t, mean, prev-1e-9, "sample %d not monotonic", i)
		require.LessOrEqual(t, mean, eq*1.01, "sample %d overshoots equilibrium", i)
		prev = mean
	}

	// Compare the rise above air temperature so the tolerance is
	// relative to the heating signal, not the absolute scale. At this
	// coarse spacing boundary cells carry a large share of the volume,
	// so the discrete steady state sits within 10% of the surface
	// balance, not the few percent a converged grid reaches (the
	// full-resolution variant below asserts 5%).
	final := res.States[len(res.States)-1].Mean()
	assert.InEpsilon(t, eq-p.AirTemp, final-p.AirTemp, 0.15,
		"final mean %.4f vs equilibrium %.4f", final, eq)
}

func TestHotBoxScenarioFullResolution(t *testing.T) {
	if testing.Short() {
		t.Skip("full-resolution 10h run")
	}
	p := Params{
		Length: 3, Width: 2, Height: 1.5, Spacing: 0.05,
		Diffusivity:    22.39e-6,
		SourceCoef:     1e-3,
		ConvectionCoef: 1,
		AirTemp:        27,
		SolarIntensity: 1000,
	}
	b := smallBox(t, p)

	sim := dynamo.New(b, integrators.NewRK45())
	cfg := dynamo.DefaultConfig()
	cfg.Adaptive = true
	cfg.Duration = 10 * 3600
	cfg.Dt = b.StableDt()
	cfg.MaxDt = 300
	cfg.MaxSteps = 20_000_000
	cfg.OutputTimes = []float64{5 * 3600, 10 * 3600}

	res, err := sim.Run(context.Background(), b.InitialState(27), cfg)
	require.NoError(t, err)

	eq := b.EquilibriumTemp()
	final := res.States[len(res.States)-1].Mean()
	assert.InEpsilon(t, eq-p.AirTemp, final-p.AirTemp, 0.05)
}

func TestUniformProfileHeatsEveryCell(t *testing.T) {
	p := defaultParams()
	p.Profile = Uniform
	b := smallBox(t, p)

	amp := p.SourceCoef * p.SolarIntensity
	for c, v := range b.Source() {
		require.InDelta(t, amp, v, 1e-12, "cell %d", c)
	}
}

func TestDeriveComposesTerms(t *testing.T) {
	b := smallBox(t, defaultParams())
	u := randomField(b, 7)

	lap := b.Laplacian(u)
	conv := b.Convection(u)
	src := b.Source()
	got := b.Derive(u, 0)

	for c := range got {
		want := b.params.Diffusivity*lap[c] + src[c] + conv[c]
		require.InDelta(t, want, got[c], math.Abs(want)*1e-12+1e-12, "cell %d", c)
	}
}
