// Package hotbox models transient heat diffusion in a closed
// rectangular box sitting in the sun: isotropic conduction inside the
// volume, Newton's-law-of-cooling exchange with the surrounding air on
// every boundary face, and a configurable volumetric heat source.
//
// The temperature field lives on a uniform grid (see package grid) and
// is flattened row-major into a dynamo.State so any integrator can
// advance it.
package hotbox

import (
	"github.com/datawolf04/physlab/internal/dynamo"
	"github.com/datawolf04/physlab/internal/grid"
)

// Params bundles the physical configuration of a run. Immutable once
// handed to New; all values are SI (metres, seconds, degrees C,
// watts per square metre).
type Params struct {
	Length  float64 // box length, m
	Width   float64 // box width, m
	Height  float64 // box height, m
	Spacing float64 // grid spacing shared by all axes, m

	Diffusivity    float64 // thermal diffusivity alpha, m^2/s
	SourceCoef     float64 // A: converts absorbed intensity to heating rate
	ConvectionCoef float64 // B: boundary coupling to air, 1/s per face
	AirTemp        float64 // ambient air temperature, C
	SolarIntensity float64 // incident flux, W/m^2

	Profile SourceProfile // spatial shape of the source; nil means TopFace
}

// Box is the assembled ODE system du/dt = alpha*lap(u) + S + conv(u).
// The stencil and source are precomputed at construction so Derive is
// a single pass over the cells.
type Box struct {
	Grid   grid.Grid
	params Params

	// Per-cell stencil: six neighbor indices with missing neighbors
	// reflected onto their opposite interior neighbor, and the
	// matching denominator scale 1/(f*dx^2).
	nbr      [][6]int32
	lapScale []float64

	// Per-cell count of boundary faces (0..3) for the convection term,
	// and the precomputed volumetric source values.
	faces  []uint8
	source []float64
}

// New validates the parameters, builds the grid, and precomputes the
// boundary-classified stencil.
func New(p Params) (*Box, error) {
	g, err := grid.New(p.Length, p.Width, p.Height, p.Spacing)
	if err != nil {
		return nil, err
	}
	if p.Diffusivity <= 0 {
		return nil, dynamo.Configf("thermal diffusivity must be positive, got %g", p.Diffusivity)
	}
	if p.ConvectionCoef < 0 {
		return nil, dynamo.Configf("convection coefficient must be non-negative, got %g", p.ConvectionCoef)
	}
	if p.SolarIntensity < 0 {
		return nil, dynamo.Configf("solar intensity must be non-negative, got %g", p.SolarIntensity)
	}
	if p.Profile == nil {
		p.Profile = TopFace
	}

	b := &Box{Grid: g, params: p}
	b.buildStencil()
	b.buildSource()
	return b, nil
}

func (b *Box) StateDim() int { return b.Grid.Cells() }

func (b *Box) Params() Params { return b.params }

// InitialState returns a uniform field at the given temperature.
func (b *Box) InitialState(temp float64) dynamo.State {
	u := make(dynamo.State, b.Grid.Cells())
	for i := range u {
		u[i] = temp
	}
	return u
}

// Derive evaluates du/dt for the flattened field. Fused form of
// Laplacian + Source + Convection; the split methods below compute the
// same terms individually.
func (b *Box) Derive(u dynamo.State, _ float64) dynamo.State {
	p := b.params
	out := make(dynamo.State, len(u))
	for c := range u {
		n := b.nbr[c]
		sum := u[n[0]] + u[n[1]] + u[n[2]] + u[n[3]] + u[n[4]] + u[n[5]]
		lap := (sum - 6*u[c]) * b.lapScale[c]
		out[c] = p.Diffusivity*lap + b.source[c] + p.ConvectionCoef*float64(b.faces[c])*(p.AirTemp-u[c])
	}
	return out
}

// Laplacian returns the discrete Laplacian of the field using the
// reflective boundary stencil. Exactly zero everywhere for a constant
// field.
func (b *Box) Laplacian(u dynamo.State) dynamo.State {
	out := make(dynamo.State, len(u))
	for c := range u {
		n := b.nbr[c]
		sum := u[n[0]] + u[n[1]] + u[n[2]] + u[n[3]] + u[n[4]] + u[n[5]]
		out[c] = (sum - 6*u[c]) * b.lapScale[c]
	}
	return out
}

// Convection returns the Robin boundary-exchange term: zero for
// interior cells, and one B*(Tair-u) contribution per boundary face a
// cell touches, so edges and corners accumulate by superposition.
func (b *Box) Convection(u dynamo.State) dynamo.State {
	p := b.params
	out := make(dynamo.State, len(u))
	for c := range u {
		if b.faces[c] > 0 {
			out[c] = p.ConvectionCoef * float64(b.faces[c]) * (p.AirTemp - u[c])
		}
	}
	return out
}

// Source returns a copy of the precomputed volumetric heating term.
func (b *Box) Source() dynamo.State {
	out := make(dynamo.State, len(b.source))
	copy(out, b.source)
	return out
}

// EquilibriumTemp is the temperature the volume average approaches as
// t -> inf: total generation balances total boundary loss. For the
// TopFace profile this reduces to the closed form
// Tair + A*I/B * L*W / (2*(LW + LH + WH)).
func (b *Box) EquilibriumTemp() float64 {
	p := b.params
	if p.ConvectionCoef == 0 {
		return p.AirTemp
	}
	totalSource := 0.0
	for _, s := range b.source {
		totalSource += s
	}
	totalFaces := 0.0
	for _, f := range b.faces {
		totalFaces += float64(f)
	}
	if totalFaces == 0 {
		return p.AirTemp
	}
	return p.AirTemp + totalSource/(p.ConvectionCoef*totalFaces)
}

// StableDt is the explicit-stepping stability limit dx^2/(6*alpha),
// a reasonable initial step for the adaptive integrator.
func (b *Box) StableDt() float64 {
	return b.Grid.Dx * b.Grid.Dx / (6 * b.params.Diffusivity)
}
