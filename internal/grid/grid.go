// Package grid models the discretized rectangular box used by the heat
// solver: uniform spacing on all three axes, row-major flat indexing,
// and topological classification of every cell for stencil selection.
package grid

import (
	"math"

	"github.com/datawolf04/physlab/internal/dynamo"
)

// Grid is an axis-aligned box of physical size L x W x H metres,
// discretized with spacing Dx shared by all axes. Immutable after New.
type Grid struct {
	L, W, H float64
	Dx      float64
	Nx      int
	Ny      int
	Nz      int
}

// New validates the physical dimensions and spacing and derives the
// cell counts. Every axis must resolve at least 3 cells so the box has
// an interior layer; anything smaller cannot support the stencil and
// fails fast.
func New(l, w, h, dx float64) (Grid, error) {
	if dx <= 0 {
		return Grid{}, dynamo.Configf("grid spacing must be positive, got %g", dx)
	}
	if l <= 0 || w <= 0 || h <= 0 {
		return Grid{}, dynamo.Configf("box dimensions must be positive, got %g x %g x %g", l, w, h)
	}
	g := Grid{
		L: l, W: w, H: h, Dx: dx,
		Nx: int(math.Round(l / dx)),
		Ny: int(math.Round(w / dx)),
		Nz: int(math.Round(h / dx)),
	}
	if g.Nx < 3 || g.Ny < 3 || g.Nz < 3 {
		return Grid{}, dynamo.Configf(
			"grid %dx%dx%d too small: every axis needs at least 3 cells (one interior layer), reduce dx=%g",
			g.Nx, g.Ny, g.Nz, dx)
	}
	return g, nil
}

// Cells reports the total cell count Nx*Ny*Nz.
func (g Grid) Cells() int { return g.Nx * g.Ny * g.Nz }

// Index maps (i,j,k) to the row-major flat offset.
func (g Grid) Index(i, j, k int) int {
	return (i*g.Ny+j)*g.Nz + k
}

// Coords is the inverse of Index.
func (g Grid) Coords(idx int) (i, j, k int) {
	k = idx % g.Nz
	idx /= g.Nz
	j = idx % g.Ny
	i = idx / g.Ny
	return
}

// SurfaceArea is the total boundary area 2(LW + LH + WH).
func (g Grid) SurfaceArea() float64 {
	return 2 * (g.L*g.W + g.L*g.H + g.W*g.H)
}

// TopArea is the area of the z = H face.
func (g Grid) TopArea() float64 { return g.L * g.W }

// Volume is the box volume.
func (g Grid) Volume() float64 { return g.L * g.W * g.H }
