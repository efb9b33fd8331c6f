package hotbox

import "github.com/datawolf04/physlab/internal/grid"

// Denominator scale per missing-axis count: dx^2 for interior, 2dx^2
// for faces, 4dx^2 for edges and corners. With reflected neighbors the
// corner entry matches the single-neighbor form (u1+u2+u3-3u)/(2dx^2).
var denomScale = [4]float64{1, 2, 4, 4}

// buildStencil classifies every cell once and records its six stencil
// neighbors. A missing neighbor is replaced by the mirrored interior
// neighbor on the same axis, so the numerator is always
// sum(neighbors) - 6u and a constant field yields exactly zero.
func (b *Box) buildStencil() {
	g := b.Grid
	n := g.Cells()
	b.nbr = make([][6]int32, n)
	b.lapScale = make([]float64, n)
	b.faces = make([]uint8, n)

	invDx2 := 1 / (g.Dx * g.Dx)

	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				c := g.Index(i, j, k)
				cls, missing := g.Classify(i, j, k)

				var nb [6]int32
				nb[grid.XNeg] = int32(g.Index(reflect(i-1, g.Nx), j, k))
				nb[grid.XPos] = int32(g.Index(reflect(i+1, g.Nx), j, k))
				nb[grid.YNeg] = int32(g.Index(i, reflect(j-1, g.Ny), k))
				nb[grid.YPos] = int32(g.Index(i, reflect(j+1, g.Ny), k))
				nb[grid.ZNeg] = int32(g.Index(i, j, reflect(k-1, g.Nz)))
				nb[grid.ZPos] = int32(g.Index(i, j, reflect(k+1, g.Nz)))

				b.nbr[c] = nb
				b.lapScale[c] = invDx2 / denomScale[cls]
				b.faces[c] = uint8(missing.Count())
			}
		}
	}
}

// reflect mirrors an out-of-range index back across the boundary:
// -1 -> 1 and n -> n-2. In-range indices pass through.
func reflect(idx, n int) int {
	if idx < 0 {
		return -idx
	}
	if idx >= n {
		return 2*n - 2 - idx
	}
	return idx
}
