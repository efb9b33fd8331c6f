package hotbox

import "github.com/datawolf04/physlab/internal/grid"

// SourceProfile gives the dimensionless spatial shape of the volumetric
// heat source at cell (i,j,k). The heating rate of a cell is
// SourceCoef * SolarIntensity * profile(g, i, j, k).
type SourceProfile func(g grid.Grid, i, j, k int) float64

// TopFace deposits the absorbed flux in the top cell layer only, the
// geometry behind the documented equilibrium formula.
func TopFace(g grid.Grid, i, j, k int) float64 {
	if k == g.Nz-1 {
		return 1
	}
	return 0
}

// Uniform heats every cell equally.
func Uniform(grid.Grid, int, int, int) float64 { return 1 }

// NoSource disables generation, useful for pure-cooling runs.
func NoSource(grid.Grid, int, int, int) float64 { return 0 }

func (b *Box) buildSource() {
	g := b.Grid
	p := b.params
	b.source = make([]float64, g.Cells())
	amp := p.SourceCoef * p.SolarIntensity
	if amp == 0 {
		return
	}
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			for k := 0; k < g.Nz; k++ {
				b.source[g.Index(i, j, k)] = amp * p.Profile(g, i, j, k)
			}
		}
	}
}
