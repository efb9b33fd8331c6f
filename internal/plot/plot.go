// Package plot writes PNG figures of simulation output with gonum/plot:
// time series, x-y trajectories, and heat-map slices of the box field.
package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/datawolf04/physlab/internal/grid"
)

// Series is one named line on a time-series figure.
type Series struct {
	Name   string
	Times  []float64
	Values []float64
}

// SaveSeries renders the named lines against time and writes a PNG.
func SaveSeries(path, title, yLabel string, series []Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = yLabel

	colors := generateColors(len(series))
	for i, s := range series {
		if len(s.Times) != len(s.Values) {
			return fmt.Errorf("series %q: %d times vs %d values", s.Name, len(s.Times), len(s.Values))
		}
		pts := make(plotter.XYs, len(s.Times))
		for j := range s.Times {
			pts[j] = plotter.XY{X: s.Times[j], Y: s.Values[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	p.Legend.Top = true
	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

// Path is one named x-y curve, e.g. a projectile trajectory.
type Path struct {
	Name string
	X, Y []float64
}

// SavePaths renders x-y curves on equal axes and writes a PNG.
func SavePaths(path, title, xLabel, yLabel string, paths []Path) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	colors := generateColors(len(paths))
	for i, tr := range paths {
		if len(tr.X) != len(tr.Y) {
			return fmt.Errorf("path %q: %d x vs %d y", tr.Name, len(tr.X), len(tr.Y))
		}
		pts := make(plotter.XYs, len(tr.X))
		for j := range tr.X {
			pts[j] = plotter.XY{X: tr.X[j], Y: tr.Y[j]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = colors[i]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(tr.Name, line)
	}

	p.Legend.Top = true
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// sliceGrid adapts one horizontal layer of the flattened field to the
// heat-map's grid interface.
type sliceGrid struct {
	g     grid.Grid
	field []float64
	k     int
}

func (s sliceGrid) Dims() (c, r int)   { return s.g.Nx, s.g.Ny }
func (s sliceGrid) X(c int) float64    { return float64(c) * s.g.Dx }
func (s sliceGrid) Y(r int) float64    { return float64(r) * s.g.Dx }
func (s sliceGrid) Z(c, r int) float64 { return s.field[s.g.Index(c, r, s.k)] }

// SaveHeatSlice renders layer k of the temperature field as a
// blue-to-red heat map and writes a PNG.
func SaveHeatSlice(path, title string, g grid.Grid, field []float64, k int) error {
	if k < 0 || k >= g.Nz {
		return fmt.Errorf("layer %d outside [0,%d)", k, g.Nz)
	}
	if len(field) != g.Cells() {
		return fmt.Errorf("field has %d cells, grid needs %d", len(field), g.Cells())
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	pal := moreland.SmoothBlueRed().Palette(255)
	hm := plotter.NewHeatMap(sliceGrid{g: g, field: field, k: k}, pal)
	p.Add(hm)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.45)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64
	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}
	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
