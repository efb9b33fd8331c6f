// Package viz renders simulation output in the terminal: colored
// heat-map slices of the 3D temperature field and a bubbletea live
// view of a running box simulation.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/datawolf04/physlab/internal/grid"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// HeatSlice renders the horizontal layer k of a flattened temperature
// field as a colored block grid, one cell per grid point. Colors ramp
// from cold blue to hot red across the field's own range.
func HeatSlice(g grid.Grid, field []float64, k int) string {
	if k < 0 || k >= g.Nz || len(field) != g.Nx*g.Ny*g.Nz {
		return ""
	}

	lo := floats.Min(field)
	hi := floats.Max(field)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("layer z=%.2fm", float64(k)*g.Dx)))
	b.WriteString(axisStyle.Render(fmt.Sprintf("  [%.2f .. %.2f]", lo, hi)))
	b.WriteString("\n")

	// Rows run along y so the printed slice matches a top-down view.
	for j := g.Ny - 1; j >= 0; j-- {
		for i := 0; i < g.Nx; i++ {
			norm := (field[g.Index(i, j, k)] - lo) / span
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(rampColor(norm)))
			b.WriteString(style.Render("██"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// rampColor maps [0,1] onto a blue-to-red hex color.
func rampColor(norm float64) string {
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	r := int(255 * norm)
	g := int(80 * (1 - 2*abs(norm-0.5)))
	b := int(255 * (1 - norm))
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}

// ProgressBar renders completion as a filled bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline compresses a series into a single row of block glyphs.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo := floats.Min(values)
	hi := floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}
