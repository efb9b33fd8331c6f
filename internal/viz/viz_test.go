package viz

import (
	"strings"
	"testing"

	"github.com/datawolf04/physlab/internal/grid"
)

func TestHeatSliceDimensions(t *testing.T) {
	g, err := grid.New(0.5, 0.4, 0.3, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	field := make([]float64, g.Cells())
	for i := range field {
		field[i] = float64(i)
	}

	out := HeatSlice(g, field, 0)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// One header line plus one row per y cell.
	if len(lines) != g.Ny+1 {
		t.Errorf("expected %d lines, got %d", g.Ny+1, len(lines))
	}
}

func TestHeatSliceRejectsBadInput(t *testing.T) {
	g, err := grid.New(0.5, 0.4, 0.3, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if out := HeatSlice(g, make([]float64, g.Cells()), g.Nz); out != "" {
		t.Error("expected empty output for out-of-range layer")
	}
	if out := HeatSlice(g, make([]float64, 3), 0); out != "" {
		t.Error("expected empty output for wrong field size")
	}
}

func TestRampColorEndpoints(t *testing.T) {
	if got := rampColor(0); got != "#0000ff" {
		t.Errorf("cold end should be blue, got %s", got)
	}
	if got := rampColor(1); got != "#ff0000" {
		t.Errorf("hot end should be red, got %s", got)
	}
	// Out-of-range values clamp.
	if rampColor(-5) != rampColor(0) || rampColor(5) != rampColor(1) {
		t.Error("expected clamping outside [0,1]")
	}
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(0.5, 10)
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "░") != 5 {
		t.Errorf("unexpected bar %q", bar)
	}
	if strings.Count(ProgressBar(2, 10), "█") != 10 {
		t.Error("expected full bar above 100%")
	}
	if strings.Count(ProgressBar(-1, 10), "░") != 10 {
		t.Error("expected empty bar below 0%")
	}
}

func TestSparkline(t *testing.T) {
	s := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	runes := []rune(s)
	if len(runes) != 8 {
		t.Fatalf("expected 8 glyphs, got %d", len(runes))
	}
	if runes[0] != '▁' || runes[7] != '█' {
		t.Errorf("expected ramp from low to high, got %q", s)
	}

	if Sparkline(nil, 4) != "────" {
		t.Error("expected flat line for empty input")
	}
}
