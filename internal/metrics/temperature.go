// Package metrics provides scalar observers attached to simulation
// runs: volume-average temperature, peak values, and bounds checks.
package metrics

import (
	"math"

	"github.com/datawolf04/physlab/internal/dynamo"
)

// VolumeMean tracks the volume-average of the field, the scalar proxy
// for global energy content.
type VolumeMean struct {
	name    string
	last    float64
	samples int
}

func NewVolumeMean() *VolumeMean {
	return &VolumeMean{name: "volume_mean"}
}

func (m *VolumeMean) Name() string { return m.name }

func (m *VolumeMean) Observe(x dynamo.State, t float64) {
	m.last = x.Mean()
	m.samples++
}

func (m *VolumeMean) Value() float64 { return m.last }

func (m *VolumeMean) Reset() {
	m.last = 0
	m.samples = 0
}

// Peak records the hottest cell value seen over the whole run.
type Peak struct {
	name string
	max  float64
	seen bool
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	for _, v := range x {
		if !p.seen || v > p.max {
			p.max = v
			p.seen = true
		}
	}
}

func (p *Peak) Value() float64 {
	if !p.seen {
		return math.NaN()
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}

// Bounds reports the fraction of observed samples whose values all
// stayed inside [lo, hi]. 1.0 means the run never left the window.
type Bounds struct {
	name       string
	lo, hi     float64
	violations int
	samples    int
}

func NewBounds(lo, hi float64) *Bounds {
	return &Bounds{name: "bounds", lo: lo, hi: hi}
}

func (b *Bounds) Name() string { return b.name }

func (b *Bounds) Observe(x dynamo.State, t float64) {
	b.samples++
	for _, v := range x {
		if v < b.lo || v > b.hi {
			b.violations++
			break
		}
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}
