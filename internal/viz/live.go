package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/stat"

	"github.com/datawolf04/physlab/internal/dynamo"
	"github.com/datawolf04/physlab/internal/hotbox"
	"github.com/datawolf04/physlab/internal/integrators"
)

const historyCapacity = 600

var (
	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveModel drives an interactive box-heating run: each frame advances
// the adaptive integrator by a slab of simulated time and redraws the
// selected layer.
type LiveModel struct {
	box       *hotbox.Box
	integ     *integrators.RK45
	state     dynamo.State
	initial   dynamo.State
	t         float64
	dt        float64
	tol       float64
	duration  float64
	simPerSec float64 // simulated seconds advanced per wall second
	layer     int
	running   bool
	failed    error
	history   []float64
}

func NewLiveModel(box *hotbox.Box, initial dynamo.State, duration, tolerance float64) LiveModel {
	return LiveModel{
		box:       box,
		integ:     integrators.NewRK45(),
		state:     initial.Clone(),
		initial:   initial.Clone(),
		dt:        box.StableDt(),
		tol:       tolerance,
		duration:  duration,
		simPerSec: duration / 60, // one minute of wall time end to end
		layer:     box.Grid.Nz - 1,
		running:   true,
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.state = m.initial.Clone()
			m.t = 0
			m.failed = nil
			m.history = m.history[:0]
		case "up", "k":
			if m.layer < m.box.Grid.Nz-1 {
				m.layer++
			}
		case "down", "j":
			if m.layer > 0 {
				m.layer--
			}
		case "[":
			m.simPerSec /= 2
		case "]":
			m.simPerSec *= 2
		}
	case TickMsg:
		if m.running && m.failed == nil && m.t < m.duration {
			m.advance(m.simPerSec / 30)
		}
		return m, tick()
	}
	return m, nil
}

// advance integrates one frame's worth of simulated time.
func (m *LiveModel) advance(span float64) {
	target := m.t + span
	if target > m.duration {
		target = m.duration
	}
	for m.t < target {
		attempt := m.dt
		if rem := target - m.t; attempt > rem {
			attempt = rem
		}
		next, taken, dtNext, err := m.integ.StepAdaptive(m.box, m.state, m.t, attempt, m.tol)
		if err != nil {
			m.failed = err
			return
		}
		m.state = next
		m.t += taken
		m.dt = dtNext
	}
	m.history = append(m.history, stat.Mean(m.state, nil))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m LiveModel) View() string {
	left := HeatSlice(m.box.Grid, m.state, m.layer)

	var stats strings.Builder
	stats.WriteString(headerStyle.Render("box heating"))
	stats.WriteString("\n")
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label))
		stats.WriteString(valueStyle.Render(value))
		stats.WriteString("\n")
	}
	row("sim time", fmt.Sprintf("%.0f s / %.0f s", m.t, m.duration))
	row("mean temp", fmt.Sprintf("%.3f C", stat.Mean(m.state, nil)))
	row("equilibrium", fmt.Sprintf("%.3f C", m.box.EquilibriumTemp()))
	row("layer", fmt.Sprintf("%d / %d", m.layer, m.box.Grid.Nz-1))
	row("speed", fmt.Sprintf("%.0fx realtime", m.simPerSec))
	if m.failed != nil {
		row("error", m.failed.Error())
	} else if m.t >= m.duration {
		row("status", "done")
	} else if !m.running {
		row("status", "paused")
	}
	if len(m.history) > 1 {
		row("trend", Sparkline(m.history, 24))
	}
	stats.WriteString("\n")
	stats.WriteString(ProgressBar(m.t/m.duration, 36))

	if len(m.history) > 2 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(8),
			asciigraph.Width(36),
			asciigraph.Caption("mean temperature"))
		stats.WriteString("\n")
		stats.WriteString(graphStyle.Render(graph))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(stats.String()))
	help := helpStyle.Render("space pause · r reset · j/k layer · [/] speed · q quit")
	return body + "\n" + help + "\n"
}

// RunLive blocks until the user quits the live view.
func RunLive(m LiveModel) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
