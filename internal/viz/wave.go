package viz

import (
	"fmt"
	"math/cmplx"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avane-k/physim/internal/quantum"
)

// WaveModel animates a wavefunction superposition: probability
// density on the canvas, expected position in a sparkline underneath.
type WaveModel struct {
	state *quantum.Superposition

	t     float64
	speed float64

	canvas  *Canvas
	running bool

	posHist []float64

	keys     keyMap
	help     help.Model
	showHelp bool
}

func NewWaveModel(state *quantum.Superposition) WaveModel {
	keys := defaultKeys
	keys.Up = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "faster"),
	)
	keys.Down = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "slower"),
	)
	keys.Next.SetEnabled(false)
	keys.Record.SetEnabled(false)

	return WaveModel{
		state:   state,
		speed:   1.0,
		canvas:  NewCanvas(canvasCols, canvasRows),
		running: true,
		keys:    keys,
		help:    help.New(),
	}
}

func (m WaveModel) Init() tea.Cmd { return tick() }

func (m WaveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Reset):
			m.t = 0
			m.posHist = m.posHist[:0]
		case key.Matches(msg, m.keys.Up):
			m.speed *= 1.25
		case key.Matches(msg, m.keys.Down):
			m.speed /= 1.25
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	case tickMsg:
		if m.running {
			m.t += m.speed * tickRate.Seconds()
			m.posHist = append(m.posHist, m.state.ExpectedPosition(m.t))
			if len(m.posHist) > historyCapacity {
				m.posHist = m.posHist[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m WaveModel) View() string {
	m.canvas.Clear()
	m.drawDensity()
	left := canvasStyle.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(titleStyle.Render("HARMONIC OSCILLATOR") + "\n")
	if m.running {
		b.WriteString("RUNNING\n")
	} else {
		b.WriteString("PAUSED\n")
	}

	if len(m.posHist) > 1 {
		chart := asciigraph.Plot(m.posHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("<x>"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2f", m.t)) + "\n")
	b.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.2fx", m.speed)) + "\n")
	b.WriteString(labelStyle.Render("Norm") + valueStyle.Render(fmt.Sprintf("%.4f", m.state.Norm(m.t))) + "\n")
	if p := m.state.Period(); p > 0 {
		b.WriteString(labelStyle.Render("Period") + valueStyle.Render(fmt.Sprintf("%.3f", p)) + "\n")
	}

	b.WriteString("\nSTATES\n")
	for _, term := range m.state.Terms() {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  n=%d  |c|=%.3f  E=%.1f",
			term.N, cmplx.Abs(term.C), float64(term.N)+0.5)) + "\n")
	}

	m.help.ShowAll = m.showHelp
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, panelStyle.Render(b.String()))
}

func (m *WaveModel) drawDensity() {
	grid := m.state.Grid()
	density := m.state.Density(m.t)

	cw, ch := m.canvas.DotWidth(), m.canvas.DotHeight()
	baseline := ch - 4

	// Density peaks near the eigenstate amplitude; the ground state
	// tops out around 1/sqrt(pi), so 0.7 leaves headroom.
	const yMax = 0.7
	yScale := float64(baseline-2) / yMax

	m.canvas.Line(0, baseline, cw-1, baseline)

	prevX, prevY := -1, 0
	for i, rho := range density {
		px := i * cw / grid.N
		py := baseline - int(rho*yScale)
		if py < 0 {
			py = 0
		}
		if prevX >= 0 {
			m.canvas.Line(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}
