package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/avane-k/physim/internal/ode"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	tickRate        = time.Second / 60
	historyCapacity = 600
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Drawer paints one state onto the canvas. Implementations keep any
// per-view state they need, like bob trails.
type Drawer interface {
	Draw(c *Canvas, x ode.State)
	Reset()
}

// RecordFunc turns the trajectory captured while recording into a GIF
// on disk and returns the output path.
type RecordFunc func(result *ode.Result) (string, error)

// LiveModel is the interactive simulation view: it steps the system
// in real time, draws it, and keeps an energy sparkline.
type LiveModel struct {
	name       string
	sys        ode.System
	integrator ode.Integrator
	drawer     Drawer

	state ode.State
	init  ode.State
	t, dt float64

	canvas  *Canvas
	running bool

	params    map[string]float64
	initial   map[string]float64
	paramKeys []string
	selected  int

	energyHist []float64

	recording bool
	recStates []ode.State
	recTimes  []float64
	record    RecordFunc
	savedPath string
	recordErr error

	keys     keyMap
	help     help.Model
	showHelp bool
}

func NewLiveModel(name string, sys ode.System, integrator ode.Integrator, drawer Drawer, x0 ode.State, dt float64, record RecordFunc) LiveModel {
	params := make(map[string]float64)
	initial := make(map[string]float64)
	if cfg, ok := sys.(ode.Configurable); ok {
		for k, v := range cfg.GetParams() {
			params[k] = v
			initial[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return LiveModel{
		name:       name,
		sys:        sys,
		integrator: integrator,
		drawer:     drawer,
		state:      x0.Clone(),
		init:       x0.Clone(),
		dt:         dt,
		canvas:     NewCanvas(canvasCols, canvasRows),
		running:    true,
		params:     params,
		initial:    initial,
		paramKeys:  keys,
		record:     record,
		keys:       defaultKeys,
		help:       help.New(),
	}
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Next):
			if len(m.paramKeys) > 0 {
				m.selected = (m.selected + 1) % len(m.paramKeys)
			}
		case key.Matches(msg, m.keys.Up):
			m.adjustParam(1.05)
		case key.Matches(msg, m.keys.Down):
			m.adjustParam(0.95)
		case key.Matches(msg, m.keys.Record):
			m.toggleRecording()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	case tickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance steps the simulation by one frame of wall time.
func (m *LiveModel) advance() {
	steps := int(tickRate.Seconds() / m.dt)
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		m.state = m.integrator.Step(m.sys, m.state, m.t, m.dt)
		m.t += m.dt
		if m.recording {
			m.recStates = append(m.recStates, m.state.Clone())
			m.recTimes = append(m.recTimes, m.t)
		}
	}

	if h, ok := m.sys.(ode.Hamiltonian); ok {
		m.energyHist = append(m.energyHist, h.Energy(m.state))
		if len(m.energyHist) > historyCapacity {
			m.energyHist = m.energyHist[1:]
		}
	}
}

func (m *LiveModel) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	cfg, ok := m.sys.(ode.Configurable)
	if !ok {
		return
	}
	k := m.paramKeys[m.selected]
	v := m.params[k] * factor
	if err := cfg.SetParam(k, v); err != nil {
		return
	}
	m.params[k] = v
}

func (m *LiveModel) reset() {
	m.t = 0
	m.state = m.init.Clone()
	m.energyHist = m.energyHist[:0]
	m.drawer.Reset()
	if cfg, ok := m.sys.(ode.Configurable); ok {
		for k, v := range m.initial {
			cfg.SetParam(k, v)
			m.params[k] = v
		}
	}
}

func (m *LiveModel) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.recStates = m.recStates[:0]
		m.recTimes = m.recTimes[:0]
		m.savedPath = ""
		m.recordErr = nil
		return
	}
	m.recording = false
	if m.record == nil || len(m.recStates) < 2 {
		return
	}
	result := &ode.Result{States: m.recStates, Times: m.recTimes}
	m.savedPath, m.recordErr = m.record(result)
	m.recStates = nil
	m.recTimes = nil
}

func (m LiveModel) View() string {
	m.canvas.Clear()
	m.drawer.Draw(m.canvas, m.state)
	left := canvasStyle.Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(m.name)) + "\n")
	if m.running {
		b.WriteString("RUNNING\n")
	} else {
		b.WriteString("PAUSED\n")
	}
	if m.recording {
		b.WriteString(recStyle.Render("● REC") + "\n")
	}

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	if h, ok := m.sys.(ode.Hamiltonian); ok {
		b.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", h.Energy(m.state))) + "\n")
	}

	if len(m.paramKeys) > 0 {
		b.WriteString("\nPARAMETERS\n")
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-8s %.3f", k, m.params[k])
			if i == m.selected {
				b.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + valueStyle.Render(line) + "\n")
			}
		}
	}

	if m.savedPath != "" {
		b.WriteString("\n" + valueStyle.Render("saved "+m.savedPath) + "\n")
	}
	if m.recordErr != nil {
		b.WriteString("\n" + recStyle.Render("record failed: "+m.recordErr.Error()) + "\n")
	}

	m.help.ShowAll = m.showHelp
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, panelStyle.Render(b.String()))
}
