// Package tui is the interactive terminal view: three controls over a live
// bar chart of the shaped distribution.
package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubbletea "github.com/charmbracelet/bubbletea"

	"github.com/cloudchase/sampling-visualizer/engine"
	"github.com/cloudchase/sampling-visualizer/registry"
	"github.com/cloudchase/sampling-visualizer/render"
)

// Control ranges, matching the original slider panel.
const (
	MaxTemperature  = 5.0
	temperatureStep = 0.01
	topPStep        = 0.01
)

type control int

const (
	controlTemperature control = iota
	controlTopK
	controlTopP
	controlCount
)

func (c control) String() string {
	switch c {
	case controlTemperature:
		return "Temperature"
	case controlTopK:
		return "Top-K"
	default:
		return "Top-P"
	}
}

// Config holds the parameters needed to launch the TUI.
type Config struct {
	Scenarios []registry.Scenario
	Start     int           // index of the initial scenario
	Params    engine.Params // initial and reset controls
	Theme     render.Theme
}

// Model is the root TUI model.
type Model struct {
	cfg      Config
	keys     keyMap
	help     help.Model
	index    int
	params   engine.Params
	focus    control
	report   render.Report
	err      error
	width    int
	quitting bool
}

// New creates a TUI model showing cfg.Scenarios[cfg.Start].
func New(cfg Config) (Model, error) {
	if len(cfg.Scenarios) == 0 {
		return Model{}, errors.New("no scenarios to visualize")
	}
	if cfg.Start < 0 || cfg.Start >= len(cfg.Scenarios) {
		cfg.Start = 0
	}
	m := Model{
		cfg:    cfg,
		keys:   defaultKeyMap(),
		help:   help.New(),
		index:  cfg.Start,
		params: cfg.Params,
	}
	m.fitParams()
	m.recompute()
	return m, nil
}

// Run starts the interactive program and blocks until the user quits.
func Run(cfg Config, opts ...bubbletea.ProgramOption) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	_, err = bubbletea.NewProgram(m, opts...).Run()
	return err
}

// Scenario returns the scenario currently shown.
func (m Model) Scenario() registry.Scenario { return m.cfg.Scenarios[m.index] }

// Params returns the current controls.
func (m Model) Params() engine.Params { return m.params }

// Report returns the distribution currently shown.
func (m Model) Report() render.Report { return m.report }

// Init implements bubbletea.Model.
func (m Model) Init() bubbletea.Cmd { return nil }

// Update processes messages.
func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case bubbletea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, bubbletea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.focus = (m.focus + controlCount - 1) % controlCount
		case key.Matches(msg, m.keys.Down):
			m.focus = (m.focus + 1) % controlCount
		case key.Matches(msg, m.keys.Left):
			m.adjust(-1)
		case key.Matches(msg, m.keys.Right):
			m.adjust(1)
		case key.Matches(msg, m.keys.CoarseDown):
			m.adjust(-10)
		case key.Matches(msg, m.keys.CoarseUp):
			m.adjust(10)
		case key.Matches(msg, m.keys.Next):
			m.index = (m.index + 1) % len(m.cfg.Scenarios)
			m.fitParams()
			m.recompute()
		case key.Matches(msg, m.keys.Prev):
			m.index = (m.index + len(m.cfg.Scenarios) - 1) % len(m.cfg.Scenarios)
			m.fitParams()
			m.recompute()
		case key.Matches(msg, m.keys.Reset):
			m.params = m.cfg.Params
			m.fitParams()
			m.recompute()
		}
	}
	return m, nil
}

// adjust moves the focused control by steps increments within its range.
func (m *Model) adjust(steps int) {
	switch m.focus {
	case controlTemperature:
		m.params.Temperature = round2(clamp(m.params.Temperature+float64(steps)*temperatureStep, engine.MinTemperature, MaxTemperature))
	case controlTopK:
		m.params.TopK = max(engine.MinTopK, min(m.params.TopK+steps, m.Scenario().Size()))
	case controlTopP:
		m.params.TopP = round2(clamp(m.params.TopP+float64(steps)*topPStep, engine.MinTopP, engine.MaxTopP))
	}
	m.recompute()
}

// fitParams keeps the controls inside the slider ranges for the current scenario.
func (m *Model) fitParams() {
	m.params = m.params.Clamp(m.Scenario().Size())
	m.params.Temperature = math.Min(m.params.Temperature, MaxTemperature)
}

func (m *Model) recompute() {
	sc := m.Scenario()
	results, err := engine.Compute(sc.Tokens, sc.Logits, m.params)
	m.err = err
	if err != nil {
		return
	}
	m.report = render.NewReport(sc.ID, sc.Label, m.params, results)
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := m.cfg.Theme
	var sb strings.Builder

	sb.WriteString(t.Header.Render("Sampling Visualizer"))
	sb.WriteString(t.Dim.Render(fmt.Sprintf("  scenario %d/%d", m.index+1, len(m.cfg.Scenarios))))
	sb.WriteString("\n\n")

	for c := control(0); c < controlCount; c++ {
		marker := "  "
		label := fmt.Sprintf("%-12s %s", c.String(), m.controlValue(c))
		if c == m.focus {
			marker = t.Accent.Render("> ")
			label = t.Active.Render(label)
		}
		sb.WriteString(marker + label + "\n")
	}
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(t.Dim.Render("error: " + m.err.Error()))
		sb.WriteString("\n")
	} else {
		width := render.DefaultBarWidth
		if m.width > 0 {
			width = max(10, min(width, m.width-30))
		}
		_ = render.Bars(&sb, t, m.report, width)
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) controlValue(c control) string {
	switch c {
	case controlTemperature:
		return fmt.Sprintf("%.2f", m.params.Temperature)
	case controlTopK:
		return fmt.Sprintf("%d / %d", m.params.TopK, m.Scenario().Size())
	default:
		return fmt.Sprintf("%.2f", m.params.TopP)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
