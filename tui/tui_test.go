package tui

import (
	"bytes"
	"strings"
	"testing"

	bubbletea "github.com/charmbracelet/bubbletea"

	"github.com/cloudchase/sampling-visualizer/engine"
	"github.com/cloudchase/sampling-visualizer/registry"
	"github.com/cloudchase/sampling-visualizer/render"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	theme, err := render.NewTheme(&bytes.Buffer{}, "never")
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(Config{
		Scenarios: registry.Builtins(),
		Params:    engine.DefaultParams(),
		Theme:     theme,
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

func press(t *testing.T, m Model, keys ...bubbletea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var (
	keyUp    = bubbletea.KeyMsg{Type: bubbletea.KeyUp}
	keyDown  = bubbletea.KeyMsg{Type: bubbletea.KeyDown}
	keyLeft  = bubbletea.KeyMsg{Type: bubbletea.KeyLeft}
	keyRight = bubbletea.KeyMsg{Type: bubbletea.KeyRight}
	keyTab   = bubbletea.KeyMsg{Type: bubbletea.KeyTab}
)

func runeKey(r rune) bubbletea.KeyMsg {
	return bubbletea.KeyMsg{Type: bubbletea.KeyRunes, Runes: []rune{r}}
}

func TestNew_NoScenarios(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{}); err == nil {
		t.Error("New() expected error")
	}
}

func TestNew_InitialReport(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	if m.Scenario().ID != "cat-sat" {
		t.Errorf("scenario = %q, want cat-sat", m.Scenario().ID)
	}
	if m.Report().ActiveCount != 10 {
		t.Errorf("active = %d, want 10", m.Report().ActiveCount)
	}
}

func TestUpdate_TemperatureSteps(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = press(t, m, keyLeft, keyLeft)
	if got := m.Params().Temperature; got != 0.98 {
		t.Errorf("temperature = %v, want 0.98", got)
	}
	m = press(t, m, runeKey('L'))
	if got := m.Params().Temperature; got != 1.08 {
		t.Errorf("temperature = %v, want 1.08", got)
	}
	for i := 0; i < 200; i++ {
		m = press(t, m, runeKey('H'))
	}
	if got := m.Params().Temperature; got != engine.MinTemperature {
		t.Errorf("temperature = %v, want floor %v", got, engine.MinTemperature)
	}
}

func TestUpdate_TopKBounded(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = press(t, m, keyDown, keyRight)
	if got := m.Params().TopK; got != 10 {
		t.Errorf("top-k = %d, want 10 (scenario size)", got)
	}
	for i := 0; i < 20; i++ {
		m = press(t, m, keyLeft)
	}
	if got := m.Params().TopK; got != 1 {
		t.Errorf("top-k = %d, want 1", got)
	}
	if got := m.Report().ActiveCount; got != 1 {
		t.Errorf("active = %d, want 1", got)
	}
}

func TestUpdate_TopPNucleus(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = press(t, m, keyTab, keyUp)
	if m.Scenario().ID != "roses" {
		t.Fatalf("scenario = %q, want roses", m.Scenario().ID)
	}
	for i := 0; i < 5; i++ {
		m = press(t, m, runeKey('H'))
	}
	if got := m.Params().TopP; got != 0.5 {
		t.Fatalf("top-p = %v, want 0.5", got)
	}
	if got := m.Report().ActiveCount; got != 1 {
		t.Errorf("active = %d, want 1", got)
	}
}

func TestUpdate_ResetAndWrap(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = press(t, m, keyRight, runeKey('r'))
	if m.Params() != engine.DefaultParams() {
		t.Errorf("params after reset = %+v", m.Params())
	}
	m = press(t, m, bubbletea.KeyMsg{Type: bubbletea.KeyShiftTab})
	if m.Scenario().ID != "sun-shining" {
		t.Errorf("scenario = %q, want sun-shining", m.Scenario().ID)
	}
}

func TestUpdate_Quit(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit returned nil cmd")
	}
	if _, ok := cmd().(bubbletea.QuitMsg); !ok {
		t.Error("quit cmd did not produce QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("View() after quit not empty")
	}
}

func TestView(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	out := m.View()
	for _, want := range []string{"Sampling Visualizer", "The cat sat on the", "> Temperature", "Top-K        10 / 10", "Mat"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q in:\n%s", want, out)
		}
	}
}
