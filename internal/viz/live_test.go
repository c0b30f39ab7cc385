package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/isingsim/internal/lattice"
)

func newTestModel(n int) Model {
	lat := lattice.New(n, lattice.OnsagerTc, 0, 1)
	return NewModel(lat, 7, 50)
}

func press(m Model, key string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(Model)
}

func TestNewModelStartsFromCheckerboard(t *testing.T) {
	m := newTestModel(6)
	if got := m.lat.Magnetization(); got != 0 {
		t.Errorf("expected zero magnetization on checkerboard start, got %f", got)
	}
	if m.lat.Energy() != 4*36 {
		t.Errorf("expected energy %d, got %f", 4*36, m.lat.Energy())
	}
}

func TestTickAdvancesBatch(t *testing.T) {
	m := newTestModel(6)
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("expected tick to schedule the next frame")
	}
	if m.steps != 50 || m.attempts != 50 {
		t.Errorf("expected 50 steps, got %d", m.steps)
	}
	if len(m.energyHist) != 1 || len(m.magnetHist) != 1 {
		t.Errorf("expected one history sample, got %d", len(m.energyHist))
	}
}

func TestPauseStopsTicks(t *testing.T) {
	m := press(newTestModel(6), " ")
	if m.running {
		t.Fatal("expected model paused")
	}
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.steps != 0 {
		t.Errorf("expected no progress while paused, got %d steps", m.steps)
	}

	m = press(m, ".")
	if m.steps != 50 {
		t.Errorf("expected single batch step, got %d", m.steps)
	}
}

func TestParameterKeys(t *testing.T) {
	m := newTestModel(6)
	t0 := m.lat.T()

	m = press(m, "+")
	if m.lat.T() <= t0 {
		t.Errorf("expected T to rise, got %f", m.lat.T())
	}
	m = press(press(m, "h"), "h")
	if m.lat.H() < 0.19 || m.lat.H() > 0.21 {
		t.Errorf("expected H = 0.2, got %f", m.lat.H())
	}
	m = press(m, "]")
	if m.batch != 100 {
		t.Errorf("expected batch 100, got %d", m.batch)
	}
	for i := 0; i < 10; i++ {
		m = press(m, "[")
	}
	if m.batch != 1 {
		t.Errorf("expected batch clamped at 1, got %d", m.batch)
	}

	m = press(m, "r")
	if m.lat.T() != t0 || m.lat.H() != 0 {
		t.Errorf("expected reset to restore T and H, got %f, %f", m.lat.T(), m.lat.H())
	}
}

func TestCycleInit(t *testing.T) {
	m := press(newTestModel(4), "i")
	if m.initMode != lattice.AllUp {
		t.Fatalf("expected all-up after checkerboard, got %v", m.initMode)
	}
	if m.lat.Magnetization() != 16 {
		t.Errorf("expected all-up lattice, got M=%f", m.lat.Magnetization())
	}
	m = press(m, "i")
	if m.initMode != lattice.Random {
		t.Errorf("expected random, got %v", m.initMode)
	}
}

func TestCanvasDrawLattice(t *testing.T) {
	lat := lattice.New(4, 1, 0, 1)
	c := NewLatticeCanvas(4)
	if c.Width != 2 || c.Height != 1 {
		t.Fatalf("expected 2x1 canvas, got %dx%d", c.Width, c.Height)
	}
	c.DrawLattice(lat)
	if c.String() != "⣿⣿" {
		t.Errorf("expected full braille cells, got %q", c.String())
	}

	lat.Initialize(lattice.Checkerboard, nil)
	c.DrawLattice(lat)
	if strings.Contains(c.String(), "⣿") {
		t.Errorf("expected partial cells for checkerboard, got %q", c.String())
	}
}

func TestViewRenders(t *testing.T) {
	m := newTestModel(5)
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	out := m.View()
	for _, want := range []string{"ISING 5×5", "RUNNING", "Energy"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}

	m = press(m, "v")
	if !m.braille {
		t.Error("expected braille view toggled on")
	}
	if m.View() == "" {
		t.Error("expected non-empty braille view")
	}
}
