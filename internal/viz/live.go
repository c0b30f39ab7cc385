package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
)

const (
	historyCapacity = 600
	defaultBatch    = 1000
	maxBatch        = 1 << 22
	fieldStep       = 0.1
	tempFactor      = 1.05
	brailleAbove    = 64
)

type TickMsg time.Time

// Model drives a simulator from the Bubble Tea event loop.
type Model struct {
	sim          *sim.Simulator
	lat          *lattice.Lattice
	src          sim.Source
	initialT     float64
	initialH     float64
	initMode     lattice.InitMode
	batch        int
	steps        int
	attempts     int
	accepted     int
	running      bool
	braille      bool
	canvas       *Canvas
	theme        Theme
	energyHist   []float64
	magnetHist   []float64
	frameRate    int
	lastBatchDur time.Duration
}

// NewModel wraps lat in a simulator seeded with seed and starts it from the
// checkerboard the batch driver uses.
func NewModel(lat *lattice.Lattice, seed int64, batch int) Model {
	if batch < 1 {
		batch = defaultBatch
	}
	src := sim.NewSource(seed)
	s := sim.New(lat, src)
	s.Reset()

	return Model{
		sim:        s,
		lat:        lat,
		src:        src,
		initialT:   lat.T(),
		initialH:   lat.H(),
		initMode:   lattice.Checkerboard,
		batch:      batch,
		running:    true,
		braille:    lat.Size() > brailleAbove,
		canvas:     NewLatticeCanvas(lat.Size()),
		theme:      ThemeClassic,
		energyHist: make([]float64, 0, historyCapacity),
		magnetHist: make([]float64, 0, historyCapacity),
		frameRate:  30,
	}
}

// WithTheme selects a color theme by name.
func (m Model) WithTheme(name string) Model {
	m.theme = GetTheme(name)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the lattice.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case ".":
			if !m.running {
				m.advance()
			}
		case "r":
			m.reset()
		case "+", "=":
			m.lat.SetT(m.lat.T() * tempFactor)
		case "-", "_":
			m.lat.SetT(m.lat.T() / tempFactor)
		case "h":
			m.lat.SetH(m.lat.H() + fieldStep)
		case "H":
			m.lat.SetH(m.lat.H() - fieldStep)
		case "]":
			m.batch = min(m.batch*2, maxBatch)
		case "[":
			m.batch = max(m.batch/2, 1)
		case "i":
			m.cycleInit()
		case "v":
			m.braille = !m.braille
		case "t":
			m.theme = nextTheme(m.theme.Name)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs one batch of attempts and samples the observables.
func (m *Model) advance() {
	start := time.Now()
	for k := 0; k < m.batch; k++ {
		if _, _, ok := m.sim.Step(); ok {
			m.accepted++
		}
	}
	m.attempts += m.batch
	m.steps += m.batch
	m.lastBatchDur = time.Since(start)

	sites := float64(m.lat.Sites())
	m.energyHist = pushHistory(m.energyHist, m.lat.Energy()/sites)
	m.magnetHist = pushHistory(m.magnetHist, m.lat.Magnetization()/sites)
}

func pushHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// reset restores the checkerboard start and the initial parameters.
func (m *Model) reset() {
	m.lat.SetT(m.initialT)
	m.lat.SetH(m.initialH)
	m.sim.Reset()
	m.initMode = lattice.Checkerboard
	m.clearStats()
}

func (m *Model) cycleInit() {
	m.initMode = (m.initMode + 1) % 3
	m.lat.Initialize(m.initMode, m.src)
	m.clearStats()
}

func (m *Model) clearStats() {
	m.steps, m.attempts, m.accepted = 0, 0, 0
	m.energyHist = m.energyHist[:0]
	m.magnetHist = m.magnetHist[:0]
}

// View renders the lattice next to the stats panel.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.renderLattice())

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("ISING %d×%d  %s", m.lat.Size(), m.lat.Size(), strings.ToUpper(m.lat.Rule().String()))) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n")
	}

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist, asciigraph.Height(5), asciigraph.Width(32), asciigraph.Caption("Energy / site"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	sites := float64(m.lat.Sites())
	mag := m.lat.Magnetization() / sites
	up, down := m.lat.SpinCounts()

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("T", fmt.Sprintf("%.4f (%.3f Tc)", m.lat.T(), m.lat.T()/m.lat.Tcrit()))
	row("H", fmt.Sprintf("%+.2f", m.lat.H()))
	row("Steps", fmt.Sprintf("%d (%.1f sweeps)", m.steps, float64(m.steps)/sites))
	row("Batch", fmt.Sprintf("%d (%s)", m.batch, m.lastBatchDur.Round(time.Microsecond)))
	row("Energy", fmt.Sprintf("%.4f", m.lat.Energy()/sites))
	row("m", fmt.Sprintf("%+.4f", mag))
	row("|m|", ProgressBar(math.Abs(mag), 20))
	row("Up/Down", fmt.Sprintf("%d / %d", up, down))
	if m.attempts > 0 {
		row("Accept", fmt.Sprintf("%.3f", float64(m.accepted)/float64(m.attempts)))
	}
	row("Init", m.initMode.String())
	s.WriteString("\n" + SparklineChart(m.magnetHist, 40) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause .:Step R:Reset Q:Quit\n+/-:T h/H:Field ]/[:Batch\nI:Init V:View T:Theme"))
	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

func (m Model) renderLattice() string {
	if m.braille {
		m.canvas.DrawLattice(m.lat)
		return lipgloss.NewStyle().Foreground(m.theme.Up).Render(m.canvas.String())
	}
	return RenderHalfBlocks(m.lat, m.theme)
}

// RenderHalfBlocks draws l with two rows per text line: the upper half block
// takes row i's color and the background takes row i+1's.
func RenderHalfBlocks(l *lattice.Lattice, theme Theme) string {
	n := l.Size()
	color := func(s lattice.Spin) lipgloss.Color {
		if s == lattice.Up {
			return theme.Up
		}
		return theme.Down
	}

	var styles [2][2]lipgloss.Style
	for a, top := range []lattice.Spin{lattice.Down, lattice.Up} {
		for b, bottom := range []lattice.Spin{lattice.Down, lattice.Up} {
			styles[a][b] = lipgloss.NewStyle().Foreground(color(top)).Background(color(bottom))
		}
	}
	idx := func(s lattice.Spin) int {
		if s == lattice.Up {
			return 1
		}
		return 0
	}

	var sb strings.Builder
	for i := 0; i < n; i += 2 {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j := 0; j < n; j++ {
			top := l.Spin(i, j)
			if i+1 < n {
				sb.WriteString(styles[idx(top)][idx(l.Spin(i+1, j))].Render("▀"))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(color(top)).Render("▀"))
			}
		}
	}
	return sb.String()
}
