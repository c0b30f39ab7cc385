package lattice

import "fmt"

// IntSource draws uniform integers in [0, n).
type IntSource interface {
	IntN(n int) int
}

// InitMode selects how Initialize fills the grid.
type InitMode int

const (
	AllUp InitMode = iota
	Random
	Checkerboard
)

func (m InitMode) String() string {
	switch m {
	case AllUp:
		return "all-up"
	case Random:
		return "random"
	case Checkerboard:
		return "checkerboard"
	default:
		return fmt.Sprintf("init(%d)", int(m))
	}
}

// Lattice is an N×N Ising ferromagnet with periodic boundaries.
type Lattice struct {
	grid *Grid
	t    float64
	h    float64
	j    float64
	rule Rule
}

// New creates an n×n lattice at temperature t, field h and coupling j with
// every spin up.
func New(n int, t, h, j float64) *Lattice {
	return &Lattice{grid: NewGrid(n), t: t, h: h, j: j, rule: Metropolis}
}

func (l *Lattice) Size() int      { return l.grid.Size() }
func (l *Lattice) Sites() int     { return l.grid.Size() * l.grid.Size() }
func (l *Lattice) T() float64     { return l.t }
func (l *Lattice) H() float64     { return l.h }
func (l *Lattice) J() float64     { return l.j }
func (l *Lattice) Rule() Rule     { return l.rule }
func (l *Lattice) SetT(t float64) { l.t = t }
func (l *Lattice) SetH(h float64) { l.h = h }
func (l *Lattice) SetRule(r Rule) { l.rule = r }

// Tcrit returns the critical temperature for this lattice's coupling.
func (l *Lattice) Tcrit() float64 { return Tcrit(l.j) }

func (l *Lattice) Spin(i, j int) Spin   { return l.grid.At(i, j) }
func (l *Lattice) Set(i, j int, s Spin) { l.grid.Set(i, j, s) }

// Each calls fn for every cell in row-major order.
func (l *Lattice) Each(fn func(i, j int, s Spin)) {
	n := l.grid.n
	for k, s := range l.grid.data {
		fn(k/n, k%n, s)
	}
}

// Clone returns an independent copy sharing no state with l.
func (l *Lattice) Clone() *Lattice {
	c := *l
	c.grid = l.grid.Clone()
	return &c
}

// Initialize overwrites every cell according to mode. src is only used by
// Random and may be nil otherwise.
func (l *Lattice) Initialize(mode InitMode, src IntSource) {
	switch mode {
	case Random:
		l.InitRandom(src)
	case Checkerboard:
		l.InitCheckerboard()
	default:
		l.InitAllUp()
	}
}

func (l *Lattice) InitAllUp() { l.grid.Fill(Up) }

// InitRandom draws every spin independently and uniformly from {+1, -1}.
func (l *Lattice) InitRandom(src IntSource) {
	for k := range l.grid.data {
		l.grid.data[k] = Spin(src.IntN(2)*2 - 1)
	}
	l.grid.validate()
}

// InitCheckerboard alternates spins cell by cell in row-major order and
// flips the phase again at the end of every row. For even N this is a
// checkerboard; for odd N consecutive rows repeat.
func (l *Lattice) InitCheckerboard() {
	n := l.grid.n
	for k := range l.grid.data {
		i, j := k/n, k%n
		if (i*(n+1)+j)%2 == 0 {
			l.grid.data[k] = Up
		} else {
			l.grid.data[k] = Down
		}
	}
}

// NeighborSum returns the sum of the four nearest neighbours of (i, j) with
// wraparound. The result is one of -4, -2, 0, 2, 4.
func (l *Lattice) NeighborSum(i, j int) int {
	g := l.grid
	g.check(i, j)
	n := g.n
	sum := int(g.data[g.Index((i-1+n)%n, j)])
	sum += int(g.data[g.Index((i+1)%n, j)])
	sum += int(g.data[g.Index(i, (j-1+n)%n)])
	sum += int(g.data[g.Index(i, (j+1)%n)])
	return sum
}

// Energy returns E = Σ -H·s + Σ -J·s·NeighborSum over all sites. Each bond
// is counted from both of its ends.
func (l *Lattice) Energy() float64 {
	e := 0.0
	for _, s := range l.grid.data {
		e += -l.h * float64(s)
	}
	n := l.grid.n
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := l.grid.data[l.grid.Index(i, j)]
			e += -l.j * float64(s) * float64(l.NeighborSum(i, j))
		}
	}
	return e
}

// Magnetization returns the sum of all spins.
func (l *Lattice) Magnetization() float64 {
	m := 0
	for _, s := range l.grid.data {
		m += int(s)
	}
	return float64(m)
}

// SpinCounts returns the number of up and down spins.
func (l *Lattice) SpinCounts() (up, down int) {
	for _, s := range l.grid.data {
		if s == Up {
			up++
		} else {
			down++
		}
	}
	return up, down
}

// DeltaEnergy returns Energy() after flipping (i, j) minus Energy() now,
// without touching the grid. Both ends of the four bonds change, hence the
// factor 4 on the exchange term.
func (l *Lattice) DeltaEnergy(i, j int) float64 {
	s := float64(l.grid.At(i, j))
	ns := float64(l.NeighborSum(i, j))
	return 2*l.h*s + 4*l.j*s*ns
}

// FlipProbability returns the acceptance probability of flipping (i, j)
// under the lattice's rule.
func (l *Lattice) FlipProbability(i, j int) float64 {
	return l.rule.Probability(l.DeltaEnergy(i, j), l.t)
}

// Flip negates the spin at (i, j) and returns its new value.
func (l *Lattice) Flip(i, j int) Spin {
	g := l.grid
	g.check(i, j)
	k := g.Index(i, j)
	g.data[k] = -g.data[k]
	return g.data[k]
}
