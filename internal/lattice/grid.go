package lattice

import "fmt"

// Spin is a two-valued lattice variable.
type Spin int8

const (
	Up   Spin = 1
	Down Spin = -1
)

// Valid reports whether s is Up or Down.
func (s Spin) Valid() bool { return s == Up || s == Down }

// Grid stores an N×N torus of spins in row-major order. The size is fixed
// when the grid is allocated and no method changes it.
type Grid struct {
	n    int
	data []Spin
}

// NewGrid allocates an n×n grid with every cell Up.
func NewGrid(n int) *Grid {
	if n <= 0 {
		panic(fmt.Errorf("%w: got %d", ErrInvalidSize, n))
	}
	g := &Grid{n: n, data: make([]Spin, n*n)}
	g.Fill(Up)
	return g
}

// Size returns N.
func (g *Grid) Size() int { return g.n }

// Index returns the linear slice index for row i, column j.
func (g *Grid) Index(i, j int) int { return i*g.n + j }

// Wrap applies toroidal wrapping to a single coordinate.
func (g *Grid) Wrap(k int) int { return (k%g.n + g.n) % g.n }

// At returns the spin at (i, j).
func (g *Grid) At(i, j int) Spin {
	g.check(i, j)
	return g.data[g.Index(i, j)]
}

// Set stores s at (i, j).
func (g *Grid) Set(i, j int, s Spin) {
	g.check(i, j)
	if !s.Valid() {
		panic(fmt.Errorf("%w: got %d at (%d,%d)", ErrInvalidSpin, s, i, j))
	}
	g.data[g.Index(i, j)] = s
}

// Fill overwrites every cell with s.
func (g *Grid) Fill(s Spin) {
	if !s.Valid() {
		panic(fmt.Errorf("%w: got %d", ErrInvalidSpin, s))
	}
	for k := range g.data {
		g.data[k] = s
	}
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{n: g.n, data: make([]Spin, len(g.data))}
	copy(c.data, g.data)
	return c
}

func (g *Grid) check(i, j int) {
	if i < 0 || i >= g.n || j < 0 || j >= g.n {
		panic(fmt.Errorf("%w: (%d,%d) not in [0,%d)", ErrSiteOutOfRange, i, j, g.n))
	}
}

// validate panics if any cell holds something other than Up or Down.
func (g *Grid) validate() {
	for k, s := range g.data {
		if !s.Valid() {
			panic(fmt.Errorf("%w: got %d at (%d,%d)", ErrInvalidSpin, s, k/g.n, k%g.n))
		}
	}
}
