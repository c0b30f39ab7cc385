// Package ising exposes a single-call entry point for embedding the
// simulation in other programs.
package ising

import (
	"context"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
)

// Record is one snapshot of the lattice's observables.
type Record = sim.Record

// Size is the lattice side used by Run.
const Size = config.DefaultSize

// Run simulates a Size×Size lattice with J = 1 at temperature t and field h
// for steps attempts and returns the final snapshot. The random stream is
// seeded from entropy.
func Run(t, h float64, steps int) (Record, error) {
	return RunContext(context.Background(), t, h, steps, 0)
}

// RunContext is Run with cancellation and an explicit seed; zero draws one.
func RunContext(ctx context.Context, t, h float64, steps int, seed int64) (Record, error) {
	if seed == 0 {
		seed = sim.EntropySeed()
	}
	lat := lattice.New(Size, t, h, config.DefaultJ)
	return sim.New(lat, sim.NewSource(seed)).RunFinal(ctx, steps)
}

// Tcrit returns the critical temperature for coupling j.
func Tcrit(j float64) float64 { return lattice.Tcrit(j) }
