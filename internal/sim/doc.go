// Package sim drives Metropolis single-flip dynamics on a [lattice.Lattice].
//
// A [Simulator] pairs one lattice with one random [Source]. Each attempt
// samples a site uniformly, asks the lattice for the acceptance
// probability and flips the spin when a uniform draw falls strictly below
// it. [Simulator.Run] records the macroscopic observables before every
// attempt and once more at the end; [Simulator.RunFinal] only keeps the
// final point.
//
// # Example
//
//	lat := lattice.New(20, 2*lattice.Tcrit(1), 0, 1)
//	s := sim.New(lat, sim.NewSource(42))
//	result, _ := s.Run(ctx, sim.Config{Steps: 400_000})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Independent chains are run by
// [Ensemble], which gives every chain its own lattice and source.
package sim
