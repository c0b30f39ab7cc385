// Package lattice implements the two-dimensional Ising model on a square
// N×N torus.
//
// A [Lattice] owns a fixed-size [Grid] of spins together with the
// temperature T, external field H and coupling J. It answers every energy
// and probability question the Monte Carlo driver asks:
//
//   - [Lattice.NeighborSum]: sum of the four toroidal nearest neighbours
//   - [Lattice.Energy]: total energy, exchange term counted once per site
//   - [Lattice.DeltaEnergy]: closed-form energy change of a single flip
//   - [Lattice.FlipProbability]: acceptance probability under a [Rule]
//   - [Lattice.Flip]: in-place negation of one spin
//
// Site indices must lie in [0, N). Out-of-range indices are programming
// errors and panic with [ErrSiteOutOfRange]; they are never wrapped.
//
// # Thread Safety
//
// A Lattice is NOT safe for concurrent use. Independent chains must use
// independent lattices.
package lattice
