// Package viz provides a terminal view of a running Ising lattice.
//
// The view is a Bubble Tea program that advances the simulator in batches
// of attempts on every frame and renders the spins with half-block or
// Braille cells next to a panel of running observables.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Advance one batch while paused
//	R     - Reset to the checkerboard start and the initial T and H
//	+/-   - Raise/lower temperature by 5%
//	h/H   - Raise/lower the external field by 0.1
//	]/[   - Double/halve the batch size
//	I     - Cycle initial fill (all-up, random, checkerboard)
//	V     - Toggle Braille rendering for large lattices
//	T     - Cycle color themes
//	Q     - Quit
package viz
