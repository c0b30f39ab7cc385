package sim

import "errors"

var (
	// ErrNegativeSteps indicates a run length below zero.
	ErrNegativeSteps = errors.New("sim: number of steps must not be negative")

	// ErrNilLattice indicates a simulator built without a lattice.
	ErrNilLattice = errors.New("sim: lattice is nil")

	// ErrUnknownRecording indicates an unrecognised recording mode name.
	ErrUnknownRecording = errors.New("sim: unknown recording mode")
)
