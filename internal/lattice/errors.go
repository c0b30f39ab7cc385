package lattice

import "errors"

// Contract violations. These are raised with panic, never returned.
var (
	// ErrSiteOutOfRange indicates a row or column index outside [0, N).
	ErrSiteOutOfRange = errors.New("lattice: site out of range")

	// ErrInvalidSpin indicates a cell value other than +1 or -1.
	ErrInvalidSpin = errors.New("lattice: spin must be +1 or -1")

	// ErrInvalidSize indicates a non-positive lattice size.
	ErrInvalidSize = errors.New("lattice: size must be positive")
)
