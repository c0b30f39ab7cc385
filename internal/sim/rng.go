package sim

import "math/rand/v2"

// Source is the random stream a run draws sites and acceptance thresholds
// from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a PCG-backed generator seeded with seed. A zero seed
// draws one from the runtime's entropy source.
func NewSource(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return rand.New(rand.NewPCG(s, 0))
}

// EntropySeed returns a fresh non-zero seed for runs that do not pin one.
func EntropySeed() int64 {
	for {
		if s := rand.Int64(); s != 0 {
			return s
		}
	}
}
