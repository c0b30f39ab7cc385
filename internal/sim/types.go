package sim

import (
	"fmt"
	"strings"

	"github.com/san-kum/isingsim/internal/lattice"
)

// Recording selects how much of a run is kept.
type Recording int

const (
	// Full keeps one Record before every attempt plus the final state.
	Full Recording = iota
	// FinalOnly keeps only the final state.
	FinalOnly
)

func (r Recording) String() string {
	switch r {
	case Full:
		return "full"
	case FinalOnly:
		return "final"
	default:
		return fmt.Sprintf("recording(%d)", int(r))
	}
}

func ParseRecording(name string) (Recording, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "full":
		return Full, nil
	case "final", "final-only", "final_only":
		return FinalOnly, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownRecording, name)
	}
}

// Record is the macroscopic state of a lattice at one step.
type Record struct {
	Step          int     `json:"step"`
	Energy        float64 `json:"energy"`
	Magnetization float64 `json:"magnetization"`
	Up            int     `json:"up_spins"`
	Down          int     `json:"down_spins"`
}

// Observe captures the observables of l at the given step.
func Observe(l *lattice.Lattice, step int) Record {
	up, down := l.SpinCounts()
	return Record{
		Step:          step,
		Energy:        l.Energy(),
		Magnetization: l.Magnetization(),
		Up:            up,
		Down:          down,
	}
}

type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step, i, j int, accepted bool)
}

type Config struct {
	Steps     int
	Recording Recording

	// SampleEvery is the stride, in attempts, between metric samples.
	SampleEvery int

	// Burnin is the number of attempts before metrics start sampling.
	Burnin int
}

func DefaultConfig() Config {
	return Config{
		Steps:       20 * 20 * 10_000,
		Recording:   Full,
		SampleEvery: 1,
	}
}

type Result struct {
	Records  []Record
	Final    Record
	Attempts int
	Accepted int
	Metrics  map[string]float64
}

// AcceptanceRate returns the fraction of accepted flips.
func (r *Result) AcceptanceRate() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Attempts)
}

func (r *Result) Energies() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Energy
	}
	return out
}

func (r *Result) Magnetizations() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Magnetization
	}
	return out
}
