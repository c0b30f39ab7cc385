package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/isingsim/internal/lattice"
	log "github.com/sirupsen/logrus"
)

type Simulator struct {
	lat       *lattice.Lattice
	src       Source
	metrics   []Metric
	observers []Observer
}

func New(lat *lattice.Lattice, src Source) *Simulator {
	return &Simulator{
		lat:       lat,
		src:       src,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)        { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }
func (s *Simulator) Lattice() *lattice.Lattice { return s.lat }

// Reset prepares the lattice for a run: a random fill immediately
// overwritten by a checkerboard, so every run starts from the checkerboard.
// The random fill still consumes draws from the source.
func (s *Simulator) Reset() {
	s.lat.InitRandom(s.src)
	s.lat.InitCheckerboard()
}

// Step performs one Metropolis attempt on the current lattice.
func (s *Simulator) Step() (i, j int, accepted bool) {
	n := s.lat.Size()
	i = s.src.IntN(n)
	j = s.src.IntN(n)

	p := s.lat.FlipProbability(i, j)
	if s.src.Float64() < p {
		s.lat.Flip(i, j)
		accepted = true
	}
	return i, j, accepted
}

// Run resets the lattice and performs cfg.Steps attempts. In Full mode the
// result holds cfg.Steps+1 records, the first taken before attempt 0 and the
// last after the final attempt. On cancellation the partial result is
// returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{Metrics: make(map[string]float64)}
	if cfg.Recording == Full {
		result.Records = make([]Record, 0, cfg.Steps+1)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.Reset()

	log.WithFields(log.Fields{
		"size":      s.lat.Size(),
		"T":         s.lat.T(),
		"H":         s.lat.H(),
		"steps":     cfg.Steps,
		"recording": cfg.Recording,
	}).Debug("starting run")

	for step := 0; step < cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			result.Final = Observe(s.lat, step)
			return result, ctx.Err()
		default:
		}

		sample := len(s.metrics) > 0 && step >= cfg.Burnin && (step-cfg.Burnin)%every == 0
		if cfg.Recording == Full || sample {
			rec := Observe(s.lat, step)
			if cfg.Recording == Full {
				result.Records = append(result.Records, rec)
			}
			if sample {
				for _, m := range s.metrics {
					m.Observe(rec)
				}
			}
		}

		i, j, accepted := s.Step()
		result.Attempts++
		if accepted {
			result.Accepted++
		}

		for _, obs := range s.observers {
			obs.OnStep(step, i, j, accepted)
		}
	}

	result.Final = Observe(s.lat, cfg.Steps)
	if cfg.Recording == Full {
		result.Records = append(result.Records, result.Final)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log.WithFields(log.Fields{
		"accepted": result.Accepted,
		"energy":   result.Final.Energy,
		"M":        result.Final.Magnetization,
	}).Debug("run complete")

	return result, nil
}

// RunFinal is Run without the time series.
func (s *Simulator) RunFinal(ctx context.Context, steps int) (Record, error) {
	result, err := s.Run(ctx, Config{Steps: steps, Recording: FinalOnly})
	if result == nil {
		return Record{}, err
	}
	return result.Final, err
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.lat == nil {
		return ErrNilLattice
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeSteps, cfg.Steps)
	}
	if cfg.Recording != Full && cfg.Recording != FinalOnly {
		return fmt.Errorf("%w: %v", ErrUnknownRecording, cfg.Recording)
	}
	return nil
}
