package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
	"github.com/san-kum/isingsim/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Experiment is one configured run: a lattice, its random source and the
// simulator driving it.
type Experiment struct {
	cfg       config.Config
	seed      int64
	simulator *sim.Simulator
	elapsed   time.Duration
}

// New validates cfg and builds the lattice and simulator. A zero seed is
// replaced by one drawn from entropy so the run can be reproduced later.
func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rule, err := cfg.AcceptanceRule()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = sim.EntropySeed()
	}

	lat := lattice.New(cfg.Size, cfg.Temperature(), cfg.H, cfg.J)
	lat.SetRule(rule)

	s := sim.New(lat, sim.NewSource(seed))
	ms, err := registry.Metrics(cfg.Metrics, lat)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		s.AddMetric(m)
	}

	return &Experiment{cfg: *cfg, seed: seed, simulator: s}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg, err := e.cfg.SimConfig()
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"name": e.cfg.Name,
		"seed": e.seed,
		"T":    e.cfg.Temperature(),
	}).Info("running experiment")

	start := time.Now()
	result, err := e.simulator.Run(ctx, simCfg)
	e.elapsed = time.Since(start)
	return result, err
}

func (e *Experiment) Seed() int64                  { return e.seed }
func (e *Experiment) Elapsed() time.Duration       { return e.elapsed }
func (e *Experiment) Lattice() *lattice.Lattice    { return e.simulator.Lattice() }
func (e *Experiment) GetSimulator() *sim.Simulator { return e.simulator }

// Metadata describes the run for storage.
func (e *Experiment) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Config:      e.cfg,
		Temperature: e.cfg.Temperature(),
		Seed:        e.seed,
		Elapsed:     e.elapsed.String(),
	}
}
