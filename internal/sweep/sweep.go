package sweep

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/isingsim/internal/config"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/sim"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Point summarises the replicas run at one temperature.
type Point struct {
	Factor           float64 `json:"t_factor"`
	T                float64 `json:"t"`
	Energy           float64 `json:"energy_per_site"`
	AbsMagnetization float64 `json:"abs_magnetization_per_site"`
	SpecificHeat     float64 `json:"specific_heat"`
	Susceptibility   float64 `json:"susceptibility"`
	Binder           float64 `json:"binder_cumulant"`
	Acceptance       float64 `json:"acceptance"`
	Replicas         int     `json:"replicas"`
}

// Sweep runs independent chains across a list of T/Tc factors.
type Sweep struct {
	factors  []float64
	replicas int
	workers  int
}

func New(factors []float64, replicas, workers int) *Sweep {
	if replicas < 1 {
		replicas = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Sweep{factors: factors, replicas: replicas, workers: workers}
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// Run executes every temperature with base's size, field, coupling, rule
// and run length. Points are returned sorted by factor.
func (s *Sweep) Run(ctx context.Context, base *config.Config) ([]Point, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	for _, f := range s.factors {
		if !(f > 0) {
			return nil, fmt.Errorf("%w: t_factor %g", config.ErrInvalidTemperature, f)
		}
	}

	seed := base.Seed
	if seed == 0 {
		seed = sim.EntropySeed()
	}

	points := make([]Point, len(s.factors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for idx, factor := range s.factors {
		cfg := *base
		cfg.TFactor = factor
		cfg.T = 0
		seedStart := seed + int64(idx*s.replicas)

		g.Go(func() error {
			p, err := runPoint(ctx, &cfg, s.replicas, seedStart)
			if err != nil {
				return fmt.Errorf("t_factor %g: %w", factor, err)
			}
			points[idx] = p
			log.WithFields(log.Fields{"t_factor": factor, "energy": p.Energy, "m": p.AbsMagnetization}).Debug("sweep point done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Factor < points[j].Factor })
	return points, nil
}

func runPoint(ctx context.Context, cfg *config.Config, replicas int, seedStart int64) (Point, error) {
	rule, err := cfg.AcceptanceRule()
	if err != nil {
		return Point{}, err
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return Point{}, err
	}
	simCfg.Recording = sim.FinalOnly

	t := cfg.Temperature()
	build := func(seed int64) *sim.Simulator {
		lat := lattice.New(cfg.Size, t, cfg.H, cfg.J)
		lat.SetRule(rule)
		s := sim.New(lat, sim.NewSource(seed))
		sites := lat.Sites()
		s.AddMetric(metrics.NewEnergy(sites))
		s.AddMetric(metrics.NewAbsMagnetization(sites))
		s.AddMetric(metrics.NewSpecificHeat(t, sites))
		s.AddMetric(metrics.NewSusceptibility(t, sites))
		s.AddMetric(metrics.NewBinder())
		return s
	}

	results, err := sim.NewEnsemble(build, replicas, seedStart).Run(ctx, simCfg)
	if err != nil {
		return Point{}, err
	}

	p := Point{Factor: cfg.TFactor, T: t, Replicas: len(results)}
	for _, r := range results {
		p.Energy += r.Metrics["energy_per_site"]
		p.AbsMagnetization += r.Metrics["abs_magnetization_per_site"]
		p.SpecificHeat += r.Metrics["specific_heat"]
		p.Susceptibility += r.Metrics["susceptibility"]
		p.Binder += r.Metrics["binder_cumulant"]
		p.Acceptance += r.AcceptanceRate()
	}
	k := float64(len(results))
	p.Energy /= k
	p.AbsMagnetization /= k
	p.SpecificHeat /= k
	p.Susceptibility /= k
	p.Binder /= k
	p.Acceptance /= k

	return p, nil
}
