package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/metrics"
	"github.com/san-kum/isingsim/internal/sim"
)

type MetricFactory func(l *lattice.Lattice) sim.Metric

type Registry struct {
	metrics map[string]MetricFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]MetricFactory),
	}

	r.metrics["energy"] = func(l *lattice.Lattice) sim.Metric { return metrics.NewEnergy(l.Sites()) }
	r.metrics["magnetization"] = func(l *lattice.Lattice) sim.Metric { return metrics.NewAbsMagnetization(l.Sites()) }
	r.metrics["specific_heat"] = func(l *lattice.Lattice) sim.Metric { return metrics.NewSpecificHeat(l.T(), l.Sites()) }
	r.metrics["susceptibility"] = func(l *lattice.Lattice) sim.Metric { return metrics.NewSusceptibility(l.T(), l.Sites()) }
	r.metrics["binder"] = func(l *lattice.Lattice) sim.Metric { return metrics.NewBinder() }

	return r
}

func (r *Registry) GetMetric(name string, l *lattice.Lattice) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(l), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metrics builds the named metrics, or every registered one when names is
// empty.
func (r *Registry) Metrics(names []string, l *lattice.Lattice) ([]sim.Metric, error) {
	if len(names) == 0 {
		names = r.ListMetrics()
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, l)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
