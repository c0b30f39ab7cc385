package metrics

import (
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
)

// Energy is the mean energy per site over the sampled records.
type Energy struct {
	name  string
	sites float64
	acc   moments
}

func NewEnergy(sites int) *Energy {
	return &Energy{
		name:  "energy_per_site",
		sites: float64(sites),
	}
}

func (e *Energy) Name() string         { return e.name }
func (e *Energy) Observe(r sim.Record) { e.acc.add(r.Energy) }
func (e *Energy) Reset()               { e.acc.reset() }

func (e *Energy) Value() float64 {
	if e.sites == 0 {
		return 0
	}
	return e.acc.mean() / e.sites
}

// SpecificHeat is Var(E) / (kB·T²·sites).
type SpecificHeat struct {
	name  string
	t     float64
	sites float64
	acc   moments
}

func NewSpecificHeat(t float64, sites int) *SpecificHeat {
	return &SpecificHeat{
		name:  "specific_heat",
		t:     t,
		sites: float64(sites),
	}
}

func (c *SpecificHeat) Name() string         { return c.name }
func (c *SpecificHeat) Observe(r sim.Record) { c.acc.add(r.Energy) }
func (c *SpecificHeat) Reset()               { c.acc.reset() }

func (c *SpecificHeat) Value() float64 {
	if c.t == 0 || c.sites == 0 {
		return 0
	}
	return c.acc.variance() / (lattice.KB * c.t * c.t * c.sites)
}
