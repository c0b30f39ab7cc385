package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/isingsim/internal/sim"
)

func TestEnergyPerSite(t *testing.T) {
	m := NewEnergy(100)

	m.Observe(sim.Record{Energy: -400})
	m.Observe(sim.Record{Energy: -200})

	if got := m.Value(); got != -3 {
		t.Errorf("expected energy per site -3, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestSpecificHeat(t *testing.T) {
	m := NewSpecificHeat(2.0, 4)

	// variance of {-4, 4} is 16
	m.Observe(sim.Record{Energy: -4})
	m.Observe(sim.Record{Energy: 4})

	want := 16.0 / (4 * 4)
	if got := m.Value(); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected specific heat %f, got %f", want, got)
	}
}

func TestSpecificHeatConstantSeries(t *testing.T) {
	m := NewSpecificHeat(1.0, 16)
	for i := 0; i < 10; i++ {
		m.Observe(sim.Record{Energy: -64})
	}
	if got := m.Value(); got != 0 {
		t.Errorf("expected zero specific heat for a constant series, got %f", got)
	}
}

func TestMagnetizationMetrics(t *testing.T) {
	abs := NewAbsMagnetization(4)
	chi := NewSusceptibility(1.0, 4)
	binder := NewBinder()

	for _, m := range []float64{4, -4, 4, -4} {
		r := sim.Record{Magnetization: m}
		abs.Observe(r)
		chi.Observe(r)
		binder.Observe(r)
	}

	if got := abs.Value(); got != 1 {
		t.Errorf("expected |m| per site 1, got %f", got)
	}
	if got := chi.Value(); got != 0 {
		t.Errorf("expected zero susceptibility for |M| constant, got %f", got)
	}
	if got := binder.Value(); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("expected Binder cumulant 2/3 for a fully ordered series, got %f", got)
	}
}
