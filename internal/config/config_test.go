package config

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Size != 20 {
		t.Errorf("expected size 20, got %d", cfg.Size)
	}
	if cfg.Steps != 20*20*10_000 {
		t.Errorf("expected N²·10000 steps, got %d", cfg.Steps)
	}
	if math.Abs(cfg.Temperature()-2*lattice.OnsagerTc) > 1e-12 {
		t.Errorf("expected T = 2·Tc, got %f", cfg.Temperature())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestTemperature(t *testing.T) {
	cfg := DefaultConfig()
	cfg.J = 2
	cfg.TFactor = 0.5
	if got := cfg.Temperature(); math.Abs(got-lattice.OnsagerTc) > 1e-12 {
		t.Errorf("expected 0.5·Tc(2), got %f", got)
	}

	cfg.T = 1.25
	if got := cfg.Temperature(); got != 1.25 {
		t.Errorf("absolute T should win, got %f", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"size too small", func(c *Config) { c.Size = 1 }, ErrInvalidSize},
		{"zero temperature", func(c *Config) { c.TFactor = 0 }, ErrInvalidTemperature},
		{"negative steps", func(c *Config) { c.Steps = -5 }, ErrInvalidSteps},
		{"bad recording", func(c *Config) { c.Recording = "sparse" }, ErrUnknownRecording},
		{"bad rule", func(c *Config) { c.Rule = "wolff" }, ErrUnknownRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Size = 12
	cfg.H = 0.25
	cfg.Recording = "final"
	cfg.Seed = 7
	cfg.Metrics = []string{"energy", "binder"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ISING_SIZE", "16")
	t.Setenv("ISING_H", "0.75")
	t.Setenv("ISING_RECORDING", "final")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Size != 16 || cfg.H != 0.75 || cfg.Recording != "final" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.J != DefaultJ {
		t.Errorf("unset variables should keep defaults, J = %f", cfg.J)
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Recording = "final"
	cfg.Steps = 99

	sc, err := cfg.SimConfig()
	if err != nil {
		t.Fatalf("SimConfig failed: %v", err)
	}
	if sc.Recording != sim.FinalOnly || sc.Steps != 99 {
		t.Errorf("unexpected sim config %+v", sc)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("critical")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.TFactor != 1.0 {
		t.Errorf("expected t_factor 1.0, got %f", cfg.TFactor)
	}

	cfg.Size = 3
	if Presets["critical"].Size == 3 {
		t.Error("GetPreset should return a copy")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
