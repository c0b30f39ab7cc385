package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/isingsim/internal/lattice"
	"github.com/san-kum/isingsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSize        = 20
	DefaultTFactor     = 2.0
	DefaultJ           = 1.0
	DefaultSweeps      = 10_000
	DefaultSampleEvery = 1
	DefaultDataDir     = ".isingsim"
)

var (
	ErrInvalidSize        = errors.New("config: size must be at least 2")
	ErrInvalidTemperature = errors.New("config: temperature must be positive")
	ErrInvalidSteps       = errors.New("config: steps must not be negative")
	ErrUnknownRecording   = errors.New("config: unknown recording mode")
	ErrUnknownRule        = errors.New("config: unknown acceptance rule")
)

// Config describes one run. Temperature is given either absolutely (T) or
// as a multiple of Tc(J) (TFactor); T wins when positive.
type Config struct {
	Name        string   `yaml:"name" env:"NAME"`
	Size        int      `yaml:"size" env:"SIZE"`
	TFactor     float64  `yaml:"t_factor" env:"T_FACTOR"`
	T           float64  `yaml:"t" env:"T"`
	H           float64  `yaml:"h" env:"H"`
	J           float64  `yaml:"j" env:"J"`
	Steps       int      `yaml:"steps" env:"STEPS"`
	Seed        int64    `yaml:"seed" env:"SEED"`
	Recording   string   `yaml:"recording" env:"RECORDING"`
	Rule        string   `yaml:"rule" env:"RULE"`
	SampleEvery int      `yaml:"sample_every" env:"SAMPLE_EVERY"`
	Burnin      int      `yaml:"burnin" env:"BURNIN"`
	Metrics     []string `yaml:"metrics,omitempty" env:"METRICS" envSeparator:","`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "ising",
		Size:        DefaultSize,
		TFactor:     DefaultTFactor,
		J:           DefaultJ,
		Steps:       DefaultSize * DefaultSize * DefaultSweeps,
		Recording:   sim.Full.String(),
		Rule:        lattice.Metropolis.String(),
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from ISING_* environment variables.
func (c *Config) ApplyEnv() error {
	return env.ParseWithOptions(c, env.Options{Prefix: "ISING_"})
}

// Temperature resolves the absolute temperature of the run.
func (c *Config) Temperature() float64 {
	if c.T > 0 {
		return c.T
	}
	return c.TFactor * lattice.Tcrit(c.J)
}

func (c *Config) RecordingMode() (sim.Recording, error) {
	r, err := sim.ParseRecording(c.Recording)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRecording, c.Recording)
	}
	return r, nil
}

func (c *Config) AcceptanceRule() (lattice.Rule, error) {
	r, err := lattice.ParseRule(c.Rule)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRule, c.Rule)
	}
	return r, nil
}

func (c *Config) Validate() error {
	if c.Size < 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, c.Size)
	}
	if t := c.Temperature(); !(t > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidTemperature, t)
	}
	if c.Steps < 0 || c.Burnin < 0 {
		return fmt.Errorf("%w: steps %d, burnin %d", ErrInvalidSteps, c.Steps, c.Burnin)
	}
	if _, err := c.RecordingMode(); err != nil {
		return err
	}
	if _, err := c.AcceptanceRule(); err != nil {
		return err
	}
	return nil
}

// SimConfig returns the driver settings for this run.
func (c *Config) SimConfig() (sim.Config, error) {
	rec, err := c.RecordingMode()
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Steps:       c.Steps,
		Recording:   rec,
		SampleEvery: c.SampleEvery,
		Burnin:      c.Burnin,
	}, nil
}
