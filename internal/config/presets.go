package config

import "sort"

var Presets = map[string]*Config{
	"ordered": {
		Name: "ordered", Size: 20, TFactor: 0.5, J: 1, Steps: 20 * 20 * 2_000,
		Recording: "full", Rule: "metropolis", SampleEvery: 400,
	},
	"critical": {
		Name: "critical", Size: 32, TFactor: 1.0, J: 1, Steps: 32 * 32 * 5_000,
		Recording: "full", Rule: "metropolis", SampleEvery: 1024,
	},
	"hot": {
		Name: "hot", Size: 20, TFactor: 2.0, J: 1, Steps: 20 * 20 * 10_000,
		Recording: "full", Rule: "metropolis", SampleEvery: 1,
	},
	"field": {
		Name: "field", Size: 20, TFactor: 1.0, H: 0.5, J: 1, Steps: 20 * 20 * 2_000,
		Recording: "full", Rule: "metropolis", SampleEvery: 400,
	},
	"quench": {
		Name: "quench", Size: 64, TFactor: 0.1, J: 1, Steps: 64 * 64 * 200,
		Recording: "final", Rule: "glauber", SampleEvery: 4096,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
