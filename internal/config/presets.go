package config

import "sort"

// Presets are keyed by source, then by preset name.
var Presets = map[string]map[string]*Config{
	"spring": {
		"default": preset("spring", nil, nil),
		"alt":     preset("spring-alt", nil, nil),
		"slow-spin": preset("spring", map[string]float64{"fy": 0.002, "fz": 0.002}, func(c *Config) {
			c.Frames = 500
		}),
		"long-trail": preset("spring", nil, func(c *Config) {
			c.Ring.Size = 6
			c.Ring.DecayFloor = 0.05
		}),
		"dense": preset("spring", map[string]float64{"fill": 40, "samples": 4000}, nil),
	},
	"spring-alt": {
		"default": preset("spring-alt", nil, nil),
		"long-trail": preset("spring-alt", nil, func(c *Config) {
			c.Ring.Size = 6
			c.Ring.DecayFloor = 0.05
		}),
	},
	"rose": {
		"default": preset("rose", nil, func(c *Config) {
			c.View.Color = "#ff9ff3"
		}),
		"tight": preset("rose", map[string]float64{"harmonic": 5, "fm": 0.02}, nil),
	},
	"circle-sine": {
		"default": preset("circle-sine", nil, func(c *Config) {
			c.Ring.Size = 1
		}),
	},
	"lissajous": {
		"default": preset("lissajous", nil, func(c *Config) {
			c.View.Color = "#00ff00"
			c.View.Bounds = 1.05
		}),
		"square-gate":   preset("lissajous", map[string]float64{"gate": 1}, nil),
		"sawtooth-gate": preset("lissajous", map[string]float64{"gate": 2, "duty": 0.8}, nil),
	},
}

func preset(source string, params map[string]float64, tweak func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Source = source
	cfg.Params = params
	if tweak != nil {
		tweak(cfg)
	}
	return cfg
}

// GetPreset returns a copy of the preset, or nil if it does not exist.
func GetPreset(source, name string) *Config {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	cfg, ok := sourcePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(source string) []string {
	sourcePresets, ok := Presets[source]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sourcePresets))
	for name := range sourcePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetSources returns every source that has presets, sorted.
func PresetSources() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
