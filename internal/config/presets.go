package config

import "sort"

// presets are ready-made simulations for the CLI.
var presets = map[string]func() *Config{
	"point-pulse": func() *Config {
		return DefaultConfig()
	},
	"sheet": func() *Config {
		// 2D sheet with a line source across the middle row.
		cfg := DefaultConfig()
		cfg.Shape = [3]int{64, 64, 1}
		cfg.Source = SourceConfig{
			From:   [3]int{16, 32, 0},
			To:     [3]int{48, 32, 0},
			Period: 20,
			Power:  1.0,
		}
		cfg.Probe = ProbeConfig{At: [3]int{32, 48, 0}}
		cfg.Steps = 200
		return cfg
	},
	"periodic-duct": func() *Config {
		// 1D duct wrapped around x, so the wave re-enters on the far side.
		cfg := DefaultConfig()
		cfg.Shape = [3]int{128, 1, 1}
		cfg.Source = SourceConfig{
			From:   [3]int{32, 0, 0},
			To:     [3]int{32, 0, 0},
			Period: 25,
			Power:  1.0,
		}
		cfg.Probe = ProbeConfig{At: [3]int{96, 0, 0}}
		cfg.PeriodicAxes = []string{"x"}
		cfg.Steps = 400
		return cfg
	},
	"dense-medium": func() *Config {
		cfg := DefaultConfig()
		cfg.Permittivity = 4.0 // half the vacuum phase velocity
		cfg.Steps = 200
		return cfg
	},
}

// GetPreset returns a fresh copy of a named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
