// Package config holds the yaml-backed simulation configuration and the
// built-in presets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGridSpacing = 25e-9
	DefaultSteps       = 100
	DefaultPeriod      = 15
	DefaultPower       = 1.0
)

// Config describes a complete simulation: grid geometry, background
// material, one line source, one probe and an optional periodic axis.
type Config struct {
	Shape         [3]int  `yaml:"shape"` // cells per axis
	GridSpacing   float64 `yaml:"grid_spacing"`
	Permittivity  float64 `yaml:"permittivity"`
	Permeability  float64 `yaml:"permeability"`
	CourantNumber float64 `yaml:"courant_number"` // 0 = derive from dimensionality
	Steps         int     `yaml:"steps"`

	Source SourceConfig `yaml:"source"`
	Probe  ProbeConfig  `yaml:"probe"`

	// PeriodicAxes wraps the named axes ("x", "y", "z").
	PeriodicAxes []string `yaml:"periodic_axes"`
}

// SourceConfig places a line source between two cell corners.
type SourceConfig struct {
	From       [3]int  `yaml:"from"`
	To         [3]int  `yaml:"to"`
	Period     int     `yaml:"period"` // timesteps
	Power      float64 `yaml:"power"`
	PhaseShift float64 `yaml:"phase_shift"`
}

// ProbeConfig places a single-cell field probe.
type ProbeConfig struct {
	At [3]int `yaml:"at"`
}

func DefaultConfig() *Config {
	return &Config{
		Shape:        [3]int{20, 20, 20},
		GridSpacing:  DefaultGridSpacing,
		Permittivity: 1.0,
		Permeability: 1.0,
		Steps:        DefaultSteps,
		Source: SourceConfig{
			From:   [3]int{10, 10, 10},
			To:     [3]int{10, 10, 10},
			Period: DefaultPeriod,
			Power:  DefaultPower,
		},
		Probe: ProbeConfig{
			At: [3]int{15, 10, 10},
		},
	}
}

// Load reads a config file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the cheap structural constraints; grid-level validation
// (shape, courant) happens at grid construction.
func (c *Config) Validate() error {
	for i, n := range c.Shape {
		if n < 1 {
			return fmt.Errorf("config: shape[%d] must be positive, got %d", i, n)
		}
	}
	if c.GridSpacing <= 0 {
		return fmt.Errorf("config: grid_spacing must be positive, got %g", c.GridSpacing)
	}
	if c.Steps < 0 {
		return fmt.Errorf("config: steps must be non-negative, got %d", c.Steps)
	}
	if c.Source.Period < 1 {
		return fmt.Errorf("config: source period must be at least 1 timestep, got %d", c.Source.Period)
	}
	for _, axis := range c.PeriodicAxes {
		switch axis {
		case "x", "y", "z":
		default:
			return fmt.Errorf("config: unknown periodic axis %q", axis)
		}
	}
	return nil
}
