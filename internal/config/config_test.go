package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Shape != [3]int{20, 20, 20} {
		t.Errorf("unexpected default shape: %v", cfg.Shape)
	}
	if cfg.GridSpacing != DefaultGridSpacing {
		t.Errorf("unexpected default spacing: %g", cfg.GridSpacing)
	}
	if cfg.Source.Period != DefaultPeriod {
		t.Errorf("unexpected default period: %d", cfg.Source.Period)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shape = [3]int{64, 64, 1}
	cfg.Steps = 250
	cfg.Source.Period = 20
	cfg.PeriodicAxes = []string{"x"}

	path := filepath.Join(t.TempDir(), "sim.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Shape != cfg.Shape {
		t.Errorf("shape: expected %v, got %v", cfg.Shape, loaded.Shape)
	}
	if loaded.Steps != cfg.Steps {
		t.Errorf("steps: expected %d, got %d", cfg.Steps, loaded.Steps)
	}
	if len(loaded.PeriodicAxes) != 1 || loaded.PeriodicAxes[0] != "x" {
		t.Errorf("periodic axes: got %v", loaded.PeriodicAxes)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("steps: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Steps != 50 {
		t.Errorf("expected steps 50, got %d", cfg.Steps)
	}
	if cfg.Shape != [3]int{20, 20, 20} {
		t.Errorf("unset shape should keep its default, got %v", cfg.Shape)
	}
	if cfg.Source.Period != DefaultPeriod {
		t.Errorf("unset period should keep its default, got %d", cfg.Source.Period)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero shape axis", func(c *Config) { c.Shape[1] = 0 }},
		{"negative spacing", func(c *Config) { c.GridSpacing = -1 }},
		{"negative steps", func(c *Config) { c.Steps = -1 }},
		{"zero period", func(c *Config) { c.Source.Period = 0 }},
		{"bad periodic axis", func(c *Config) { c.PeriodicAxes = []string{"w"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets defined")
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("listed preset is missing")
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset does not validate: %v", err)
			}
		})
	}

	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestPresetsAreIndependentCopies(t *testing.T) {
	a := GetPreset("sheet")
	a.Steps = 1
	b := GetPreset("sheet")
	if b.Steps == 1 {
		t.Error("presets share state between calls")
	}
}
