package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/scopetrail/internal/trail"
	"github.com/san-kum/scopetrail/internal/waveforms"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Source != "spring" {
		t.Errorf("expected source spring, got %s", cfg.Source)
	}
	if cfg.Ring.Size != 3 {
		t.Errorf("expected ring size 3, got %d", cfg.Ring.Size)
	}
	if cfg.Ring.DecayFloor != 0.1 {
		t.Errorf("expected decay floor 0.1, got %v", cfg.Ring.DecayFloor)
	}
	if cfg.Interval() != 50*time.Millisecond {
		t.Errorf("expected 50ms interval, got %v", cfg.Interval())
	}
	if cfg.View.Bounds != 1.1 {
		t.Errorf("expected bounds 1.1, got %v", cfg.View.Bounds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"zero ring", func(c *Config) { c.Ring.Size = 0 }, trail.ErrInvalidRingSize},
		{"negative ring", func(c *Config) { c.Ring.Size = -3 }, trail.ErrInvalidRingSize},
		{"floor too high", func(c *Config) { c.Ring.DecayFloor = 1.2 }, trail.ErrInvalidDecayFloor},
		{"empty source", func(c *Config) { c.Source = "" }, ErrInvalidConfig},
		{"zero interval", func(c *Config) { c.IntervalMS = 0 }, nil},
		{"negative bounds", func(c *Config) { c.View.Bounds = -1 }, ErrInvalidConfig},
		{"NaN bounds", func(c *Config) { c.View.Bounds = math.NaN() }, ErrInvalidConfig},
		{"infinite bounds", func(c *Config) { c.View.Bounds = math.Inf(1) }, ErrInvalidConfig},
		{"NaN line width", func(c *Config) { c.View.LineWidth = math.NaN() }, ErrInvalidConfig},
		{"infinite line width", func(c *Config) { c.View.LineWidth = math.Inf(1) }, ErrInvalidConfig},
		{"bad color", func(c *Config) { c.View.Color = "blue" }, ErrInvalidConfig},
		{"bad background", func(c *Config) { c.View.Background = "#12" }, ErrInvalidConfig},
		{"zero export size", func(c *Config) { c.Export.Width = 0 }, ErrInvalidConfig},
		{"zero export frames", func(c *Config) { c.Export.Frames = 0 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestLoad_RejectsInfiniteLineWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inf.yaml")
	if err := os.WriteFile(path, []byte("view:\n  line_width: .inf\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestExportFrames(t *testing.T) {
	tests := []struct {
		name         string
		loop, export int
		want         int
	}{
		{"endless", 0, 200, 200},
		{"shorter than loop", 500, 200, 200},
		{"capped at loop", 40, 200, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Frames = tt.loop
			cfg.Export.Frames = tt.export
			if got := cfg.ExportFrames(); got != tt.want {
				t.Errorf("ExportFrames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.yaml")

	cfg := DefaultConfig()
	cfg.Source = "rose"
	cfg.SetParam("fm", 0.02)
	cfg.Ring.Size = 5
	cfg.View.Color = "#ff00ff"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Source != "rose" || loaded.Ring.Size != 5 || loaded.View.Color != "#ff00ff" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if loaded.Params["fm"] != 0.02 {
		t.Errorf("expected fm 0.02, got %v", loaded.Params["fm"])
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("source: lissajous\nring:\n  size: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Ring.Size != 4 {
		t.Errorf("expected ring 4, got %d", cfg.Ring.Size)
	}
	if cfg.Ring.DecayFloor != 0.1 || cfg.IntervalMS != 50 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ring:\n  size: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, trail.ErrInvalidRingSize) {
		t.Errorf("expected ErrInvalidRingSize, got %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("spring", "long-trail")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Ring.Size != 6 {
		t.Errorf("expected ring 6, got %d", cfg.Ring.Size)
	}

	alt := GetPreset("spring", "alt")
	if alt.Source != "spring-alt" {
		t.Errorf("expected spring-alt source, got %s", alt.Source)
	}
}

func TestPresets_EverySourceHasDefault(t *testing.T) {
	for _, source := range waveforms.NewRegistry().Names() {
		cfg := GetPreset(source, "default")
		if cfg == nil {
			t.Errorf("%s: no default preset", source)
			continue
		}
		if cfg.Source != source {
			t.Errorf("%s: default preset selects %s", source, cfg.Source)
		}
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("spring", "slow-spin")
	a.SetParam("fy", 99)
	b := GetPreset("spring", "slow-spin")
	if b.Params["fy"] != 0.002 {
		t.Errorf("preset mutated through copy: %v", b.Params["fy"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("spring", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "default"); cfg != nil {
		t.Error("expected nil for nonexistent source")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("spring"); len(presets) == 0 {
		t.Error("expected presets for spring")
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent source")
	}
}

func TestPresets_AreValidAndBuildable(t *testing.T) {
	reg := waveforms.NewRegistry()
	for _, source := range PresetSources() {
		for _, name := range ListPresets(source) {
			cfg := GetPreset(source, name)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", source, name, err)
			}
			if _, err := reg.Get(cfg.Source, cfg.Params); err != nil {
				t.Errorf("%s/%s: %v", source, name, err)
			}
		}
	}
}
