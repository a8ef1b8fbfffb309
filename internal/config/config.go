package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/scopetrail/internal/loop"
	"github.com/san-kum/scopetrail/internal/trail"
)

const (
	DefaultSource     = "spring"
	DefaultIntervalMS = 50
	DefaultBounds     = 1.1
	DefaultColor      = "#3fcfff"
	DefaultBackground = "#000000"
	DefaultLineWidth  = 1.5
	DefaultTheme      = "phosphor"
	DefaultWidth      = 300
	DefaultHeight     = 300
	DefaultFrames     = 200
	DefaultSampleRate = 44100
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Source     string             `yaml:"source"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	Ring       RingConfig         `yaml:"ring"`
	IntervalMS int                `yaml:"interval_ms"`
	// Frames is the loop length; 0 animates forever.
	Frames int          `yaml:"frames"`
	View   ViewConfig   `yaml:"view"`
	Export ExportConfig `yaml:"export"`
}

type RingConfig struct {
	Size       int     `yaml:"size"`
	DecayFloor float64 `yaml:"decay_floor"`
}

type ViewConfig struct {
	Bounds     float64 `yaml:"bounds"`
	Color      string  `yaml:"color"`
	Background string  `yaml:"background"`
	LineWidth  float64 `yaml:"line_width"`
	Theme      string  `yaml:"theme"`
}

type ExportConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	Frames     int `yaml:"frames"`
	SampleRate int `yaml:"sample_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Source: DefaultSource,
		Ring: RingConfig{
			Size:       trail.DefaultSize,
			DecayFloor: trail.DefaultDecayFloor,
		},
		IntervalMS: DefaultIntervalMS,
		View: ViewConfig{
			Bounds:     DefaultBounds,
			Color:      DefaultColor,
			Background: DefaultBackground,
			LineWidth:  DefaultLineWidth,
			Theme:      DefaultTheme,
		},
		Export: ExportConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Frames:     DefaultFrames,
			SampleRate: DefaultSampleRate,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate rejects values the renderer or exporters cannot use. Nothing is
// clamped.
func (c *Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("%w: empty source", ErrInvalidConfig)
	}
	if _, err := trail.Opacities(c.Ring.Size, c.Ring.DecayFloor); err != nil {
		return err
	}
	if err := c.Loop().Validate(); err != nil {
		return err
	}
	if !positive(c.View.Bounds) {
		return fmt.Errorf("%w: bounds must be finite and positive, got %v", ErrInvalidConfig, c.View.Bounds)
	}
	if !positive(c.View.LineWidth) {
		return fmt.Errorf("%w: line width must be finite and positive, got %v", ErrInvalidConfig, c.View.LineWidth)
	}
	if _, err := colorful.Hex(c.View.Color); err != nil {
		return fmt.Errorf("%w: color %q: %v", ErrInvalidConfig, c.View.Color, err)
	}
	if _, err := colorful.Hex(c.View.Background); err != nil {
		return fmt.Errorf("%w: background %q: %v", ErrInvalidConfig, c.View.Background, err)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("%w: export size %dx%d", ErrInvalidConfig, c.Export.Width, c.Export.Height)
	}
	if c.Export.Frames <= 0 {
		return fmt.Errorf("%w: export frames must be positive, got %d", ErrInvalidConfig, c.Export.Frames)
	}
	if c.Export.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidConfig, c.Export.SampleRate)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

func (c *Config) Loop() loop.Loop {
	return loop.Loop{Interval: c.Interval(), Frames: c.Frames}
}

// ExportFrames is the number of frames an export renders: Export.Frames,
// capped at one loop when the animation loops.
func (c *Config) ExportFrames() int {
	if c.Frames > 0 && c.Export.Frames > c.Frames {
		return c.Frames
	}
	return c.Export.Frames
}

func (c *Config) TrailOptions() trail.Options {
	return trail.Options{Size: c.Ring.Size, DecayFloor: c.Ring.DecayFloor}
}

// Clone returns a deep copy, so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// SetParam records a source parameter override.
func (c *Config) SetParam(name string, value float64) {
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
	c.Params[name] = value
}
