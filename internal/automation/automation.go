// Package automation runs scripted render jobs and parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scopetrail/internal/analysis"
	"github.com/san-kum/scopetrail/internal/config"
	"github.com/san-kum/scopetrail/internal/export"
	"github.com/san-kum/scopetrail/internal/scope"
	"github.com/san-kum/scopetrail/internal/trail"
	"github.com/san-kum/scopetrail/internal/waveforms"
)

// Scenario is a list of render jobs read from YAML.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Dir is prepended to every relative job output path.
	Dir  string `yaml:"dir"`
	Jobs []Job  `yaml:"jobs"`
}

// Job renders one source. Zero values keep the preset's (or default) setting.
type Job struct {
	Source string             `yaml:"source"`
	Preset string             `yaml:"preset"`
	Params map[string]float64 `yaml:"params"`
	Ring   int                `yaml:"ring"`
	Decay  float64            `yaml:"decay"`
	Format string             `yaml:"format"`
	Out    string             `yaml:"out"`
	Frames int                `yaml:"frames"`
	Loop   int                `yaml:"loop"`
}

// JobResult reports one finished job.
type JobResult struct {
	Source string
	Path   string
	Frames int
	Stats  trail.Stats
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Config resolves the job against its preset and validates the result.
func (j Job) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if j.Preset != "" {
		cfg = config.GetPreset(j.Source, j.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", j.Preset, config.ListPresets(j.Source))
		}
	} else if j.Source != "" {
		cfg.Source = j.Source
	}
	for k, v := range j.Params {
		cfg.SetParam(k, v)
	}
	if j.Ring != 0 {
		cfg.Ring.Size = j.Ring
	}
	if j.Decay != 0 {
		cfg.Ring.DecayFloor = j.Decay
	}
	if j.Frames != 0 {
		cfg.Export.Frames = j.Frames
	}
	if j.Loop != 0 {
		cfg.Frames = j.Loop
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes every job in order and stops at the first failure.
// Results of the jobs that finished are returned either way.
func RunScenario(ctx context.Context, scenario *Scenario, registry *waveforms.Registry) ([]JobResult, error) {
	results := make([]JobResult, 0, len(scenario.Jobs))

	for i, job := range scenario.Jobs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		slog.Info("automation: job", "n", i+1, "of", len(scenario.Jobs), "source", job.Source, "format", job.Format)

		res, err := runJob(job, scenario.Dir, registry)
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func runJob(job Job, dir string, registry *waveforms.Registry) (JobResult, error) {
	cfg, err := job.Config()
	if err != nil {
		return JobResult{}, err
	}

	src, err := registry.Get(cfg.Source, cfg.Params)
	if err != nil {
		return JobResult{}, err
	}
	r, err := trail.New(src, cfg.TrailOptions())
	if err != nil {
		return JobResult{}, err
	}
	defer r.Close()

	style, err := export.StyleFromConfig(cfg)
	if err != nil {
		return JobResult{}, err
	}

	format := job.Format
	if format == "" {
		format = "gif"
	}
	path := job.Out
	if path == "" {
		path = cfg.Source + "." + format
	}
	if dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	sink, err := export.NewSink(format, style, export.Options{
		Path:       path,
		Interval:   cfg.Interval(),
		SampleRate: cfg.Export.SampleRate,
	})
	if err != nil {
		return JobResult{}, err
	}
	n := cfg.ExportFrames()
	if err := export.Run(r, n, sink); err != nil {
		return JobResult{}, err
	}

	return JobResult{Source: cfg.Source, Path: path, Frames: n, Stats: r.Stats()}, nil
}

// ParameterSweep varies one source parameter over [Min, Max].
type ParameterSweep struct {
	Source   string
	Param    string
	Min, Max float64
	Steps    int
	Frame    int // frame measured for the shape columns
	Motion   int // frames averaged for the motion column
}

// SweepResult measures the source at one parameter value.
type SweepResult struct {
	Value      float64
	PathLength float64
	MaxRadius  float64
	Closure    float64
	Motion     float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *waveforms.Registry) ([]SweepResult, error) {
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep: steps must be positive, got %d", sweep.Steps)
	}
	step := 0.0
	if sweep.Steps > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	}

	results := make([]SweepResult, 0, sweep.Steps)
	for i := 0; i < sweep.Steps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		value := sweep.Min + float64(i)*step

		src, err := registry.Get(sweep.Source, map[string]float64{sweep.Param: value})
		if err != nil {
			return results, err
		}
		c, err := scope.Fetch(src, sweep.Frame)
		if err != nil {
			return results, err
		}
		motion, err := analysis.Motion(src, sweep.Motion)
		if err != nil {
			return results, err
		}

		shape := analysis.Describe(c)
		results = append(results, SweepResult{
			Value:      value,
			PathLength: shape.PathLength,
			MaxRadius:  shape.MaxRadius,
			Closure:    shape.Closure,
			Motion:     motion,
		})
		slog.Debug("automation: sweep", "n", i+1, "of", sweep.Steps, sweep.Param, value)
	}
	return results, nil
}
