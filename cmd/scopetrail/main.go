package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/scopetrail/internal/analysis"
	"github.com/san-kum/scopetrail/internal/automation"
	"github.com/san-kum/scopetrail/internal/config"
	"github.com/san-kum/scopetrail/internal/export"
	"github.com/san-kum/scopetrail/internal/scope"
	"github.com/san-kum/scopetrail/internal/trail"
	"github.com/san-kum/scopetrail/internal/viz"
	"github.com/san-kum/scopetrail/internal/waveforms"
)

var (
	configFile string
	saveConfig string
	preset     string
	params     []string
	verbose    bool
	// ring and view overrides
	ringSize   int
	decayFloor float64
	intervalMS int
	frames     int
	bounds     float64
	color      string
	theme      string
	// live
	gifPath string
	logFile string
	// run
	ticks int
	// render
	format string
	out    string
	count  int
	width  int
	height int
	// wave, analyze
	frame        int
	xy           bool
	motionFrames int
	// sweep
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scopetrail",
		Short: "vector-scope patterns with a phosphor trail",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(os.Stderr)
		},
		// default to the live view of the default source
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&saveConfig, "save-config", "", "write the resolved config to this path")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringArrayVar(&params, "param", nil, "source parameter override, name=value (repeatable)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&ringSize, "ring", trail.DefaultSize, "number of trail slots")
	pf.Float64Var(&decayFloor, "decay", trail.DefaultDecayFloor, "opacity of the oldest slot")
	pf.IntVar(&intervalMS, "interval", config.DefaultIntervalMS, "tick interval in milliseconds")
	pf.IntVar(&frames, "frames", 0, "loop length in frames (0 = endless)")
	pf.Float64Var(&bounds, "bounds", config.DefaultBounds, "plot extent, ±bounds on both axes")
	pf.StringVar(&color, "color", config.DefaultColor, "trace color")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "live view theme")

	liveCmd := &cobra.Command{
		Use:   "live [source]",
		Short: "animate a source in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&gifPath, "gif", viz.DefaultGIFPath, "where G writes recordings")
	liveCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the view is open")

	runCmd := &cobra.Command{
		Use:   "run [source]",
		Short: "tick a source headless and report the frame rate",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 200, "ticks before stopping (0 = until interrupted)")

	renderCmd := &cobra.Command{
		Use:   "render [source]",
		Short: "export frames as gif, png, svg, csv or wav",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&format, "format", "f", "gif", "output format: "+strings.Join(export.Formats, "|"))
	renderCmd.Flags().StringVarP(&out, "out", "o", "", "output path (a directory for png)")
	renderCmd.Flags().IntVar(&count, "count", config.DefaultFrames, "frames to render")
	renderCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "image width")
	renderCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "image height")

	waveCmd := &cobra.Command{
		Use:   "wave [source]",
		Short: "plot one frame's x(t) and y(t)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWave,
	}
	waveCmd.Flags().IntVar(&frame, "frame", 0, "frame index")
	waveCmd.Flags().BoolVar(&xy, "xy", false, "draw the x/y figure instead of the time series")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [source]",
		Short: "shape and frequency analysis of one frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().IntVar(&frame, "frame", 0, "frame index")
	analyzeCmd.Flags().IntVar(&motionFrames, "motion", 50, "frames to average motion over")

	presetsCmd := &cobra.Command{
		Use:   "presets [source]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	sourcesCmd := &cobra.Command{
		Use:   "sources",
		Short: "list sources and their default parameters",
		Args:  cobra.NoArgs,
		RunE:  listSources,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run the render jobs listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [source]",
		Short: "measure a source across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "name", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of values")
	sweepCmd.Flags().IntVar(&frame, "frame", 0, "frame index")
	sweepCmd.Flags().IntVar(&motionFrames, "motion", 20, "frames to average motion over")
	sweepCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(liveCmd, runCmd, renderCmd, waveCmd, analyzeCmd, presetsCmd, sourcesCmd, batchCmd, sweepCmd)
	return rootCmd
}

func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// resolveConfig layers defaults, then the preset, then the config file, then
// any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Source = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Source, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Source))
		}
		cfg = p
	}

	// config file overrides the preset; an explicit source still wins
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Source = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("ring") {
		cfg.Ring.Size = ringSize
	}
	if flags.Changed("decay") {
		cfg.Ring.DecayFloor = decayFloor
	}
	if flags.Changed("interval") {
		cfg.IntervalMS = intervalMS
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("bounds") {
		cfg.View.Bounds = bounds
	}
	if flags.Changed("color") {
		cfg.View.Color = color
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Lookup("count") != nil && flags.Changed("count") {
		cfg.Export.Frames = count
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.Export.Width = width
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		cfg.Export.Height = height
	}

	overrides, err := parseParams(params)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		cfg.SetParam(k, v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
		slog.Info("config: saved", "path", saveConfig)
	}
	return cfg, nil
}

// parseParams turns name=value pairs into a parameter map.
func parseParams(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", p)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --param %q: %w", p, err)
		}
		out[name] = v
	}
	return out, nil
}

func buildRenderer(cmd *cobra.Command, args []string) (*config.Config, waveforms.Waveform, *trail.Renderer, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, nil, err
	}
	src, err := waveforms.NewRegistry().Get(cfg.Source, cfg.Params)
	if err != nil {
		return nil, nil, nil, err
	}
	r, err := trail.New(src, cfg.TrailOptions())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("trail: %w", err)
	}
	slog.Debug("renderer ready", "source", src.Name(), "ring", r.Size(), "opacities", r.Opacities())
	return cfg, src, r, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, src, r, err := buildRenderer(cmd, args)
	if err != nil {
		return err
	}

	// the alt screen owns the terminal; logs go to a file or nowhere
	logOut := io.Discard
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	setupLogging(logOut)

	model, err := viz.NewModel(r, cfg, viz.Options{Source: src.Name(), GIFPath: gifPath})
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return fmt.Errorf("live: %w", m.Err())
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, src, r, err := buildRenderer(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()

	l := cfg.Loop()
	l.Limit = ticks

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("run: starting", "source", src.Name(), "ring", r.Size(), "interval", l.Interval, "ticks", ticks)
	err = l.Run(ctx, func(frame int) error {
		_, err := r.Tick(frame)
		return err
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run: %w", err)
	}

	st := r.Stats()
	slog.Info("run: done", "frames", st.Frames, "elapsed", st.Elapsed, "fps", st.FPS, "seeds", st.Seeds)
	fmt.Printf("%s: %d frames in %v (%.1f fps, %d seeds)\n", src.Name(), st.Frames, st.Elapsed.Round(time.Millisecond), st.FPS, st.Seeds)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, src, r, err := buildRenderer(cmd, args)
	if err != nil {
		return err
	}
	defer r.Close()

	style, err := export.StyleFromConfig(cfg)
	if err != nil {
		return err
	}

	path := out
	if path == "" {
		path = src.Name() + "." + format
		if format == "png" {
			path = src.Name() + "-frames"
		}
	}

	sink, err := export.NewSink(format, style, export.Options{
		Path:       path,
		Interval:   cfg.Interval(),
		SampleRate: cfg.Export.SampleRate,
	})
	if err != nil {
		return err
	}

	n := cfg.ExportFrames()
	if err := export.Run(r, n, sink); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Printf("wrote %s (%d frames)\n", path, n)
	return nil
}

func runWave(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	src, err := waveforms.NewRegistry().Get(cfg.Source, cfg.Params)
	if err != nil {
		return err
	}
	c, err := scope.Fetch(src, frame)
	if err != nil {
		return err
	}

	if xy {
		canvas := viz.NewCanvas(60, 30)
		canvas.DrawCurve(c, viz.Viewport{Bounds: cfg.View.Bounds, Width: 60, Height: 30})
		fmt.Print(canvas.String())
		return nil
	}

	graph := asciigraph.PlotMany([][]float64{c.X, c.Y},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.Caption(fmt.Sprintf("%s frame %d: x (cyan), y (magenta)", src.Name(), frame)),
	)
	fmt.Println(graph)
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	src, err := waveforms.NewRegistry().Get(cfg.Source, cfg.Params)
	if err != nil {
		return err
	}
	c, err := scope.Fetch(src, frame)
	if err != nil {
		return err
	}

	shape := analysis.Describe(c)
	psX, psY := analysis.PowerSpectrum(c.X), analysis.PowerSpectrum(c.Y)
	binX, magX := analysis.Dominant(psX)
	binY, magY := analysis.Dominant(psY)
	motion, err := analysis.Motion(src, motionFrames)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "source\t%s\n", src.Name())
	fmt.Fprintf(w, "frame\t%d\n", frame)
	fmt.Fprintf(w, "samples\t%d\n", shape.Samples)
	fmt.Fprintf(w, "x range\t[%.4f, %.4f]\n", shape.MinX, shape.MaxX)
	fmt.Fprintf(w, "y range\t[%.4f, %.4f]\n", shape.MinY, shape.MaxY)
	fmt.Fprintf(w, "max radius\t%.4f\n", shape.MaxRadius)
	fmt.Fprintf(w, "centroid\t(%.4f, %.4f)\n", shape.Centroid.X, shape.Centroid.Y)
	fmt.Fprintf(w, "path length\t%.4f\n", shape.PathLength)
	fmt.Fprintf(w, "closure\t%.6f\n", shape.Closure)
	fmt.Fprintf(w, "x peak\tbin %d (%.4f)\n", binX, magX)
	fmt.Fprintf(w, "y peak\tbin %d (%.4f)\n", binY, magY)
	fmt.Fprintf(w, "motion/frame\t%.6f over %d frames\n", motion, motionFrames)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(psX) > 1 {
		n := min(len(psX), 64)
		fmt.Println()
		fmt.Println(asciigraph.PlotMany([][]float64{psX[1:n], psY[1:n]},
			asciigraph.Height(8),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption("|X(k)|, k=1..63: x (cyan), y (magenta)"),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	sources := config.PresetSources()
	if len(args) > 0 {
		sources = args
	}
	for _, s := range sources {
		presets := config.ListPresets(s)
		if len(presets) == 0 {
			fmt.Printf("no presets for source: %s\n", s)
			continue
		}
		fmt.Printf("presets for %s:\n", s)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func listSources(cmd *cobra.Command, args []string) error {
	reg := waveforms.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range reg.Names() {
		defaults, err := reg.Defaults(name)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(defaults))
		for k := range defaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%g", k, defaults[k])
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(pairs, " "))
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, scenario, waveforms.NewRegistry())
	for _, r := range results {
		fmt.Printf("%-12s %-28s %4d frames\n", r.Source, r.Path, r.Frames)
	}
	if err != nil {
		return fmt.Errorf("batch %s: %w", scenario.Name, err)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sweep := &automation.ParameterSweep{
		Source: args[0],
		Param:  sweepParam,
		Min:    sweepFrom,
		Max:    sweepTo,
		Steps:  sweepSteps,
		Frame:  frame,
		Motion: motionFrames,
	}
	results, err := automation.RunSweep(cmd.Context(), sweep, waveforms.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tpath\tradius\tclosure\tmotion\n", sweepParam)
	lengths := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%.4g\t%.4f\t%.4f\t%.6f\t%.6f\n", r.Value, r.PathLength, r.MaxRadius, r.Closure, r.Motion)
		lengths[i] = r.PathLength
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(lengths) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(lengths, asciigraph.Height(6), asciigraph.Caption("path length vs "+sweepParam)))
	}
	return nil
}
