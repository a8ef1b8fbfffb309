package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/scopetrail/internal/config"
	"github.com/san-kum/scopetrail/internal/export"
	"github.com/san-kum/scopetrail/internal/loop"
	"github.com/san-kum/scopetrail/internal/trail"
)

const (
	width        = 60
	height       = 24
	statsWidth   = 45
	minInterval  = 10 * time.Millisecond
	maxInterval  = time.Second
	frameHistory = 120
)

const DefaultGIFPath = "scopetrail.gif"

type TickMsg time.Time

// Options configures the live view beyond what the config carries.
type Options struct {
	Source  string
	GIFPath string
}

// Model drives a trail renderer from bubbletea ticks and draws its ring as
// stacked braille layers, newest on top.
type Model struct {
	renderer *trail.Renderer
	loop     loop.Loop
	style    export.Style
	floor    float64
	source   string
	gifPath  string

	frame         int
	slots         []trail.Slot
	interval      time.Duration
	width, height int
	layers        []*Canvas
	theme         int

	running   bool
	showHelp  bool
	recording bool
	recorder  *export.GIFRecorder
	raster    *export.Rasterizer

	lastTick   time.Time
	frameTimes []float64
	status     string
	err        error
}

// NewModel wires r to a live view. The renderer is ticked from frame 0 on
// the first TickMsg.
func NewModel(r *trail.Renderer, cfg *config.Config, opts Options) (Model, error) {
	style, err := export.StyleFromConfig(cfg)
	if err != nil {
		return Model{}, err
	}
	if opts.GIFPath == "" {
		opts.GIFPath = DefaultGIFPath
	}

	m := Model{
		renderer: r,
		loop:     cfg.Loop(),
		style:    style,
		floor:    cfg.Ring.DecayFloor,
		source:   opts.Source,
		gifPath:  opts.GIFPath,
		interval: cfg.Interval(),
		theme:    themeIndex(cfg.View.Theme),
		running:  true,
		recorder: export.NewGIFRecorder(style, cfg.Interval()),
		raster:   export.NewRasterizer(style),
	}
	m.resize(width, height)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the ring.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.toggleRecording()
			}
			m.renderer.Close()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		case "[":
			m.interval = min(m.interval*2, maxInterval)
		case "]":
			m.interval = max(m.interval/2, minInterval)
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-6, msg.Height-4)
	case TickMsg:
		if m.running {
			m.step(time.Time(msg))
			if m.err != nil {
				m.renderer.Close()
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// step ticks the renderer once. A failed tick is fatal.
func (m *Model) step(now time.Time) {
	slots, err := m.renderer.Tick(m.frame)
	if err != nil {
		m.err = err
		return
	}
	m.slots = slots

	if !m.lastTick.IsZero() {
		m.frameTimes = append(m.frameTimes, float64(now.Sub(m.lastTick))/float64(time.Millisecond))
		if len(m.frameTimes) > frameHistory {
			m.frameTimes = m.frameTimes[1:]
		}
	}
	m.lastTick = now
	m.frame = m.loop.Next(m.frame)

	if m.recording {
		m.recorder.Add(m.raster.Draw(slots))
	}
}

// restart makes the next tick frame 0, which re-seeds the ring.
func (m *Model) restart() {
	m.frame = 0
	m.frameTimes = nil
	m.lastTick = time.Time{}
}

func (m *Model) resize(w, h int) {
	w, h = max(w, 20), max(h, 8)
	// braille sub-pixels are roughly square when a cell is twice as tall as wide
	w = min(w, 2*h)
	h = min(h, w/2)

	m.width, m.height = w, h
	m.layers = make([]*Canvas, m.renderer.Size())
	for i := range m.layers {
		m.layers[i] = NewCanvas(w, h)
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder.Reset()
		m.recorder.SetInterval(m.interval)
		m.recording = true
		m.status = "recording"
		return
	}
	m.recording = false
	if err := m.saveGIF(); err != nil {
		m.status = "gif: " + err.Error()
	}
}

func (m *Model) saveGIF() error {
	if m.recorder.Len() == 0 {
		m.status = "nothing recorded"
		return nil
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return err
	}
	if err := m.recorder.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	m.status = fmt.Sprintf("saved %s (%d frames)", m.gifPath, m.recorder.Len())
	m.recorder.Reset()
	return nil
}

// Err is the tick error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Frame is the index the next tick will render.
func (m Model) Frame() int { return m.frame }

func (m Model) Running() bool { return m.running }

func (m Model) Recording() bool { return m.recording }

func (m Model) Theme() Theme { return Themes[m.theme] }

func (m Model) Interval() time.Duration { return m.interval }

// View renders the TUI interface.
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("error: %v\n", m.err)
	}

	theme := Themes[m.theme]
	opacities := m.renderer.Opacities()
	styles := theme.SlotStyles(opacities, m.style.Color)

	vp := Viewport{Bounds: m.style.Bounds, Width: m.width, Height: m.height}
	for i, l := range m.layers {
		l.Clear()
		if i < len(m.slots) {
			l.DrawCurve(m.slots[i].Curve, vp)
		}
	}
	canvasView := canvasStyle.Render(Compose(m.layers, styles))

	var s strings.Builder
	s.WriteString(GradientText("SCOPETRAIL · "+strings.ToUpper(m.source), theme.Accent, theme.Text) + "\n\n")

	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len())) + "\n\n")
	case !m.running:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	default:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	}

	stats := m.renderer.Stats()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.renderer.Frame()))
	row("FPS", fmt.Sprintf("%.1f", stats.FPS))
	row("Ring", fmt.Sprintf("%d slots, floor %.3g", m.renderer.Size(), m.floor))
	row("Interval", m.interval.String())
	row("Seeds", fmt.Sprintf("%d", stats.Seeds))
	row("Theme", theme.Name)

	s.WriteString("\nTRAIL\n")
	orders := m.renderer.DrawOrders()
	for i := len(opacities) - 1; i >= 0; i-- {
		s.WriteString(fmt.Sprintf("%2d %s %.3f z=%.2f\n", i, OpacityBar(opacities[i], 14, styles[i]), opacities[i], orders[i]))
	}

	if n := len(m.slots); n > 0 && m.slots[n-1].Curve.Len() > 1 {
		chart := asciigraph.Plot(m.slots[n-1].Curve.X, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("x(t)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.frameTimes) > 0 {
		s.WriteString(labelStyle.Render("ms/frame") + SparklineChart(m.frameTimes, 24) + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + valueStyle.Render(m.status) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Restart Q:Quit\nT:Theme  G:Record ?:Help\n[ ]:Slower/Faster"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from frame 0     ║
║  Q        - Quit                     ║
║  [        - Halve the frame rate     ║
║  ]        - Double the frame rate    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
