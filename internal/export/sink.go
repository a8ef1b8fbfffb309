package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"

	"github.com/san-kum/scopetrail/internal/scope"
	"github.com/san-kum/scopetrail/internal/trail"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// Formats lists the names accepted by NewSink.
var Formats = []string{"gif", "png", "svg", "csv", "json", "wav"}

// Sink consumes one ring state per frame. Close writes the output; Abort
// discards whatever was collected and leaves nothing on disk.
type Sink interface {
	Add(frame int, slots []trail.Slot) error
	Close() error
	Abort() error
}

// Run ticks r through frames 0..frames-1 and feeds every state to sink. On
// success the sink is closed; on any failure it is aborted.
func Run(r *trail.Renderer, frames int, sink Sink) (err error) {
	defer func() {
		if err != nil {
			if aerr := sink.Abort(); aerr != nil {
				slog.Warn("export: abort failed", "err", aerr)
			}
			return
		}
		err = sink.Close()
	}()

	start := time.Now()
	for f := 0; f < frames; f++ {
		slots, err := r.Tick(f)
		if err != nil {
			return err
		}
		if err := sink.Add(f, slots); err != nil {
			return fmt.Errorf("export: frame %d: %w", f, err)
		}
	}
	slog.Debug("export: frames rendered", "frames", frames, "elapsed", time.Since(start))
	return nil
}

// Options carries what NewSink needs beyond the style.
type Options struct {
	Path       string
	Interval   time.Duration
	SampleRate int
}

// NewSink builds the sink for format. For png, Path is a directory; every
// other format writes a single file.
func NewSink(format string, style Style, opts Options) (Sink, error) {
	switch format {
	case "gif":
		return &gifSink{raster: NewRasterizer(style), rec: NewGIFRecorder(style, opts.Interval), path: opts.Path}, nil
	case "png":
		if err := os.MkdirAll(opts.Path, 0755); err != nil {
			return nil, err
		}
		return &pngSink{raster: NewRasterizer(style), dir: opts.Path}, nil
	case "svg":
		return &lastFrameSink{path: opts.Path, write: func(w io.Writer, _ int, slots []trail.Slot) error {
			_, err := io.WriteString(w, SlotsToSVG(slots, style))
			return err
		}}, nil
	case "csv":
		return &lastFrameSink{path: opts.Path, write: WriteCSV}, nil
	case "json":
		return &lastFrameSink{path: opts.Path, write: WriteJSON}, nil
	case "wav":
		return &wavSink{path: opts.Path, bounds: style.Bounds, rate: opts.SampleRate}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownFormat, format, Formats)
	}
}

type gifSink struct {
	raster *Rasterizer
	rec    *GIFRecorder
	path   string
}

func (s *gifSink) Add(_ int, slots []trail.Slot) error {
	s.rec.Add(s.raster.Draw(slots))
	return nil
}

func (s *gifSink) Close() error {
	if err := writeFile(s.path, s.rec.Encode); err != nil {
		return err
	}
	slog.Info("export: gif written", "path", s.path, "frames", s.rec.Len())
	return nil
}

type pngSink struct {
	raster  *Rasterizer
	dir     string
	written []string
}

func (s *pngSink) Add(frame int, slots []trail.Slot) error {
	path := filepath.Join(s.dir, fmt.Sprintf("frame-%04d.png", frame))
	s.written = append(s.written, path)
	return gg.SavePNG(path, s.raster.Draw(slots))
}

// Abort removes the frames written so far. The directory itself is kept.
func (s *pngSink) Abort() error {
	var errs []error
	for _, path := range s.written {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	s.written = nil
	return errors.Join(errs...)
}

func (s *pngSink) Close() error {
	slog.Info("export: png sequence written", "dir", s.dir, "frames", len(s.written))
	return nil
}

// lastFrameSink keeps only the final ring state and writes it on Close.
type lastFrameSink struct {
	path  string
	write func(w io.Writer, frame int, slots []trail.Slot) error
	frame int
	slots []trail.Slot
}

func (s *lastFrameSink) Add(frame int, slots []trail.Slot) error {
	s.frame, s.slots = frame, slots
	return nil
}

func (s *lastFrameSink) Close() error {
	if s.slots == nil {
		return nil
	}
	err := writeFile(s.path, func(w io.Writer) error {
		return s.write(w, s.frame, s.slots)
	})
	if err != nil {
		return err
	}
	slog.Info("export: snapshot written", "path", s.path, "frame", s.frame)
	return nil
}

// wavSink collects the newest curve of every frame.
type wavSink struct {
	path   string
	bounds float64
	rate   int
	curves []scope.Curve
}

func (s *wavSink) Add(_ int, slots []trail.Slot) error {
	if len(slots) == 0 {
		return nil
	}
	s.curves = append(s.curves, slots[len(slots)-1].Curve)
	return nil
}

func (s *wavSink) Close() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := EncodeWAV(f, s.curves, s.bounds, s.rate); err != nil {
		f.Close()
		os.Remove(s.path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("export: wav written", "path", s.path, "frames", len(s.curves), "sample_rate", s.rate)
	return nil
}

func (s *wavSink) Abort() error {
	s.curves = nil
	return nil
}

func (s *gifSink) Abort() error {
	s.rec.Reset()
	return nil
}

func (s *lastFrameSink) Abort() error {
	s.slots = nil
	return nil
}

// writeFile creates path and fills it with write. A failed write removes the
// partial file; the close error is returned when the write succeeded.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
