package export

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/scopetrail/internal/config"
)

// Style is everything a sink needs to turn slots into pixels.
type Style struct {
	Bounds     float64
	Color      colorful.Color
	Background colorful.Color
	LineWidth  float64
	Width      int
	Height     int
}

func StyleFromConfig(cfg *config.Config) (Style, error) {
	fg, err := colorful.Hex(cfg.View.Color)
	if err != nil {
		return Style{}, fmt.Errorf("export: color %q: %w", cfg.View.Color, err)
	}
	bg, err := colorful.Hex(cfg.View.Background)
	if err != nil {
		return Style{}, fmt.Errorf("export: background %q: %w", cfg.View.Background, err)
	}
	return Style{
		Bounds:     cfg.View.Bounds,
		Color:      fg,
		Background: bg,
		LineWidth:  cfg.View.LineWidth,
		Width:      cfg.Export.Width,
		Height:     cfg.Export.Height,
	}, nil
}

// Faded returns the trace color composited over the background at opacity.
func (s Style) Faded(opacity float64) colorful.Color {
	return s.Background.BlendRgb(s.Color, opacity).Clamped()
}

// project maps scope coordinates to pixel coordinates, y up.
func (s Style) project(x, y float64) (float64, float64) {
	px := (x + s.Bounds) / (2 * s.Bounds) * float64(s.Width)
	py := (s.Bounds - y) / (2 * s.Bounds) * float64(s.Height)
	return px, py
}
