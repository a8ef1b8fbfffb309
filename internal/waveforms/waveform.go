package waveforms

import (
	"errors"
	"fmt"

	"github.com/san-kum/scopetrail/internal/scope"
)

var (
	// ErrUnknownSource indicates a registry lookup for an unregistered name.
	ErrUnknownSource = errors.New("waveforms: unknown source")

	// ErrUnknownParam indicates a parameter the source does not expose.
	ErrUnknownParam = errors.New("waveforms: unknown parameter")

	// ErrParamBounds indicates a parameter value outside its valid range.
	ErrParamBounds = errors.New("waveforms: parameter out of valid bounds")
)

// MinSamples is the smallest grid that still draws a line segment.
const MinSamples = 2

// Waveform is a named, tunable frame source.
type Waveform interface {
	scope.Source
	Name() string
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// grid is the per-frame sample sweep shared by all sources: samples points
// over one period, endpoints included.
type grid struct {
	t []float64
}

func newGrid(samples int) grid {
	return grid{t: Linspace(0, twoPi, samples)}
}

func (g *grid) samples() int { return len(g.t) }

func (g *grid) resize(value float64) error {
	n := int(value)
	if float64(n) != value || n < MinSamples {
		return fmt.Errorf("%w: samples=%v", ErrParamBounds, value)
	}
	g.t = Linspace(0, twoPi, n)
	return nil
}

// sweep evaluates fn at th = t + 2πn for every grid point.
func (g *grid) sweep(n int, fn func(th float64) scope.Vec2) ([]float64, []float64) {
	xs := make([]float64, len(g.t))
	ys := make([]float64, len(g.t))
	offset := twoPi * float64(n)
	for i, t := range g.t {
		p := fn(t + offset)
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func unknownParam(source, name string) error {
	return fmt.Errorf("%w: %s has no %q", ErrUnknownParam, source, name)
}
