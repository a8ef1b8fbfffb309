package waveforms

import (
	"fmt"
	"math"
)

// Gate selects the envelope that suppresses the retrace.
type Gate int

const (
	GateNone Gate = iota
	GateSquare
	GateSawtooth
)

// Lissajous draws x = sin(a·t), y = sin(b·t + phase + n·drift). The phase
// drifts by a fixed step each frame, so the figure appears to turn.
type Lissajous struct {
	grid
	a, b  float64
	phase float64
	drift float64
	gate  Gate
	duty  float64
}

func NewLissajous() *Lissajous {
	return &Lissajous{
		grid:  newGrid(1000),
		a:     3,
		b:     2,
		drift: 0.01,
		duty:  0.5,
	}
}

func (l *Lissajous) Name() string { return "lissajous" }

func (l *Lissajous) Frame(n int) ([]float64, []float64) {
	// x is identical every frame; only y's phase moves
	shift := l.phase + float64(n)*l.drift
	xs := make([]float64, len(l.t))
	ys := make([]float64, len(l.t))
	for i, t := range l.t {
		g := l.envelope(t)
		xs[i] = g * math.Sin(l.a*t)
		ys[i] = g * math.Sin(l.b*t+shift)
	}
	return xs, ys
}

func (l *Lissajous) envelope(t float64) float64 {
	switch l.gate {
	case GateSquare:
		return 0.5 * (1 + Square(t, l.duty))
	case GateSawtooth:
		return 0.5 * (1 + Sawtooth(t, l.duty))
	default:
		return 1
	}
}

func (l *Lissajous) Params() map[string]float64 {
	return map[string]float64{
		"samples": float64(l.samples()),
		"a":       l.a,
		"b":       l.b,
		"phase":   l.phase,
		"drift":   l.drift,
		"gate":    float64(l.gate),
		"duty":    l.duty,
	}
}

func (l *Lissajous) SetParam(name string, value float64) error {
	switch name {
	case "samples":
		return l.resize(value)
	case "a":
		l.a = value
	case "b":
		l.b = value
	case "phase":
		l.phase = value
	case "drift":
		l.drift = value
	case "gate":
		g := Gate(value)
		if float64(g) != value || g < GateNone || g > GateSawtooth {
			return fmt.Errorf("%w: gate=%v (want 0, 1 or 2)", ErrParamBounds, value)
		}
		l.gate = g
	case "duty":
		if value < 0 || value > 1 {
			return fmt.Errorf("%w: duty=%v", ErrParamBounds, value)
		}
		l.duty = value
	default:
		return unknownParam(l.Name(), name)
	}
	return nil
}
