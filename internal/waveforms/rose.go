package waveforms

import (
	"math"

	"github.com/san-kum/scopetrail/internal/scope"
)

// Rose draws a rose curve whose petals breathe in and out. The fundamental
// and harmonic are detuned slightly so the figure precesses between frames.
type Rose struct {
	grid
	f0       float64
	harmonic float64
	bend     float64
	fm       float64 // breathing rate
}

func NewRose() *Rose {
	return &Rose{
		grid:     newGrid(300),
		f0:       1.008,
		harmonic: 3,
		bend:     1.005,
		fm:       0.01,
	}
}

func (r *Rose) Name() string { return "rose" }

func (r *Rose) Frame(n int) ([]float64, []float64) {
	f := r.harmonic * r.f0 * r.bend
	return r.sweep(n, func(th float64) scope.Vec2 {
		radius := 0.5 + 0.5*math.Sin(r.fm*th)
		petal := scope.Vec2{X: radius}.Add(scope.Unit(f * th).Scale(1 - radius))
		return scope.Unit(r.f0 * th).Mul(petal)
	})
}

func (r *Rose) Params() map[string]float64 {
	return map[string]float64{
		"samples":  float64(r.samples()),
		"f0":       r.f0,
		"harmonic": r.harmonic,
		"bend":     r.bend,
		"fm":       r.fm,
	}
}

func (r *Rose) SetParam(name string, value float64) error {
	switch name {
	case "samples":
		return r.resize(value)
	case "f0":
		r.f0 = value
	case "harmonic":
		r.harmonic = value
	case "bend":
		r.bend = value
	case "fm":
		r.fm = value
	default:
		return unknownParam(r.Name(), name)
	}
	return nil
}
