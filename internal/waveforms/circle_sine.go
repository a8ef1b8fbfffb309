package waveforms

import (
	"math"

	"github.com/san-kum/scopetrail/internal/scope"
)

// CircleSine draws a sine wave whose envelope is the unit circle, with the
// lower half-cycle gated off by a square wave.
//
//	x = cos(th)
//	y = sin(th) · sin(fill·th) · amp · (1 + square(th))
type CircleSine struct {
	grid
	fill float64
	amp  float64
}

func NewCircleSine() *CircleSine {
	return &CircleSine{
		grid: newGrid(1000),
		fill: 20,
		amp:  0.5,
	}
}

func (c *CircleSine) Name() string { return "circle-sine" }

func (c *CircleSine) Frame(n int) ([]float64, []float64) {
	return c.sweep(n, func(th float64) scope.Vec2 {
		return scope.Vec2{
			X: math.Cos(th),
			Y: math.Sin(th) * math.Sin(c.fill*th) * c.amp * (1 + Square(th, 0.5)),
		}
	})
}

func (c *CircleSine) Params() map[string]float64 {
	return map[string]float64{
		"samples": float64(c.samples()),
		"fill":    c.fill,
		"amp":     c.amp,
	}
}

func (c *CircleSine) SetParam(name string, value float64) error {
	switch name {
	case "samples":
		return c.resize(value)
	case "fill":
		c.fill = value
	case "amp":
		c.amp = value
	default:
		return unknownParam(c.Name(), name)
	}
	return nil
}
