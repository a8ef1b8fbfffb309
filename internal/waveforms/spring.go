package waveforms

import (
	"fmt"

	"github.com/san-kum/scopetrail/internal/scope"
)

// Spring draws a spherical spring: a fast "fill" rotation whose radius
// follows the imaginary part of a slow circular envelope. A square wave cuts
// the retrace while the envelope is in its negative half-cycle, and two slow
// rotations applied in whole-frame steps tumble the figure about the y-axis
// and orbit it about the z-axis. Stepping per frame keeps each frame's
// figure closed.
//
// With altMod set, the fill's x-axis is scaled by the cosine of the y
// rotation instead of the sine. That variant does not hold the spherical
// shape and is kept as a separate preset.
type Spring struct {
	grid
	f0       float64 // fundamental
	fill     float64 // fill frequency as a multiple of f0
	fy       float64 // y-axis rotation, cycles per frame
	fz       float64 // z-axis rotation, cycles per frame
	sqOffset float64
	orbit    float64
	altMod   bool
}

func NewSpring() *Spring {
	return &Spring{
		grid:     newGrid(2000),
		f0:       1.0,
		fill:     20,
		fy:       0.005,
		fz:       0.005,
		sqOffset: 0.5,
		orbit:    0.4,
	}
}

// NewSpringAlt returns the spring with the alternate fill modulation.
func NewSpringAlt() *Spring {
	s := NewSpring()
	s.altMod = true
	return s
}

func (s *Spring) Name() string {
	if s.altMod {
		return "spring-alt"
	}
	return "spring"
}

func (s *Spring) Frame(n int) ([]float64, []float64) {
	yrot := scope.Unit(twoPi * s.fy * float64(n))
	zrot := twoPi * s.fz * float64(n)
	f := s.fill * s.f0

	return s.sweep(n, func(th float64) scope.Vec2 {
		circ := scope.Unit(s.f0 * th)
		circ.X *= yrot.X

		fill := scope.Unit(f * th).Scale(circ.Y)
		if s.altMod {
			fill.X *= yrot.X
		} else {
			fill.X *= yrot.Y
		}

		sq := s.sqOffset + (1-s.sqOffset)*Square(s.f0*th, 0.5)
		z := fill.Scale(sq)
		z.X += circ.X

		w := scope.Vec2{X: s.orbit + (1-s.orbit)*z.X, Y: (1 - s.orbit) * z.Y}
		return w.Rotate(zrot)
	})
}

func (s *Spring) Params() map[string]float64 {
	alt := 0.0
	if s.altMod {
		alt = 1
	}
	return map[string]float64{
		"samples":   float64(s.samples()),
		"f0":        s.f0,
		"fill":      s.fill,
		"fy":        s.fy,
		"fz":        s.fz,
		"sq_offset": s.sqOffset,
		"orbit":     s.orbit,
		"alt_mod":   alt,
	}
}

func (s *Spring) SetParam(name string, value float64) error {
	switch name {
	case "samples":
		return s.resize(value)
	case "f0":
		s.f0 = value
	case "fill":
		s.fill = value
	case "fy":
		s.fy = value
	case "fz":
		s.fz = value
	case "sq_offset":
		s.sqOffset = value
	case "orbit":
		s.orbit = value
	case "alt_mod":
		if value != 0 && value != 1 {
			return fmt.Errorf("%w: alt_mod=%v (want 0 or 1)", ErrParamBounds, value)
		}
		s.altMod = value == 1
	default:
		return unknownParam(s.Name(), name)
	}
	return nil
}
