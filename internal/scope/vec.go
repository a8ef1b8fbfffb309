package scope

import "math"

// Vec2 is a point in the scope plane. It stands in for a complex number:
// Mul is the complex product, so multiplying by Unit(theta) rotates.
type Vec2 struct {
	X, Y float64
}

// Unit returns the unit vector at angle theta, i.e. (cos θ, sin θ).
func Unit(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{c, s}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Length() float64      { return math.Hypot(v.X, v.Y) }

// Mul multiplies v by o as complex numbers.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X*o.X - v.Y*o.Y, v.X*o.Y + v.Y*o.X}
}

// Rotate rotates v counter-clockwise by theta radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	return v.Mul(Unit(theta))
}
