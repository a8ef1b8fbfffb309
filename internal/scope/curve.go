package scope

import "math"

// Curve is one frame's sampled trace. X and Y always have equal length once
// validated.
type Curve struct {
	X []float64
	Y []float64
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.X) }

func (c Curve) Clone() Curve {
	x := make([]float64, len(c.X))
	y := make([]float64, len(c.Y))
	copy(x, c.X)
	copy(y, c.Y)
	return Curve{X: x, Y: y}
}

// Validate reports a length mismatch or the first non-finite sample. The
// returned index is -1 unless ErrNonFinite is returned.
func (c Curve) Validate() (int, error) {
	if len(c.X) != len(c.Y) {
		return -1, ErrLengthMismatch
	}
	for i := range c.X {
		if !finite(c.X[i]) || !finite(c.Y[i]) {
			return i, ErrNonFinite
		}
	}
	return -1, nil
}

// Point returns sample i as a vector.
func (c Curve) Point(i int) Vec2 { return Vec2{c.X[i], c.Y[i]} }

// Bounds returns the extent of the curve. An empty curve yields zeros.
func (c Curve) Bounds() (minX, maxX, minY, maxY float64) {
	if len(c.X) == 0 {
		return
	}
	minX, maxX = c.X[0], c.X[0]
	minY, maxY = c.Y[0], c.Y[0]
	for i := range c.X {
		minX = math.Min(minX, c.X[i])
		maxX = math.Max(maxX, c.X[i])
		minY = math.Min(minY, c.Y[i])
		maxY = math.Max(maxY, c.Y[i])
	}
	return
}

// Equal reports whether both curves hold identical samples.
func (c Curve) Equal(o Curve) bool {
	if len(c.X) != len(o.X) || len(c.Y) != len(o.Y) {
		return false
	}
	for i := range c.X {
		if c.X[i] != o.X[i] || c.Y[i] != o.Y[i] {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
