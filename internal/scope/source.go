package scope

// Source produces the curve for a frame index. Negative indices are valid and
// are used to pre-fill the decay ring. Implementations must be pure: the same
// index always yields the same samples.
type Source interface {
	Frame(n int) (xs, ys []float64)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(n int) (xs, ys []float64)

func (f SourceFunc) Frame(n int) ([]float64, []float64) { return f(n) }

// Fetch evaluates src at frame n and validates the result.
func Fetch(src Source, n int) (Curve, error) {
	if src == nil {
		return Curve{}, &FrameError{Frame: n, Index: -1, Wrapped: ErrNilSource}
	}
	xs, ys := src.Frame(n)
	c := Curve{X: xs, Y: ys}
	if idx, err := c.Validate(); err != nil {
		return Curve{}, &FrameError{Frame: n, Index: idx, Wrapped: err}
	}
	return c, nil
}
