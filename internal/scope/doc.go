// Package scope provides the core primitives shared by every part of the
// vector-scope pipeline.
//
//   - [Curve]: one frame of sampled (x, y) points
//   - [Source]: maps a frame index to a Curve
//   - [Vec2]: 2D vector with the rotation helpers used by waveform math
//
// # Example
//
//	src := scope.SourceFunc(func(n int) ([]float64, []float64) {
//		return []float64{math.Cos(float64(n))}, []float64{math.Sin(float64(n))}
//	})
//	c, err := scope.Fetch(src, 1)
package scope
