package analysis

import (
	"math"

	"github.com/san-kum/scopetrail/internal/scope"
)

// Shape summarizes one curve.
type Shape struct {
	Samples    int
	MinX, MaxX float64
	MinY, MaxY float64
	Centroid   scope.Vec2
	PathLength float64
	Closure    float64 // distance from the last sample back to the first
	MaxRadius  float64
}

func Describe(c scope.Curve) Shape {
	s := Shape{Samples: c.Len()}
	if c.Len() == 0 {
		return s
	}
	s.MinX, s.MaxX, s.MinY, s.MaxY = c.Bounds()

	var sum scope.Vec2
	for i := 0; i < c.Len(); i++ {
		p := c.Point(i)
		sum = sum.Add(p)
		s.MaxRadius = math.Max(s.MaxRadius, p.Length())
		if i > 0 {
			s.PathLength += p.Sub(c.Point(i - 1)).Length()
		}
	}
	s.Centroid = sum.Scale(1 / float64(c.Len()))
	s.Closure = c.Point(c.Len() - 1).Sub(c.Point(0)).Length()
	return s
}

// Motion is the mean distance a sample moves between frame n-1 and frame n,
// averaged over frames 1..frames. Sources whose sample count changes between
// frames are compared over the shorter curve.
func Motion(src scope.Source, frames int) (float64, error) {
	if frames < 1 {
		return 0, nil
	}
	prev, err := scope.Fetch(src, 0)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for n := 1; n <= frames; n++ {
		cur, err := scope.Fetch(src, n)
		if err != nil {
			return 0, err
		}
		k := min(prev.Len(), cur.Len())
		if k > 0 {
			d := 0.0
			for i := 0; i < k; i++ {
				d += cur.Point(i).Sub(prev.Point(i)).Length()
			}
			total += d / float64(k)
		}
		prev = cur
	}
	return total / float64(frames), nil
}
