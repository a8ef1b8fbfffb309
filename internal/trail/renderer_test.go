package trail_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scopetrail/internal/scope"
	"github.com/san-kum/scopetrail/internal/trail"
)

// circle returns a one-sample source at (cos n, sin n).
func circle() scope.Source {
	return scope.SourceFunc(func(n int) ([]float64, []float64) {
		return []float64{math.Cos(float64(n))}, []float64{math.Sin(float64(n))}
	})
}

// ramp returns a source whose samples encode the frame index.
func ramp(calls *[]int) scope.Source {
	return scope.SourceFunc(func(n int) ([]float64, []float64) {
		if calls != nil {
			*calls = append(*calls, n)
		}
		return []float64{float64(n), float64(n) + 0.5}, []float64{-float64(n), 0}
	})
}

func frameOf(s trail.Slot) int { return int(s.Curve.X[0]) }

var _ = Describe("Renderer", func() {
	Describe("New", func() {
		It("rejects non-positive ring sizes", func() {
			for _, n := range []int{0, -1, -5} {
				_, err := trail.New(circle(), trail.Options{Size: n})
				Expect(err).To(MatchError(trail.ErrInvalidRingSize))
			}
		})

		It("rejects decay floors outside (0, 1)", func() {
			for _, f := range []float64{-0.1, 1, 1.5, math.NaN(), math.Inf(1)} {
				_, err := trail.New(circle(), trail.Options{Size: 3, DecayFloor: f})
				Expect(err).To(MatchError(trail.ErrInvalidDecayFloor), "floor %v", f)
			}
		})

		It("rejects a nil source", func() {
			_, err := trail.New(nil, trail.DefaultOptions())
			Expect(err).To(MatchError(scope.ErrNilSource))
		})

		It("accepts the default options", func() {
			r, err := trail.New(circle(), trail.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Size()).To(Equal(trail.DefaultSize))
			Expect(r.Opacities()[0]).To(BeNumerically("~", trail.DefaultDecayFloor, 1e-12))
		})
	})

	Describe("opacity assignment", func() {
		for _, n := range []int{2, 3, 4, 7, 16} {
			n := n
			It("is strictly increasing from the floor to 1.0", func() {
				r, err := trail.New(circle(), trail.Options{Size: n, DecayFloor: 0.1})
				Expect(err).NotTo(HaveOccurred())

				alphas := r.Opacities()
				Expect(alphas).To(HaveLen(n))
				Expect(alphas[0]).To(BeNumerically("~", 0.1, 1e-12))
				Expect(alphas[n-1]).To(Equal(1.0))
				for i := 1; i < n; i++ {
					Expect(alphas[i]).To(BeNumerically(">", alphas[i-1]))
				}

				// geometric: constant ratio between neighbours
				ratio := alphas[1] / alphas[0]
				for i := 2; i < n; i++ {
					Expect(alphas[i] / alphas[i-1]).To(BeNumerically("~", ratio, 1e-9))
				}
			})
		}

		It("stacks newer slots above older ones", func() {
			r, _ := trail.New(circle(), trail.Options{Size: 5, DecayFloor: 0.1})
			z := r.DrawOrders()
			for i := 1; i < len(z); i++ {
				Expect(z[i]).To(BeNumerically(">", z[i-1]))
			}
			Expect(z[0]).To(Equal(2.0))
		})

		It("gives a single slot full opacity", func() {
			r, err := trail.New(circle(), trail.Options{Size: 1, DecayFloor: 0.1})
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Opacities()).To(Equal([]float64{1.0}))
		})
	})

	Describe("Seed", func() {
		It("fills slot i with frame i-N+1", func() {
			var calls []int
			r, _ := trail.New(ramp(&calls), trail.Options{Size: 4, DecayFloor: 0.1})

			slots, err := r.Seed()
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal([]int{-3, -2, -1, 0}))
			for i, s := range slots {
				Expect(s.Rank).To(Equal(i))
				Expect(frameOf(s)).To(Equal(i - 3))
			}
		})
	})

	Describe("Tick", func() {
		var r *trail.Renderer

		BeforeEach(func() {
			var err error
			r, err = trail.New(ramp(nil), trail.DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			_, err = r.Tick(0)
			Expect(err).NotTo(HaveOccurred())
		})

		It("stores the requested frame in the newest slot", func() {
			for k := 1; k <= 5; k++ {
				slots, err := r.Tick(k)
				Expect(err).NotTo(HaveOccurred())
				Expect(slots).To(HaveLen(3))
				Expect(frameOf(r.Newest())).To(Equal(k))
				Expect(r.Frame()).To(Equal(k))
			}
		})

		It("shifts older frames toward lower opacity", func() {
			_, _ = r.Tick(1)
			_, _ = r.Tick(2)

			slots := r.Slots()
			Expect(frameOf(slots[0])).To(Equal(0))
			Expect(frameOf(slots[1])).To(Equal(1))
			Expect(frameOf(slots[2])).To(Equal(2))
		})

		It("keeps the opacity set unchanged across rotations", func() {
			before := r.Opacities()
			for k := 1; k < 10; k++ {
				slots, _ := r.Tick(k)
				got := make([]float64, len(slots))
				for i, s := range slots {
					got[i] = s.Opacity
				}
				Expect(got).To(ConsistOf(before[0], before[1], before[2]))
			}
		})

		It("re-seeds deterministically on frame 0", func() {
			_, _ = r.Tick(1)
			_, _ = r.Tick(2)

			first, err := r.Tick(0)
			Expect(err).NotTo(HaveOccurred())
			a := make([]scope.Curve, len(first))
			for i, s := range first {
				a[i] = s.Curve.Clone()
			}

			second, err := r.Tick(0)
			Expect(err).NotTo(HaveOccurred())
			for i, s := range second {
				Expect(s.Curve.Equal(a[i])).To(BeTrue())
			}
			Expect(frameOf(second[2])).To(Equal(0))
		})

		It("seeds implicitly if the first tick is not frame 0", func() {
			var calls []int
			fresh, _ := trail.New(ramp(&calls), trail.DefaultOptions())

			_, err := fresh.Tick(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal([]int{-2, -1, 0, 4}))
			Expect(frameOf(fresh.Newest())).To(Equal(4))
		})
	})

	Describe("the circle scenario", func() {
		It("walks around the unit circle", func() {
			r, _ := trail.New(circle(), trail.DefaultOptions())
			_, _ = r.Tick(0)

			_, _ = r.Tick(1)
			n := r.Newest()
			Expect(n.Curve.X[0]).To(Equal(math.Cos(1)))
			Expect(n.Curve.Y[0]).To(Equal(math.Sin(1)))

			_, _ = r.Tick(2)
			n = r.Newest()
			Expect(n.Curve.X[0]).To(Equal(math.Cos(2)))
			Expect(n.Curve.Y[0]).To(Equal(math.Sin(2)))

			mid := r.Slot(1)
			Expect(mid.Curve.X[0]).To(Equal(math.Cos(1)))
			Expect(mid.Opacity).To(BeNumerically("~", math.Sqrt(0.1), 1e-12))
		})
	})

	Describe("ring size 1", func() {
		It("only ever shows the latest frame", func() {
			r, _ := trail.New(ramp(nil), trail.Options{Size: 1, DecayFloor: 0.1})
			slots, _ := r.Tick(0)
			Expect(slots).To(HaveLen(1))
			Expect(frameOf(slots[0])).To(Equal(0))

			for k := 1; k < 4; k++ {
				slots, _ = r.Tick(k)
				Expect(slots).To(HaveLen(1))
				Expect(frameOf(slots[0])).To(Equal(k))
				Expect(slots[0].Opacity).To(Equal(1.0))
			}
		})
	})

	Describe("invalid frames", func() {
		It("fails on mismatched lengths without touching the ring", func() {
			src := scope.SourceFunc(func(n int) ([]float64, []float64) {
				if n == 2 {
					return []float64{1, 2, 3}, []float64{1, 2}
				}
				return []float64{float64(n)}, []float64{0}
			})
			r, _ := trail.New(src, trail.DefaultOptions())
			_, _ = r.Tick(0)
			_, _ = r.Tick(1)

			_, err := r.Tick(2)
			Expect(err).To(MatchError(scope.ErrLengthMismatch))

			var fe *scope.FrameError
			Expect(err).To(BeAssignableToTypeOf(fe))
			Expect(frameOf(r.Newest())).To(Equal(1))
		})

		It("fails on non-finite samples", func() {
			src := scope.SourceFunc(func(n int) ([]float64, []float64) {
				return []float64{math.NaN()}, []float64{0}
			})
			r, _ := trail.New(src, trail.Options{Size: 2, DecayFloor: 0.5})
			_, err := r.Tick(0)
			Expect(err).To(MatchError(scope.ErrNonFinite))
		})
	})

	Describe("Close", func() {
		It("rejects further ticks", func() {
			r, _ := trail.New(circle(), trail.DefaultOptions())
			_, _ = r.Tick(0)
			r.Close()
			_, err := r.Tick(1)
			Expect(err).To(MatchError(trail.ErrClosed))
		})
	})

	Describe("Stats", func() {
		It("reports frames per second from the injected clock", func() {
			now := time.Unix(0, 0)
			clock := func() time.Time { return now }
			opts := trail.DefaultOptions()
			opts.Clock = clock
			r, _ := trail.New(circle(), opts)

			_, _ = r.Tick(0)
			for k := 1; k <= 20; k++ {
				now = now.Add(50 * time.Millisecond)
				_, _ = r.Tick(k)
			}

			s := r.Stats()
			Expect(s.Frames).To(Equal(20))
			Expect(s.Elapsed).To(Equal(time.Second))
			Expect(s.FPS).To(BeNumerically("~", 20, 1e-9))
			Expect(s.Seeds).To(Equal(1))
		})
	})
})
