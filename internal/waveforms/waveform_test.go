package waveforms

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/scopetrail/internal/scope"
)

func TestSources_ProduceValidCurves(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			w, err := reg.Get(name, nil)
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			for _, n := range []int{-2, -1, 0, 1, 57} {
				c, err := scope.Fetch(w, n)
				if err != nil {
					t.Fatalf("frame %d: %v", n, err)
				}
				if c.Len() != int(w.Params()["samples"]) {
					t.Errorf("frame %d: expected %v samples, got %d", n, w.Params()["samples"], c.Len())
				}
			}
		})
	}
}

func TestSources_ArePure(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.Names() {
		w, _ := reg.Get(name, nil)
		a, _ := scope.Fetch(w, 13)
		b, _ := scope.Fetch(w, 13)
		if !a.Equal(b) {
			t.Errorf("%s: frame 13 differs between calls", name)
		}
	}
}

func TestCircleSine_InsideUnitCircle(t *testing.T) {
	c := NewCircleSine()
	xs, ys := c.Frame(0)
	for i := range xs {
		if math.Hypot(xs[i], ys[i]) > 1+1e-9 {
			t.Fatalf("sample %d outside unit circle: (%v, %v)", i, xs[i], ys[i])
		}
	}
}

func TestCircleSine_GatesLowerHalf(t *testing.T) {
	c := NewCircleSine()
	xs, ys := c.Frame(0)
	n := len(xs)
	// the second half-cycle is gated to zero
	for i := n/2 + 5; i < n-1; i++ {
		if ys[i] != 0 {
			t.Fatalf("sample %d not gated: y=%v", i, ys[i])
		}
	}
}

func TestSpring_FirstFrameMatchesClosedForm(t *testing.T) {
	s := NewSpring()
	xs, ys := s.Frame(0)

	// at n=0 there is no rotation, and at t=0 the fill term vanishes
	// (sin 0 = 0), leaving z = orbit + (1-orbit)·1 on the real axis
	if math.Abs(xs[0]-1) > 1e-12 || math.Abs(ys[0]) > 1e-12 {
		t.Errorf("t=0: got (%v, %v), want (1, 0)", xs[0], ys[0])
	}

	// with no y rotation the fill's x-axis is multiplied by sin 0
	for i := range xs {
		if math.Abs(xs[i]) > 1+1e-9 || math.Abs(ys[i]) > 1+1e-9 {
			t.Fatalf("sample %d out of range: (%v, %v)", i, xs[i], ys[i])
		}
	}
}

func TestSpring_AltDiffers(t *testing.T) {
	a, _ := scope.Fetch(NewSpring(), 10)
	b, _ := scope.Fetch(NewSpringAlt(), 10)
	if a.Equal(b) {
		t.Error("expected the alternate modulation to change the figure")
	}
	if NewSpringAlt().Name() != "spring-alt" {
		t.Error("unexpected alt name")
	}
}

func TestSpring_OrbitRotatesWithFrames(t *testing.T) {
	s := NewSpring()
	// after 50 frames both rotations are a quarter turn: circ.x is scaled
	// by cos(π/2) and the fill vanishes at t=0, leaving only the orbit
	// offset, turned onto the y-axis
	xs, ys := s.Frame(50)
	want := scope.Vec2{X: 0.4}.Rotate(math.Pi / 2)
	if math.Abs(xs[0]-want.X) > 1e-9 || math.Abs(ys[0]-want.Y) > 1e-9 {
		t.Errorf("got (%v, %v), want (%v, %v)", xs[0], ys[0], want.X, want.Y)
	}
}

func TestRose_Bounded(t *testing.T) {
	r := NewRose()
	for _, n := range []int{0, 25, 300} {
		xs, ys := r.Frame(n)
		for i := range xs {
			if math.Hypot(xs[i], ys[i]) > 1+1e-9 {
				t.Fatalf("frame %d sample %d outside unit circle", n, i)
			}
		}
	}
}

func TestLissajous_Drift(t *testing.T) {
	l := NewLissajous()
	xs0, ys0 := l.Frame(0)
	xs1, ys1 := l.Frame(1)

	for i := range xs0 {
		if xs0[i] != xs1[i] {
			t.Fatalf("x should not drift: sample %d", i)
		}
	}
	if math.Abs(ys0[0]) > 1e-12 {
		t.Errorf("y at t=0, frame 0 should be sin(0), got %v", ys0[0])
	}
	if math.Abs(ys1[0]-math.Sin(0.01)) > 1e-9 {
		t.Errorf("y at t=0, frame 1 = %v, want %v", ys1[0], math.Sin(0.01))
	}
}

func TestLissajous_SquareGate(t *testing.T) {
	l := NewLissajous()
	if err := l.SetParam("gate", float64(GateSquare)); err != nil {
		t.Fatal(err)
	}
	xs, ys := l.Frame(0)
	n := len(xs)
	for i := n/2 + 5; i < n-1; i++ {
		if xs[i] != 0 || ys[i] != 0 {
			t.Fatalf("sample %d not gated", i)
		}
	}
}

func TestSetParam_Errors(t *testing.T) {
	tests := []struct {
		name  string
		w     Waveform
		param string
		value float64
		err   error
	}{
		{"unknown", NewRose(), "nope", 1, ErrUnknownParam},
		{"too few samples", NewRose(), "samples", 1, ErrParamBounds},
		{"fractional samples", NewSpring(), "samples", 10.5, ErrParamBounds},
		{"bad gate", NewLissajous(), "gate", 7, ErrParamBounds},
		{"bad duty", NewLissajous(), "duty", 1.5, ErrParamBounds},
		{"bad alt_mod", NewSpring(), "alt_mod", 0.5, ErrParamBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.w.SetParam(tt.param, tt.value); !errors.Is(err, tt.err) {
				t.Errorf("SetParam(%s, %v) err = %v, want %v", tt.param, tt.value, err, tt.err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Get("nonexistent", nil); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("expected ErrUnknownSource, got %v", err)
	}

	w, err := reg.Get("rose", map[string]float64{"samples": 64, "fm": 0.02})
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if p := w.Params(); p["samples"] != 64 || p["fm"] != 0.02 {
		t.Errorf("params not applied: %v", p)
	}

	d, err := reg.Defaults("spring")
	if err != nil {
		t.Fatal(err)
	}
	if d["fill"] != 20 || d["samples"] != 2000 {
		t.Errorf("unexpected spring defaults: %v", d)
	}
}
