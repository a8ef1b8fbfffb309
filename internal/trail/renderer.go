package trail

import (
	"log/slog"
	"time"

	"github.com/san-kum/scopetrail/internal/scope"
)

// Slot is one drawable trace in the ring. Rank is the slot position, 0 being
// the oldest.
type Slot struct {
	Rank      int
	Opacity   float64
	DrawOrder float64
	Curve     scope.Curve
}

// Options configures a Renderer.
type Options struct {
	Size       int
	DecayFloor float64
	// Clock is used for rate reporting only. Nil means time.Now.
	Clock func() time.Time
}

func DefaultOptions() Options {
	return Options{Size: DefaultSize, DecayFloor: DefaultDecayFloor}
}

// Renderer holds the decay ring and the diagnostic frame counters.
type Renderer struct {
	src       scope.Source
	size      int
	alphas    []float64
	zorders   []float64
	curves    []scope.Curve
	head      int // index into curves of the oldest slot
	seeded    bool
	closed    bool
	clock     func() time.Time
	start     time.Time
	count     int
	lastFrame int
	seeds     int
}

// New allocates the ring and computes its fixed opacity and draw order
// assignment. The ring is empty until Seed or Tick(0) is called.
func New(src scope.Source, opts Options) (*Renderer, error) {
	if src == nil {
		return nil, scope.ErrNilSource
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	alphas, err := Opacities(opts.Size, opts.DecayFloor)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		src:     src,
		size:    opts.Size,
		alphas:  alphas,
		zorders: DrawOrders(opts.Size),
		curves:  make([]scope.Curve, opts.Size),
		clock:   opts.Clock,
	}, nil
}

func (r *Renderer) Size() int { return r.size }

// Opacities returns a copy of the per-position alphas, oldest first.
func (r *Renderer) Opacities() []float64 {
	out := make([]float64, len(r.alphas))
	copy(out, r.alphas)
	return out
}

// DrawOrders returns a copy of the per-position draw orders, oldest first.
func (r *Renderer) DrawOrders() []float64 {
	out := make([]float64, len(r.zorders))
	copy(out, r.zorders)
	return out
}

// Seed fills every slot from negative time: slot i holds frame i-N+1. It
// also restarts the rate counters.
func (r *Renderer) Seed() ([]Slot, error) {
	if r.closed {
		return nil, ErrClosed
	}
	fresh := make([]scope.Curve, r.size)
	for i := 0; i < r.size; i++ {
		c, err := scope.Fetch(r.src, i-r.size+1)
		if err != nil {
			return nil, err
		}
		fresh[i] = c
	}
	r.curves = fresh
	r.head = 0
	r.seeded = true
	r.lastFrame = 0
	r.seeds++
	r.start = r.clock()
	r.count = 0
	return r.Slots(), nil
}

// Tick advances the animation to frame. Frame 0 re-seeds; any other frame
// rotates the ring and stores the new curve in the newest slot. The returned
// slots are every position whose content changed, in draw order.
//
// An invalid curve from the source leaves the ring untouched and returns an
// error wrapping scope.ErrLengthMismatch or scope.ErrNonFinite.
func (r *Renderer) Tick(frame int) ([]Slot, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if frame == 0 || !r.seeded {
		slots, err := r.Seed()
		if err != nil || frame == 0 {
			return slots, err
		}
	}

	c, err := scope.Fetch(r.src, frame)
	if err != nil {
		return nil, err
	}

	r.head = (r.head + 1) % r.size
	r.curves[r.pos(r.size-1)] = c
	r.lastFrame = frame
	r.count++

	if r.count%100 == 0 {
		slog.Debug("trail: rate", "frames", r.count, "fps", r.Stats().FPS)
	}
	return r.Slots(), nil
}

// Slots returns every slot in draw order, oldest first.
func (r *Renderer) Slots() []Slot {
	slots := make([]Slot, r.size)
	for i := range slots {
		slots[i] = r.Slot(i)
	}
	return slots
}

// Slot returns the slot at ring position i (0 = oldest). The curve holds the
// slices returned by the source; they are not copied.
func (r *Renderer) Slot(i int) Slot {
	return Slot{
		Rank:      i,
		Opacity:   r.alphas[i],
		DrawOrder: r.zorders[i],
		Curve:     r.curves[r.pos(i)],
	}
}

// Newest returns the full-opacity slot.
func (r *Renderer) Newest() Slot { return r.Slot(r.size - 1) }

// Frame returns the index of the frame held by the newest slot.
func (r *Renderer) Frame() int { return r.lastFrame }

// Close releases the ring. Further ticks fail with ErrClosed.
func (r *Renderer) Close() {
	r.closed = true
	r.curves = make([]scope.Curve, r.size)
	r.seeded = false
}

func (r *Renderer) pos(i int) int { return (r.head + i) % r.size }
