package trail

import "time"

// Stats is diagnostic rate information. It never affects rendering.
type Stats struct {
	Frames  int
	Elapsed time.Duration
	FPS     float64
	Seeds   int
}

// Stats reports frames ticked since the last seed and the resulting rate.
func (r *Renderer) Stats() Stats {
	s := Stats{Frames: r.count, Seeds: r.seeds}
	if !r.seeded {
		return s
	}
	s.Elapsed = r.clock().Sub(r.start)
	if s.Elapsed > 0 {
		s.FPS = float64(r.count) / s.Elapsed.Seconds()
	}
	return s
}
