package export

import (
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/san-kum/scopetrail/internal/scope"
)

// XYStreamer plays curves back to back as stereo audio: x on the left
// channel, y on the right, both scaled by 1/bounds and clipped to ±1.
type XYStreamer struct {
	curves []scope.Curve
	bounds float64
	curve  int
	pos    int
}

func NewXYStreamer(curves []scope.Curve, bounds float64) *XYStreamer {
	return &XYStreamer{curves: curves, bounds: bounds}
}

func (s *XYStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if s.curve >= len(s.curves) {
			return n, n > 0
		}
		c := s.curves[s.curve]
		if s.pos >= c.Len() {
			s.curve++
			s.pos = 0
			continue
		}
		samples[n][0] = clip(c.X[s.pos] / s.bounds)
		samples[n][1] = clip(c.Y[s.pos] / s.bounds)
		s.pos++
		n++
	}
	return n, true
}

func (s *XYStreamer) Err() error { return nil }

// Len is the total number of stereo samples.
func (s *XYStreamer) Len() int {
	total := 0
	for _, c := range s.curves {
		total += c.Len()
	}
	return total
}

// EncodeWAV writes curves as a 16-bit stereo WAV at sampleRate.
func EncodeWAV(w io.WriteSeeker, curves []scope.Curve, bounds float64, sampleRate int) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	return wav.Encode(w, NewXYStreamer(curves, bounds), format)
}

func clip(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
