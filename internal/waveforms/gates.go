package waveforms

import "math"

const twoPi = 2 * math.Pi

// Square is a ±1 square wave of period 2π. It is +1 for the first duty
// fraction of each period.
func Square(t, duty float64) float64 {
	if phase(t) < duty {
		return 1
	}
	return -1
}

// Sawtooth rises from -1 to 1 over the first width fraction of each 2π
// period and falls back to -1 over the rest. Width 1 gives a rising ramp.
func Sawtooth(t, width float64) float64 {
	p := phase(t)
	if p < width {
		return -1 + 2*p/width
	}
	return 1 - 2*(p-width)/(1-width)
}

// phase returns t's position within its period, in [0, 1).
func phase(t float64) float64 {
	p := math.Mod(t, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p / twoPi
}

// Linspace returns n evenly spaced values over [start, stop], endpoints
// included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}
