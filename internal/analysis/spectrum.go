package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k|/n for k = 0..n/2 of the real sequence data.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i]) / float64(n)
	}
	return ps
}

// Dominant returns the strongest bin above DC, or -1 when there is none.
func Dominant(ps []float64) (bin int, mag float64) {
	bin = -1
	for i := 1; i < len(ps); i++ {
		if ps[i] > mag {
			bin, mag = i, ps[i]
		}
	}
	return bin, mag
}
