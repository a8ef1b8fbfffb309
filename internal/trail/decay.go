package trail

import (
	"fmt"
	"math"
)

const (
	DefaultSize       = 3
	DefaultDecayFloor = 0.1

	baseDrawOrder = 2.0
	drawOrderSpan = 0.2
)

// Opacities returns the per-slot alpha for a ring of n slots, oldest first.
// The sequence is geometric from floor up to 1.0.
func Opacities(n int, floor float64) ([]float64, error) {
	if err := validate(n, floor); err != nil {
		return nil, err
	}
	alphas := make([]float64, n)
	if n == 1 {
		alphas[0] = 1.0
		return alphas, nil
	}
	b := math.Exp(math.Log(floor) / float64(n-1))
	for i := range alphas {
		alphas[i] = math.Pow(b, float64(n-i-1))
	}
	// pin the endpoints so rounding in Pow never breaks them
	alphas[0] = floor
	alphas[n-1] = 1.0
	return alphas, nil
}

// DrawOrders returns ascending z-orders so newer slots render on top.
func DrawOrders(n int) []float64 {
	z := make([]float64, n)
	for i := range z {
		z[i] = baseDrawOrder + drawOrderSpan*float64(i)/float64(n)
	}
	return z
}

func validate(n int, floor float64) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRingSize, n)
	}
	if math.IsNaN(floor) || math.IsInf(floor, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidDecayFloor, floor)
	}
	if n > 1 && (floor <= 0 || floor >= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidDecayFloor, floor)
	}
	return nil
}
