package windowing

import "math"

// newHann creates a symmetric Hann window:
// w[i] = 0.5 * (1 - cos(2πi/(N-1)))
func newHann(size int) *cosineWindow {
	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1.0
		return &cosineWindow{typ: Hann, coefficients: coefficients}
	}

	denominator := float64(size - 1)
	for i := range size {
		coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
	return &cosineWindow{typ: Hann, coefficients: coefficients}
}
