package windowing

import "math"

// newHamming creates a symmetric Hamming window:
// w[i] = 0.54 - 0.46 * cos(2πi/(N-1))
func newHamming(size int) *cosineWindow {
	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1.0
		return &cosineWindow{typ: Hamming, coefficients: coefficients}
	}

	denominator := float64(size - 1)
	for i := range size {
		coefficients[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/denominator)
	}
	return &cosineWindow{typ: Hamming, coefficients: coefficients}
}
