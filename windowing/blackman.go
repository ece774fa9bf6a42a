package windowing

import "math"

// newBlackman creates a symmetric Blackman window with the classic
// coefficients a0=0.42, a1=0.5, a2=0.08.
func newBlackman(size int) *cosineWindow {
	coefficients := make([]float64, size)
	if size == 1 {
		coefficients[0] = 1.0
		return &cosineWindow{typ: Blackman, coefficients: coefficients}
	}

	a0, a1, a2 := 0.42, 0.5, 0.08
	denominator := float64(size - 1)
	for i := range size {
		arg := 2 * math.Pi * float64(i) / denominator
		coefficients[i] = a0 - a1*math.Cos(arg) + a2*math.Cos(2*arg)
	}
	return &cosineWindow{typ: Blackman, coefficients: coefficients}
}
