package windowing

import "fmt"

// rectangular is the identity window: no taper, full spectral leakage.
// It skips the multiply in ApplyInPlace entirely.
type rectangular struct {
	size int
}

func newRectangular(size int) *rectangular {
	return &rectangular{size: size}
}

func (r *rectangular) Apply(signal []float64) []float64 {
	if len(signal) != r.size {
		return nil
	}

	windowed := make([]float64, r.size)
	copy(windowed, signal)
	return windowed
}

func (r *rectangular) ApplyInPlace(signal []float64) error {
	if len(signal) != r.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), r.size)
	}
	return nil
}

func (r *rectangular) Coefficients() []float64 {
	coeffs := make([]float64, r.size)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	return coeffs
}

func (r *rectangular) Size() int {
	return r.size
}

func (r *rectangular) Type() Type {
	return Rectangular
}
