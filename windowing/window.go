package windowing

import "fmt"

// Type identifies a window function family. The analyzer accepts exactly
// this fixed set; rectangular means no taper.
type Type string

const (
	Rectangular Type = "rectangular"
	Hann        Type = "hann"
	Hamming     Type = "hamming"
	Blackman    Type = "blackman"
)

// Valid reports whether t names a supported window function.
func (t Type) Valid() bool {
	switch t {
	case Rectangular, Hann, Hamming, Blackman:
		return true
	}
	return false
}

// ParseType resolves a window name from configuration input.
func ParseType(name string) (Type, error) {
	t := Type(name)
	if !t.Valid() {
		return "", fmt.Errorf("unknown window type %q (want rectangular, hann, hamming or blackman)", name)
	}
	return t, nil
}

// Window is a tapering function applied to a signal segment before
// transform to control spectral leakage.
type Window interface {
	// Apply windows the signal into a new slice; returns nil when the
	// signal length does not match the window size.
	Apply(signal []float64) []float64

	// ApplyInPlace windows the signal in place.
	ApplyInPlace(signal []float64) error

	// Coefficients returns a copy of the window coefficients.
	Coefficients() []float64

	Size() int
	Type() Type
}

// New creates a symmetric window of the given family and size.
func New(t Type, size int) (Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be positive, got %d", size)
	}

	switch t {
	case Rectangular:
		return newRectangular(size), nil
	case Hann:
		return newHann(size), nil
	case Hamming:
		return newHamming(size), nil
	case Blackman:
		return newBlackman(size), nil
	default:
		return nil, fmt.Errorf("unknown window type %q", t)
	}
}

// cosineWindow is the shared implementation behind the tapered windows:
// precomputed coefficients applied sample-by-sample.
type cosineWindow struct {
	typ          Type
	coefficients []float64
}

func (w *cosineWindow) Apply(signal []float64) []float64 {
	if len(signal) != len(w.coefficients) {
		return nil
	}

	windowed := make([]float64, len(signal))
	for i := range signal {
		windowed[i] = signal[i] * w.coefficients[i]
	}
	return windowed
}

func (w *cosineWindow) ApplyInPlace(signal []float64) error {
	if len(signal) != len(w.coefficients) {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), len(w.coefficients))
	}

	for i := range signal {
		signal[i] *= w.coefficients[i]
	}
	return nil
}

func (w *cosineWindow) Coefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

func (w *cosineWindow) Size() int {
	return len(w.coefficients)
}

func (w *cosineWindow) Type() Type {
	return w.typ
}
