package spectral

import "github.com/mjibson/go-dsp/fft"

// transform computes the DFT of a real signal. go-dsp handles arbitrary
// lengths efficiently, which lets the analyzer use exact-resolution FFT
// sizes instead of rounding up to a power of two.
func transform(x []float64) []complex128 {
	if len(x) == 0 {
		return nil
	}
	return fft.FFTReal(x)
}
