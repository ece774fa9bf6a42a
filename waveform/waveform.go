// Package waveform loads single-channel PCM audio into the float64
// sample representation the analyzer works on.
package waveform

import (
	"time"

	"github.com/acousticlab/wavespec/common"
)

// Waveform is an ordered sequence of floating-point samples in [-1, 1]
// at a fixed sample rate. Treat it as immutable once constructed; the
// analyzer copies samples before any in-place processing.
type Waveform struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// New validates and wraps raw samples.
func New(samples []float64, sampleRate int) (*Waveform, error) {
	if sampleRate <= 0 {
		return nil, common.NewInputError("sample rate must be positive", nil)
	}
	if len(samples) == 0 {
		return nil, common.NewInputError("waveform has no samples", nil)
	}

	return &Waveform{Samples: samples, SampleRate: sampleRate}, nil
}

// Len returns the number of samples.
func (w *Waveform) Len() int {
	return len(w.Samples)
}

// Seconds returns the waveform duration in seconds.
func (w *Waveform) Seconds() float64 {
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Duration returns the waveform duration.
func (w *Waveform) Duration() time.Duration {
	return time.Duration(w.Seconds() * float64(time.Second))
}

// Nyquist returns the highest representable frequency in Hz.
func (w *Waveform) Nyquist() float64 {
	return float64(w.SampleRate) / 2.0
}
