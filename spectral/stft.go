package spectral

import (
	"fmt"

	"github.com/acousticlab/wavespec/common"
	"github.com/acousticlab/wavespec/logging"
	"github.com/acousticlab/wavespec/waveform"
	"github.com/acousticlab/wavespec/windowing"
)

// SpectrogramResult is a time-frequency magnitude grid plus the axes used
// to generate it. MagnitudeDB is indexed [frame][bin] and shares the
// package's dB SPL convention with SpectrumResult.
type SpectrogramResult struct {
	Times       []float64   `json:"times"`       // frame-start times, seconds
	Frequencies []float64   `json:"frequencies"` // Hz
	MagnitudeDB [][]float64 `json:"magnitude_db"`

	SampleRate     int            `json:"sample_rate"`
	WindowLength   int            `json:"window_length"`
	Stride         int            `json:"stride"` // samples between frame starts
	Window         windowing.Type `json:"window"`
	NyquistClamped bool           `json:"nyquist_clamped"`
}

// Spectrogram computes the short-time Fourier transform of a waveform.
//
// Frames advance by max(1, floor(L*(1-overlap))) samples. A tail shorter
// than one window is dropped rather than padded, so the time axis has
// exactly floor((len-L)/stride)+1 entries. Each frame is DC-removed,
// windowed and transformed under the same normalization as Spectrum.
func (a *Analyzer) Spectrogram(w *waveform.Waveform) (*SpectrogramResult, error) {
	if w == nil || len(w.Samples) == 0 {
		return nil, common.NewInputError("waveform has no samples", nil)
	}

	length := a.cfg.STFTWindowLength
	if len(w.Samples) < length {
		return nil, common.NewInputError(
			fmt.Sprintf("signal of %d samples is shorter than one STFT window of %d", len(w.Samples), length), nil)
	}

	stride := int(float64(length) * (1 - a.cfg.STFTOverlap))
	if stride < 1 {
		stride = 1
	}
	numFrames := (len(w.Samples)-length)/stride + 1

	fs := float64(w.SampleRate)
	df := fs / float64(length)
	maxFreq, clamped := a.boundedMaxFreq(fs)
	keep := keepBins(length, df, maxFreq)

	if numFrames*keep > a.cfg.MaxFFTLength {
		return nil, common.NewResourceError(
			"STFT grid would exceed the configured memory ceiling; shorten the window, reduce the overlap or raise max_fft_length")
	}

	win, err := windowing.New(a.cfg.Window, length)
	if err != nil {
		return nil, common.NewConfigError("window", err.Error())
	}
	corr := powerCorrection(win)

	times := make([]float64, numFrames)
	frequencies := make([]float64, keep)
	for i := range keep {
		frequencies[i] = float64(i) * df
	}

	grid := make([][]float64, numFrames)
	frame := make([]float64, length)
	for f := range numFrames {
		start := f * stride
		copy(frame, w.Samples[start:start+length])

		// per-frame DC removal so slow drift does not mask the band
		mean := 0.0
		for _, s := range frame {
			mean += s
		}
		mean /= float64(length)
		for i := range frame {
			frame[i] -= mean
		}

		if err := win.ApplyInPlace(frame); err != nil {
			return nil, err
		}

		spec := transform(frame)
		row := make([]float64, keep)
		for i := range keep {
			row[i] = binSPL(spec[i], i, length, corr, df)
		}

		grid[f] = row
		times[f] = float64(start) / fs
	}

	if clamped {
		a.logger.Warn("max frequency clamped to Nyquist", logging.Fields{
			"max_frequency": a.cfg.MaxFrequency,
			"nyquist":       maxFreq,
		})
	}
	a.logger.Debug("computed spectrogram", logging.Fields{
		"frames":        numFrames,
		"bins":          keep,
		"stride":        stride,
		"window_length": length,
	})

	return &SpectrogramResult{
		Times:          times,
		Frequencies:    frequencies,
		MagnitudeDB:    grid,
		SampleRate:     w.SampleRate,
		WindowLength:   length,
		Stride:         stride,
		Window:         a.cfg.Window,
		NyquistClamped: clamped,
	}, nil
}

// FreqResolution returns the spectrogram's frequency bin width in Hz.
func (s *SpectrogramResult) FreqResolution() float64 {
	return float64(s.SampleRate) / float64(s.WindowLength)
}

// TimeResolution returns the spacing between frame starts in seconds.
func (s *SpectrogramResult) TimeResolution() float64 {
	return float64(s.Stride) / float64(s.SampleRate)
}
