// Package spectral transforms sampled waveforms into frequency-domain,
// time-frequency and resonance-peak data under a validated configuration.
package spectral

import (
	"math"
	"math/cmplx"

	"github.com/acousticlab/wavespec/common"
	"github.com/acousticlab/wavespec/logging"
	"github.com/acousticlab/wavespec/stats"
	"github.com/acousticlab/wavespec/waveform"
	"github.com/acousticlab/wavespec/windowing"
)

const (
	// referencePressure is the dB SPL reference, 20 µPa in air. Samples
	// are treated as pascal pressure values.
	referencePressure = 20e-6

	// psdFloor clamps the power spectral density before the log so
	// silence maps to a finite floor instead of -Inf.
	psdFloor = 1e-20
)

// Analyzer computes spectra, spectrograms and resonance peaks for one
// configuration. It holds no mutable state: every call allocates its own
// buffers, so a single Analyzer is safe for concurrent use on different
// waveforms.
type Analyzer struct {
	cfg    AnalysisConfig
	logger logging.Logger
}

// New validates the configuration and constructs an analyzer. Nothing is
// allocated for analysis until a waveform is provided.
func New(cfg AnalysisConfig) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Analyzer{
		cfg:    cfg,
		logger: logging.WithFields(logging.Fields{"component": "spectral"}),
	}, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() AnalysisConfig {
	return a.cfg
}

// SpectrumResult holds the one-sided spectrum of a waveform together with
// the metadata needed to reproduce it. Never mutated after creation.
type SpectrumResult struct {
	Frequencies []float64 `json:"frequencies"`  // Hz, strictly increasing
	MagnitudeDB []float64 `json:"magnitude_db"` // dB SPL re 20 µPa
	PhaseDeg    []float64 `json:"phase_deg"`    // degrees, not unwrapped

	SampleRate          int            `json:"sample_rate"`
	FFTLength           int            `json:"fft_length"`
	FrequencyResolution float64        `json:"frequency_resolution"` // achieved, Hz
	Window              windowing.Type `json:"window"`
	ZeroPadded          bool           `json:"zero_padded"`
	NyquistClamped      bool           `json:"nyquist_clamped"`
}

// Result bundles one full analysis pass. The spectrogram is only present
// when requested.
type Result struct {
	Stats       *stats.TimeStats   `json:"stats"`
	Spectrum    *SpectrumResult    `json:"spectrum"`
	Peaks       []ResonancePeak    `json:"peaks"`
	Spectrogram *SpectrogramResult `json:"spectrogram,omitempty"`
}

// Analyze runs time-domain statistics, spectrum computation and resonance
// peak detection on one waveform.
func (a *Analyzer) Analyze(w *waveform.Waveform) (*Result, error) {
	spectrum, err := a.Spectrum(w)
	if err != nil {
		return nil, err
	}

	return &Result{
		Stats:    stats.Compute(w),
		Spectrum: spectrum,
		Peaks:    a.DetectPeaks(spectrum),
	}, nil
}

// Spectrum computes the one-sided magnitude and phase spectrum.
//
// The pipeline mirrors the acoustic convention throughout the package:
// DC removal, pad or truncate to the exact FFT length, window, transform,
// single-sided PSD normalized by the FFT length squared and the window
// power correction, floor clamp, then SPL = 20*log10(sqrt(PSD*df)/20µPa).
func (a *Analyzer) Spectrum(w *waveform.Waveform) (*SpectrumResult, error) {
	if err := a.check(w); err != nil {
		return nil, err
	}

	fs := float64(w.SampleRate)
	n := a.fftLength(fs)
	zeroPadded := len(w.Samples) < n

	// DC offset of the full signal, removed before padding so the pad
	// region stays at zero.
	mean := 0.0
	for _, s := range w.Samples {
		mean += s
	}
	mean /= float64(len(w.Samples))

	x := make([]float64, n)
	m := min(len(w.Samples), n)
	for i := range m {
		x[i] = w.Samples[i] - mean
	}

	win, err := windowing.New(a.cfg.Window, n)
	if err != nil {
		return nil, common.NewConfigError("window", err.Error())
	}
	corr := powerCorrection(win)
	if err := win.ApplyInPlace(x); err != nil {
		return nil, err
	}

	spec := transform(x)
	df := fs / float64(n)
	maxFreq, clamped := a.boundedMaxFreq(fs)
	keep := keepBins(n, df, maxFreq)

	frequencies := make([]float64, keep)
	magnitude := make([]float64, keep)
	phase := make([]float64, keep)
	for i := range keep {
		frequencies[i] = float64(i) * df
		magnitude[i] = binSPL(spec[i], i, n, corr, df)
		phase[i] = cmplx.Phase(spec[i]) * 180 / math.Pi
	}

	if zeroPadded {
		a.logger.Debug("zero-padded signal to FFT length", logging.Fields{
			"samples":    len(w.Samples),
			"fft_length": n,
		})
	}
	if clamped {
		a.logger.Warn("max frequency clamped to Nyquist", logging.Fields{
			"max_frequency": a.cfg.MaxFrequency,
			"nyquist":       maxFreq,
		})
	}
	a.logger.Debug("computed spectrum", logging.Fields{
		"fft_length":  n,
		"resolution":  df,
		"bins":        keep,
		"window":      string(a.cfg.Window),
		"zero_padded": zeroPadded,
	})

	return &SpectrumResult{
		Frequencies:         frequencies,
		MagnitudeDB:         magnitude,
		PhaseDeg:            phase,
		SampleRate:          w.SampleRate,
		FFTLength:           n,
		FrequencyResolution: df,
		Window:              a.cfg.Window,
		ZeroPadded:          zeroPadded,
		NyquistClamped:      clamped,
	}, nil
}

// check rejects unusable input and configurations that only become
// invalid relative to this waveform's sample rate, before any transform
// buffer is allocated.
func (a *Analyzer) check(w *waveform.Waveform) error {
	if w == nil || len(w.Samples) == 0 {
		return common.NewInputError("waveform has no samples", nil)
	}

	fs := float64(w.SampleRate)
	if a.cfg.FrequencyResolution > fs/2 {
		return common.NewConfigError("frequency_resolution",
			"exceeds the Nyquist frequency of the waveform")
	}

	if n := a.fftLength(fs); n > a.cfg.MaxFFTLength {
		return common.NewResourceError(
			"requested frequency resolution needs an FFT length beyond the configured ceiling; lower the resolution or raise max_fft_length")
	}
	return nil
}

// fftLength maps the target frequency resolution to the exact FFT length
// N = ceil(fs / Δf).
func (a *Analyzer) fftLength(fs float64) int {
	return int(math.Ceil(fs / a.cfg.FrequencyResolution))
}

// boundedMaxFreq clamps the configured maximum frequency to Nyquist, the
// one sanctioned silent adjustment; the clamp is surfaced in metadata.
func (a *Analyzer) boundedMaxFreq(fs float64) (float64, bool) {
	nyquist := fs / 2
	if a.cfg.MaxFrequency > nyquist {
		return nyquist, true
	}
	return a.cfg.MaxFrequency, false
}

// keepBins counts the one-sided bins with center frequency <= maxFreq.
func keepBins(n int, df, maxFreq float64) int {
	bins := n/2 + 1
	limit := int(maxFreq/df) + 1
	return min(bins, limit)
}

// powerCorrection is sqrt(mean(w²)), the window's RMS gain; dividing the
// PSD by its square keeps magnitudes comparable across window types.
func powerCorrection(win windowing.Window) float64 {
	coeffs := win.Coefficients()
	sum := 0.0
	for _, c := range coeffs {
		sum += c * c
	}
	return math.Sqrt(sum / float64(len(coeffs)))
}

// binSPL converts one complex bin to dB SPL under the package-wide
// normalization convention.
func binSPL(c complex128, bin, n int, corr, df float64) float64 {
	re, im := real(c), imag(c)
	p := re*re + im*im
	if bin > 0 {
		// one-sided spectrum: fold the mirrored negative frequency in
		p *= 2
	}
	p /= float64(n) * float64(n) * corr * corr
	if p < psdFloor {
		p = psdFloor
	}
	return 20 * math.Log10(math.Sqrt(p*df)/referencePressure)
}
