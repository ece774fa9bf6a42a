package spectral

import (
	"fmt"

	"github.com/acousticlab/wavespec/common"
	"github.com/acousticlab/wavespec/windowing"
)

// AnalysisConfig is the full parameter surface of the analyzer. Every field
// is validated independently before any waveform touches the transform
// pipeline; an Analyzer cannot be constructed from an invalid config.
type AnalysisConfig struct {
	// FrequencyResolution is the target spacing between frequency bins in
	// Hz. The FFT length is ceil(sampleRate / FrequencyResolution), used
	// exactly; there is no power-of-two rounding, so the achieved
	// resolution matches the target whenever the signal is long enough.
	FrequencyResolution float64 `json:"frequency_resolution"`

	// MaxFrequency bounds the analyzed band in Hz. Values above Nyquist
	// are clamped, and the clamp is recorded in result metadata.
	MaxFrequency float64 `json:"max_frequency"`

	// Window selects the taper applied before each transform.
	Window windowing.Type `json:"window"`

	// STFTWindowLength is the frame length in samples for spectrograms.
	STFTWindowLength int `json:"stft_window_length"`

	// STFTOverlap is the fraction of each frame shared with the next,
	// in [0, 1). The frame stride is STFTWindowLength*(1-STFTOverlap),
	// floored to at least one sample.
	STFTOverlap float64 `json:"stft_overlap"`

	// MinProminence is the minimum peak prominence in dB for resonance
	// detection.
	MinProminence float64 `json:"min_prominence"`

	// MinPeakDistance is the minimum separation between accepted
	// resonance peaks in Hz.
	MinPeakDistance float64 `json:"min_peak_distance"`

	// MaxPeaks caps the number of returned resonance peaks.
	MaxPeaks int `json:"max_peaks"`

	// MaxFFTLength is the memory ceiling: analyses whose FFT length (or
	// STFT grid cell count) would exceed it fail with a resource_limit
	// error instead of allocating.
	MaxFFTLength int `json:"max_fft_length"`
}

// DefaultConfig returns the standard analysis parameters.
func DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		FrequencyResolution: 1.0,
		MaxFrequency:        2000.0,
		Window:              windowing.Hann,
		STFTWindowLength:    4096,
		STFTOverlap:         0.75,
		MinProminence:       6.0,
		MinPeakDistance:     10.0,
		MaxPeaks:            20,
		MaxFFTLength:        1 << 24,
	}
}

// PresetConfig returns a named parameter bundle. Presets are plain value
// sets over the same config type, not separate code paths.
func PresetConfig(name string) (AnalysisConfig, error) {
	cfg := DefaultConfig()

	switch name {
	case "default", "standard":
		// DefaultConfig as-is: 6 dB prominence, 10 Hz separation.
	case "strict":
		cfg.MinProminence = 8.0
		cfg.MinPeakDistance = 15.0
	case "relaxed":
		cfg.MinProminence = 4.0
		cfg.MinPeakDistance = 5.0
	case "precision":
		// Sub-0.1 Hz resolution; long FFTs, so raise the ceiling too.
		cfg.FrequencyResolution = 0.01
		cfg.MaxFFTLength = 1 << 27
	default:
		return AnalysisConfig{}, fmt.Errorf("unknown preset %q (want default, strict, relaxed or precision)", name)
	}

	return cfg, nil
}

// Validate checks every parameter against its documented range and
// reports the first violation, naming the offending field.
func (c AnalysisConfig) Validate() error {
	if c.FrequencyResolution <= 0 {
		return common.NewConfigError("frequency_resolution",
			fmt.Sprintf("must be positive, got %g", c.FrequencyResolution))
	}
	if c.MaxFrequency <= 0 {
		return common.NewConfigError("max_frequency",
			fmt.Sprintf("must be positive, got %g", c.MaxFrequency))
	}
	if !c.Window.Valid() {
		return common.NewConfigError("window",
			fmt.Sprintf("unknown window type %q", c.Window))
	}
	if c.STFTWindowLength <= 0 {
		return common.NewConfigError("stft_window_length",
			fmt.Sprintf("must be positive, got %d", c.STFTWindowLength))
	}
	if c.STFTOverlap < 0 || c.STFTOverlap >= 1 {
		return common.NewConfigError("stft_overlap",
			fmt.Sprintf("must be in [0, 1), got %g", c.STFTOverlap))
	}
	if c.MinProminence < 0 {
		return common.NewConfigError("min_prominence",
			fmt.Sprintf("must be non-negative, got %g", c.MinProminence))
	}
	if c.MinPeakDistance < 0 {
		return common.NewConfigError("min_peak_distance",
			fmt.Sprintf("must be non-negative, got %g", c.MinPeakDistance))
	}
	if c.MaxPeaks < 1 {
		return common.NewConfigError("max_peaks",
			fmt.Sprintf("must be at least 1, got %d", c.MaxPeaks))
	}
	if c.MaxFFTLength < 1 {
		return common.NewConfigError("max_fft_length",
			fmt.Sprintf("must be at least 1, got %d", c.MaxFFTLength))
	}
	return nil
}
