package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acousticlab/wavespec/common"
	"github.com/acousticlab/wavespec/waveform"
)

// sine builds a sine waveform of the given amplitude, frequency, sample
// rate and duration.
func sine(amplitude, freq float64, sampleRate int, seconds float64) *waveform.Waveform {
	n := int(float64(sampleRate) * seconds)
	samples := make([]float64, n)
	for i := range n {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	w, err := waveform.New(samples, sampleRate)
	if err != nil {
		panic(err)
	}
	return w
}

func silence(sampleRate int, seconds float64) *waveform.Waveform {
	w, err := waveform.New(make([]float64, int(float64(sampleRate)*seconds)), sampleRate)
	if err != nil {
		panic(err)
	}
	return w
}

func TestSpectrumSingleTone(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	// 1 kHz tone at 8 kHz for one second: with 1 Hz resolution the tone
	// sits exactly on bin 1000.
	spec, err := analyzer.Spectrum(sine(0.5, 1000, 8000, 1.0))
	require.NoError(t, err)

	assert.Equal(t, 8000, spec.FFTLength)
	assert.Equal(t, 1.0, spec.FrequencyResolution)
	assert.False(t, spec.ZeroPadded)
	assert.False(t, spec.NyquistClamped)
	require.Len(t, spec.Frequencies, 2001) // 0..2000 Hz inclusive
	assert.Len(t, spec.MagnitudeDB, 2001)
	assert.Len(t, spec.PhaseDeg, 2001)

	peakBin := 0
	for i, m := range spec.MagnitudeDB {
		if m > spec.MagnitudeDB[peakBin] {
			peakBin = i
		}
	}
	assert.Equal(t, 1000, peakBin)
	assert.InDelta(t, 1000.0, spec.Frequencies[peakBin], spec.FrequencyResolution)

	// Hann-windowed unit tone of amplitude A lands at
	// 20*log10(sqrt(A^2/3 * df) / 20e-6) after power correction.
	expected := 20 * math.Log10(math.Sqrt(0.25/3)/20e-6)
	assert.InDelta(t, expected, spec.MagnitudeDB[peakBin], 0.2)
}

func TestDetectSingleTonePeak(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	result, err := analyzer.Analyze(sine(0.5, 1000, 8000, 1.0))
	require.NoError(t, err)

	require.Len(t, result.Peaks, 1)
	peak := result.Peaks[0]
	assert.InDelta(t, 1000.0, peak.Frequency, result.Spectrum.FrequencyResolution)
	assert.Greater(t, peak.Prominence, analyzer.Config().MinProminence)
	assert.Greater(t, peak.Bandwidth, 0.0)
}

func TestSpectrumSilence(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	result, err := analyzer.Analyze(silence(8000, 1.0))
	require.NoError(t, err)

	// Every bin sits at the clamp floor: 20*log10(sqrt(1e-20*df)/20e-6).
	floor := 20 * math.Log10(math.Sqrt(1e-20)/20e-6)
	for i, m := range result.Spectrum.MagnitudeDB {
		assert.InDelta(t, floor, m, 1e-9, "bin %d", i)
	}
	assert.Empty(t, result.Peaks)
}

func TestFrequencyAxisMonotoneAndBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFrequency = 1500
	analyzer, err := New(cfg)
	require.NoError(t, err)

	spec, err := analyzer.Spectrum(sine(0.3, 440, 44100, 0.5))
	require.NoError(t, err)

	require.NotEmpty(t, spec.Frequencies)
	assert.Equal(t, 0.0, spec.Frequencies[0])
	for i := 1; i < len(spec.Frequencies); i++ {
		assert.Greater(t, spec.Frequencies[i], spec.Frequencies[i-1])
	}
	assert.LessOrEqual(t, spec.Frequencies[len(spec.Frequencies)-1], cfg.MaxFrequency)
}

func TestDeterminism(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	w := sine(0.4, 523.25, 8000, 1.0)
	first, err := analyzer.Analyze(w)
	require.NoError(t, err)
	second, err := analyzer.Analyze(w)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNyquistClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFrequency = 10000 // above the 4 kHz Nyquist of this waveform
	analyzer, err := New(cfg)
	require.NoError(t, err)

	spec, err := analyzer.Spectrum(sine(0.5, 1000, 8000, 1.0))
	require.NoError(t, err)

	assert.True(t, spec.NyquistClamped)
	assert.LessOrEqual(t, spec.Frequencies[len(spec.Frequencies)-1], 4000.0)
}

func TestZeroPaddingKeepsPeakStable(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	// Half a second at 1 Hz resolution needs zero padding to N=8000.
	result, err := analyzer.Analyze(sine(0.5, 1000, 8000, 0.5))
	require.NoError(t, err)
	require.True(t, result.Spectrum.ZeroPadded)
	require.NotEmpty(t, result.Peaks)

	// Padding introduces sidelobes, so assert on the dominant peak only.
	top := result.Peaks[0]
	for _, p := range result.Peaks[1:] {
		if p.Prominence > top.Prominence {
			top = p
		}
	}
	assert.InDelta(t, 1000.0, top.Frequency, result.Spectrum.FrequencyResolution)
}

func TestTruncation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrequencyResolution = 2.0
	analyzer, err := New(cfg)
	require.NoError(t, err)

	// One second at 8 kHz against N=4000: the tail is dropped.
	spec, err := analyzer.Spectrum(sine(0.5, 1000, 8000, 1.0))
	require.NoError(t, err)

	assert.Equal(t, 4000, spec.FFTLength)
	assert.Equal(t, 2.0, spec.FrequencyResolution)
	assert.False(t, spec.ZeroPadded)
}

func TestResourceLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFFTLength = 1024
	analyzer, err := New(cfg)
	require.NoError(t, err)

	_, err = analyzer.Spectrum(sine(0.5, 1000, 8000, 1.0))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindResourceLimit))
}

func TestUnsupportedInput(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	_, err = analyzer.Spectrum(nil)
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindUnsupportedInput))

	_, err = analyzer.Spectrum(&waveform.Waveform{SampleRate: 8000})
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindUnsupportedInput))
}

func TestResolutionAboveNyquist(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrequencyResolution = 5000
	analyzer, err := New(cfg)
	require.NoError(t, err)

	_, err = analyzer.Spectrum(sine(0.5, 1000, 8000, 1.0))
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindInvalidConfiguration))
}

func TestAnalyzeBundlesStats(t *testing.T) {
	analyzer, err := New(DefaultConfig())
	require.NoError(t, err)

	result, err := analyzer.Analyze(sine(0.5, 1000, 8000, 1.0))
	require.NoError(t, err)

	require.NotNil(t, result.Stats)
	assert.Equal(t, 8000, result.Stats.NumSamples)
	assert.InDelta(t, 0.5/math.Sqrt2, result.Stats.RMS, 1e-3)
	assert.Nil(t, result.Spectrogram)
}
