package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acousticlab/wavespec/spectral"
	"github.com/acousticlab/wavespec/windowing"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "table", config.OutputFormat)
	assert.Equal(t, 1.0, config.Analysis.FrequencyResolution)
	assert.Equal(t, "hann", config.Analysis.WindowFunction)
	assert.Equal(t, 4096, config.Analysis.STFTWindowLength)

	cfg, err := config.AnalysisConfig()
	require.NoError(t, err)
	assert.Equal(t, spectral.DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavespec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
output_format: json
analysis:
  frequency_resolution: 0.5
  max_frequency: 5000
  window_function: blackman
  min_prominence: 3
`), 0o644))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "json", config.OutputFormat)

	cfg, err := config.AnalysisConfig()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.FrequencyResolution)
	assert.Equal(t, 5000.0, cfg.MaxFrequency)
	assert.Equal(t, windowing.Blackman, cfg.Window)
	assert.Equal(t, 3.0, cfg.MinProminence)

	// Untouched fields keep their defaults.
	assert.Equal(t, 4096, cfg.STFTWindowLength)
	assert.Equal(t, 20, cfg.MaxPeaks)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestPresetWithOverrides(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)

	config.Analysis.Preset = "strict"
	config.Analysis.MaxFrequency = 3000

	cfg, err := config.AnalysisConfig()
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.MinProminence)
	assert.Equal(t, 15.0, cfg.MinPeakDistance)
	assert.Equal(t, 3000.0, cfg.MaxFrequency)
}

func TestUnknownPreset(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	config.Analysis.Preset = "ultra"

	_, err = config.AnalysisConfig()
	assert.Error(t, err)
}

func TestUnknownWindowName(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	config.Analysis.WindowFunction = "kaiser"

	_, err = config.AnalysisConfig()
	assert.Error(t, err)
}

func TestInvalidMappedConfig(t *testing.T) {
	config, err := Load("")
	require.NoError(t, err)
	config.Analysis.MinProminence = -1

	_, err = config.AnalysisConfig()
	assert.Error(t, err)
}
