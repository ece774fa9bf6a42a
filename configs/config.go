// Package configs loads application configuration from file, environment
// and defaults, and maps it onto the analyzer's configuration type.
package configs

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/acousticlab/wavespec/spectral"
	"github.com/acousticlab/wavespec/windowing"
)

// Config is the application-level configuration surface.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	Analysis AnalysisSettings `mapstructure:"analysis"`
}

// AnalysisSettings mirrors spectral.AnalysisConfig with file-friendly
// field types; the window function is a name here and parsed on mapping.
type AnalysisSettings struct {
	Preset              string  `mapstructure:"preset"`
	FrequencyResolution float64 `mapstructure:"frequency_resolution"`
	MaxFrequency        float64 `mapstructure:"max_frequency"`
	WindowFunction      string  `mapstructure:"window_function"`
	STFTWindowLength    int     `mapstructure:"stft_window_length"`
	STFTOverlap         float64 `mapstructure:"stft_overlap"`
	MinProminence       float64 `mapstructure:"min_prominence"`
	MinPeakDistance     float64 `mapstructure:"min_peak_distance"`
	MaxPeaks            int     `mapstructure:"max_peaks"`
	MaxFFTLength        int     `mapstructure:"max_fft_length"`
}

// Load reads configuration from the given file (optional), WAVESPEC_*
// environment variables and built-in defaults, in that precedence order.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("WAVESPEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// AnalysisConfig maps the loaded settings onto a validated analyzer
// configuration. A preset provides the baseline; explicitly set fields
// override it.
func (c *Config) AnalysisConfig() (spectral.AnalysisConfig, error) {
	cfg := spectral.DefaultConfig()
	if c.Analysis.Preset != "" {
		preset, err := spectral.PresetConfig(c.Analysis.Preset)
		if err != nil {
			return spectral.AnalysisConfig{}, err
		}
		cfg = preset
	}

	if c.Analysis.FrequencyResolution != 0 {
		cfg.FrequencyResolution = c.Analysis.FrequencyResolution
	}
	if c.Analysis.MaxFrequency != 0 {
		cfg.MaxFrequency = c.Analysis.MaxFrequency
	}
	if c.Analysis.WindowFunction != "" {
		winType, err := windowing.ParseType(c.Analysis.WindowFunction)
		if err != nil {
			return spectral.AnalysisConfig{}, err
		}
		cfg.Window = winType
	}
	if c.Analysis.STFTWindowLength != 0 {
		cfg.STFTWindowLength = c.Analysis.STFTWindowLength
	}
	if c.Analysis.STFTOverlap != 0 {
		cfg.STFTOverlap = c.Analysis.STFTOverlap
	}
	if c.Analysis.MinProminence != 0 {
		cfg.MinProminence = c.Analysis.MinProminence
	}
	if c.Analysis.MinPeakDistance != 0 {
		cfg.MinPeakDistance = c.Analysis.MinPeakDistance
	}
	if c.Analysis.MaxPeaks != 0 {
		cfg.MaxPeaks = c.Analysis.MaxPeaks
	}
	if c.Analysis.MaxFFTLength != 0 {
		cfg.MaxFFTLength = c.Analysis.MaxFFTLength
	}

	if err := cfg.Validate(); err != nil {
		return spectral.AnalysisConfig{}, err
	}
	return cfg, nil
}
