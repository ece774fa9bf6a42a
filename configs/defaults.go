package configs

import "github.com/spf13/viper"

// setDefaults seeds the viper instance with the built-in defaults so
// they survive unmarshalling when neither file nor environment sets them.
func setDefaults(v *viper.Viper) {
	defaults := map[string]any{
		"log_level":     "info",
		"output_format": "table",

		"analysis.preset":               "",
		"analysis.frequency_resolution": 1.0,
		"analysis.max_frequency":        2000.0,
		"analysis.window_function":      "hann",
		"analysis.stft_window_length":   4096,
		"analysis.stft_overlap":         0.75,
		"analysis.min_prominence":       6.0,
		"analysis.min_peak_distance":    10.0,
		"analysis.max_peaks":            20,
		"analysis.max_fft_length":       1 << 24,
	}

	for key, value := range defaults {
		if !v.IsSet(key) {
			v.SetDefault(key, value)
		}
	}
}
