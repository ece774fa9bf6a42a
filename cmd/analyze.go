package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/acousticlab/wavespec/configs"
	"github.com/acousticlab/wavespec/logging"
	"github.com/acousticlab/wavespec/spectral"
	"github.com/acousticlab/wavespec/waveform"
)

var (
	preset          string
	freqResolution  float64
	maxFrequency    float64
	windowFunction  string
	stftWindow      int
	stftOverlap     float64
	minProminence   float64
	minPeakDistance float64
	maxPeaks        int
	withSpectrogram bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav>",
	Short: "Analyze a WAV file",
	Long: `Decode a WAV file and report time-domain statistics, the calibrated
magnitude/phase spectrum and detected resonance peaks. With --spectrogram
an STFT spectrogram is computed as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&preset, "preset", "",
		"analysis preset (standard, strict, relaxed, precision)")
	analyzeCmd.Flags().Float64Var(&freqResolution, "freq-resolution", 0,
		"target frequency resolution in Hz")
	analyzeCmd.Flags().Float64Var(&maxFrequency, "max-frequency", 0,
		"upper frequency bound in Hz (clamped to Nyquist)")
	analyzeCmd.Flags().StringVar(&windowFunction, "window", "",
		"window function (rectangular, hann, hamming, blackman)")
	analyzeCmd.Flags().IntVar(&stftWindow, "stft-window", 0,
		"STFT window length in samples")
	analyzeCmd.Flags().Float64Var(&stftOverlap, "stft-overlap", 0,
		"STFT window overlap fraction [0,1)")
	analyzeCmd.Flags().Float64Var(&minProminence, "min-prominence", 0,
		"minimum peak prominence in dB")
	analyzeCmd.Flags().Float64Var(&minPeakDistance, "min-peak-distance", 0,
		"minimum distance between peaks in Hz")
	analyzeCmd.Flags().IntVar(&maxPeaks, "max-peaks", 0,
		"maximum number of reported peaks")
	analyzeCmd.Flags().BoolVar(&withSpectrogram, "spectrogram", false,
		"also compute an STFT spectrogram")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := configs.Load(configFile)
	if err != nil {
		return err
	}

	// Flags the user actually set win over file and environment values.
	if cmd.Flags().Changed("output") {
		config.OutputFormat = outputFormat
	}
	if cmd.Flags().Changed("log-level") {
		config.LogLevel = logLevel
	}
	logging.SetLevel(logging.ParseLevel(config.LogLevel))
	applyAnalyzeFlags(config)

	cfg, err := config.AnalysisConfig()
	if err != nil {
		return err
	}

	analyzer, err := spectral.New(cfg)
	if err != nil {
		return err
	}

	path := args[0]
	w, err := waveform.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	logging.Info("decoded waveform", logging.Fields{
		"file":        path,
		"sample_rate": w.SampleRate,
		"samples":     w.Len(),
		"duration":    w.Duration().String(),
	})

	result, err := analyzer.Analyze(w)
	if err != nil {
		return err
	}
	if withSpectrogram {
		spectrogram, err := analyzer.Spectrogram(w)
		if err != nil {
			return err
		}
		result.Spectrogram = spectrogram
	}

	if config.OutputFormat == "json" {
		return printJSON(result)
	}
	printTable(path, result)
	return nil
}

// applyAnalyzeFlags overlays flag values the user actually set.
func applyAnalyzeFlags(config *configs.Config) {
	if preset != "" {
		config.Analysis.Preset = preset
	}
	if freqResolution != 0 {
		config.Analysis.FrequencyResolution = freqResolution
	}
	if maxFrequency != 0 {
		config.Analysis.MaxFrequency = maxFrequency
	}
	if windowFunction != "" {
		config.Analysis.WindowFunction = windowFunction
	}
	if stftWindow != 0 {
		config.Analysis.STFTWindowLength = stftWindow
	}
	if stftOverlap != 0 {
		config.Analysis.STFTOverlap = stftOverlap
	}
	if minProminence != 0 {
		config.Analysis.MinProminence = minProminence
	}
	if minPeakDistance != 0 {
		config.Analysis.MinPeakDistance = minPeakDistance
	}
	if maxPeaks != 0 {
		config.Analysis.MaxPeaks = maxPeaks
	}
}

func printJSON(result *spectral.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printTable(path string, result *spectral.Result) {
	s := result.Stats
	fmt.Printf("File: %s\n\n", path)

	fmt.Println("Time-domain statistics")
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  duration\t%.3f s\n", s.DurationSeconds)
	fmt.Fprintf(tw, "  samples\t%d @ %d Hz\n", s.NumSamples, result.Spectrum.SampleRate)
	fmt.Fprintf(tw, "  mean\t%.6g\n", s.Mean)
	fmt.Fprintf(tw, "  std dev\t%.6g\n", s.StdDev)
	fmt.Fprintf(tw, "  rms\t%.6g\n", s.RMS)
	fmt.Fprintf(tw, "  peak\t%.6g\n", s.Peak)
	fmt.Fprintf(tw, "  crest factor\t%.3f\n", s.CrestFactor)
	fmt.Fprintf(tw, "  zero crossings\t%d (%.1f/s)\n", s.ZeroCrossings, s.ZeroCrossingRate)
	tw.Flush()

	spec := result.Spectrum
	fmt.Println("\nSpectrum")
	tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  fft length\t%d\n", spec.FFTLength)
	fmt.Fprintf(tw, "  resolution\t%.4g Hz\n", spec.FrequencyResolution)
	fmt.Fprintf(tw, "  window\t%s\n", spec.Window)
	fmt.Fprintf(tw, "  bins\t%d (%.1f .. %.1f Hz)\n", len(spec.Frequencies),
		spec.Frequencies[0], spec.Frequencies[len(spec.Frequencies)-1])
	if spec.ZeroPadded {
		fmt.Fprintf(tw, "  zero padded\tyes\n")
	}
	if spec.NyquistClamped {
		fmt.Fprintf(tw, "  nyquist clamped\tyes\n")
	}
	tw.Flush()

	fmt.Printf("\nResonance peaks (%d)\n", len(result.Peaks))
	if len(result.Peaks) > 0 {
		tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  freq (Hz)\tmagnitude (dB)\tprominence (dB)\tbandwidth (Hz)")
		for _, p := range result.Peaks {
			fmt.Fprintf(tw, "  %.2f\t%.2f\t%.2f\t%.2f\n",
				p.Frequency, p.MagnitudeDB, p.Prominence, p.Bandwidth)
		}
		tw.Flush()
	}

	if result.Spectrogram != nil {
		sg := result.Spectrogram
		fmt.Println("\nSpectrogram")
		tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  frames\t%d\n", len(sg.Times))
		fmt.Fprintf(tw, "  bins per frame\t%d\n", len(sg.Frequencies))
		fmt.Fprintf(tw, "  window\t%s, %d samples, stride %d\n",
			sg.Window, sg.WindowLength, sg.Stride)
		fmt.Fprintf(tw, "  time step\t%.4f s\n", sg.TimeResolution())
		fmt.Fprintf(tw, "  freq step\t%.2f Hz\n", sg.FreqResolution())
		tw.Flush()
	}
}
