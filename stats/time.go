// Package stats computes time-domain statistics of a waveform.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/acousticlab/wavespec/waveform"
)

// TimeStats summarizes a waveform in the time domain.
type TimeStats struct {
	Mean             float64 `json:"mean"`
	StdDev           float64 `json:"std_dev"`
	RMS              float64 `json:"rms"`
	Peak             float64 `json:"peak"`         // max absolute amplitude
	CrestFactor      float64 `json:"crest_factor"` // Peak / RMS
	ZeroCrossings    int     `json:"zero_crossings"`
	ZeroCrossingRate float64 `json:"zero_crossing_rate"` // crossings per second
	NumSamples       int     `json:"num_samples"`
	DurationSeconds  float64 `json:"duration_seconds"`
}

// Compute derives the full statistics set from a waveform.
func Compute(w *waveform.Waveform) *TimeStats {
	samples := w.Samples
	n := len(samples)

	mean := stat.Mean(samples, nil)

	sumSquares := 0.0
	peak := 0.0
	for _, s := range samples {
		sumSquares += s * s
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	rms := math.Sqrt(sumSquares / float64(n))

	crest := 0.0
	if rms > 0 {
		crest = peak / rms
	}

	stdDev := 0.0
	if n > 1 {
		stdDev = stat.StdDev(samples, nil)
	}

	crossings := zeroCrossings(samples)
	duration := w.Seconds()

	rate := 0.0
	if duration > 0 {
		rate = float64(crossings) / duration
	}

	return &TimeStats{
		Mean:             mean,
		StdDev:           stdDev,
		RMS:              rms,
		Peak:             peak,
		CrestFactor:      crest,
		ZeroCrossings:    crossings,
		ZeroCrossingRate: rate,
		NumSamples:       n,
		DurationSeconds:  duration,
	}
}

// zeroCrossings counts sign changes, ignoring exact zeros so a silent
// stretch does not register as oscillation.
func zeroCrossings(samples []float64) int {
	count := 0
	prev := 0.0
	for _, s := range samples {
		if s == 0 {
			continue
		}
		if prev != 0 && (s > 0) != (prev > 0) {
			count++
		}
		prev = s
	}
	return count
}
