package spectral

import (
	"math"
	"sort"

	"github.com/acousticlab/wavespec/logging"
)

// ResonancePeak is a detected local maximum in the magnitude spectrum,
// interpreted as a resonant frequency of the analyzed system.
type ResonancePeak struct {
	Frequency   float64 `json:"frequency"`    // center frequency, Hz
	MagnitudeDB float64 `json:"magnitude_db"` // dB SPL at the peak bin
	Prominence  float64 `json:"prominence"`   // dB above the higher base valley
	Bandwidth   float64 `json:"bandwidth"`    // Hz, width at peak - prominence/2
	BinIndex    int     `json:"bin_index"`
}

// DetectPeaks finds resonance peaks in a computed spectrum.
//
// Candidates are strict local maxima whose prominence meets the
// configured threshold. Selection is greedy in descending prominence:
// a candidate within MinPeakDistance Hz of an already accepted peak is
// suppressed even if it would otherwise qualify, and the set is capped at
// MaxPeaks. This prominence-first order is deliberate; a frequency-order
// greedy would keep different peaks when close candidates have similar
// prominence. Output is re-sorted by frequency. An empty spectrum region
// simply yields an empty slice, never an error.
func (a *Analyzer) DetectPeaks(spec *SpectrumResult) []ResonancePeak {
	mags := spec.MagnitudeDB
	freqs := spec.Frequencies

	var candidates []ResonancePeak
	for i := 1; i < len(mags)-1; i++ {
		if mags[i] <= mags[i-1] || mags[i] <= mags[i+1] {
			continue
		}
		prom := prominence(mags, i)
		if prom < a.cfg.MinProminence {
			continue
		}
		candidates = append(candidates, ResonancePeak{
			Frequency:   freqs[i],
			MagnitudeDB: mags[i],
			Prominence:  prom,
			BinIndex:    i,
		})
	}

	// Prominence descending; ties resolved toward lower frequency so
	// repeated runs select identically.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Prominence != candidates[j].Prominence {
			return candidates[i].Prominence > candidates[j].Prominence
		}
		return candidates[i].BinIndex < candidates[j].BinIndex
	})

	accepted := make([]ResonancePeak, 0, min(len(candidates), a.cfg.MaxPeaks))
	for _, c := range candidates {
		if len(accepted) == a.cfg.MaxPeaks {
			break
		}
		tooClose := false
		for _, p := range accepted {
			if math.Abs(c.Frequency-p.Frequency) < a.cfg.MinPeakDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			accepted = append(accepted, c)
		}
	}

	for i := range accepted {
		accepted[i].Bandwidth = halfProminenceWidth(freqs, mags, accepted[i])
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Frequency < accepted[j].Frequency
	})

	a.logger.Debug("detected resonance peaks", logging.Fields{
		"candidates": len(candidates),
		"accepted":   len(accepted),
	})

	return accepted
}

// prominence measures how far the peak at index i rises above the higher
// of its two base valleys. Each base is the minimum value between the
// peak and the nearest sample that exceeds it (or the range end on that
// side).
func prominence(mags []float64, i int) float64 {
	peak := mags[i]

	leftBase := peak
	for j := i - 1; j >= 0; j-- {
		if mags[j] > peak {
			break
		}
		if mags[j] < leftBase {
			leftBase = mags[j]
		}
	}

	rightBase := peak
	for j := i + 1; j < len(mags); j++ {
		if mags[j] > peak {
			break
		}
		if mags[j] < rightBase {
			rightBase = mags[j]
		}
	}

	return peak - math.Max(leftBase, rightBase)
}

// halfProminenceWidth measures the peak's bandwidth at the height
// peak - prominence/2, interpolating the crossing on each flank. Flanks
// that never drop to the evaluation height are cut off at the band edge.
func halfProminenceWidth(freqs, mags []float64, p ResonancePeak) float64 {
	h := p.MagnitudeDB - p.Prominence/2

	left := freqs[0]
	for j := p.BinIndex - 1; j >= 0; j-- {
		if mags[j] <= h {
			left = crossing(freqs[j], freqs[j+1], mags[j], mags[j+1], h)
			break
		}
	}

	right := freqs[len(freqs)-1]
	for j := p.BinIndex + 1; j < len(mags); j++ {
		if mags[j] <= h {
			right = crossing(freqs[j-1], freqs[j], mags[j-1], mags[j], h)
			break
		}
	}

	return right - left
}

// crossing linearly interpolates the frequency at which the magnitude
// curve passes level h between two adjacent bins.
func crossing(f0, f1, m0, m1, h float64) float64 {
	if m1 == m0 {
		return f1
	}
	t := (h - m0) / (m1 - m0)
	return f0 + t*(f1-f0)
}
