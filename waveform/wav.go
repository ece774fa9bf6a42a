package waveform

import (
	"io"
	"os"

	"github.com/go-audio/wav"

	"github.com/acousticlab/wavespec/common"
	"github.com/acousticlab/wavespec/logging"
)

// DecodeFile reads a PCM WAV file into a Waveform. Multi-channel audio is
// reduced to mono by averaging the channels; integer samples are
// normalized to [-1, 1] by the full-scale value of their bit depth.
func DecodeFile(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewInputError("opening WAV file "+path, err)
	}
	defer f.Close()

	w, err := Decode(f)
	if err != nil {
		return nil, err
	}

	logging.Debug("decoded WAV file", logging.Fields{
		"path":        path,
		"sample_rate": w.SampleRate,
		"samples":     len(w.Samples),
		"duration_s":  w.Seconds(),
	})

	return w, nil
}

// Decode reads a PCM WAV container from r.
func Decode(r io.ReadSeeker) (*Waveform, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, common.NewInputError("not a readable PCM WAV container", nil)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, common.NewInputError("reading PCM samples", err)
	}

	channels := int(dec.NumChans)
	if channels <= 0 {
		return nil, common.NewInputError("WAV header reports no channels", nil)
	}
	if len(buf.Data) == 0 {
		return nil, common.NewInputError("WAV file contains no samples", nil)
	}

	bitDepth := int(dec.BitDepth)
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)

	// 8-bit WAV is unsigned with a 128 midpoint; wider depths are
	// signed two's complement.
	if bitDepth == 8 {
		for i := range frames {
			sum := 0.0
			for c := range channels {
				sum += (float64(buf.Data[i*channels+c]) - 128.0) / 128.0
			}
			samples[i] = sum / float64(channels)
		}
	} else {
		fullScale := float64(int64(1) << (uint(bitDepth) - 1))
		for i := range frames {
			sum := 0.0
			for c := range channels {
				sum += float64(buf.Data[i*channels+c]) / fullScale
			}
			samples[i] = sum / float64(channels)
		}
	}

	if channels > 1 {
		logging.Debug("reduced multi-channel WAV to mono", logging.Fields{
			"channels": channels,
		})
	}

	return New(samples, int(dec.SampleRate))
}
