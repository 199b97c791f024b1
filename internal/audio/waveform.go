// Package audio loads and writes 16-bit PCM WAV containers.
package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
	bitDepth            = 16
)

// Waveform is a decoded 16-bit PCM signal. Samples are interleaved when
// Channels > 1. A Waveform is not modified after Load returns it.
type Waveform struct {
	Samples    []int16
	SampleRate int
	Channels   int
	// Duration in seconds, derived from the container's declared data size.
	Duration float64
}

// Frames returns the number of sample frames (samples per channel).
func (w *Waveform) Frames() int {
	if w.Channels == 0 {
		return 0
	}
	return len(w.Samples) / w.Channels
}

// Load decodes the WAV file at path. The duration comes from the header's
// declared data size; if the decoded sample count disagrees with it the file
// is treated as corrupt.
func Load(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrFormat, path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a RIFF/WAVE container", ErrFormat, path)
	}
	// Extensible float is 32-bit, so the bit depth check below rejects it.
	if d.WavAudioFormat != wavFormatPCM && d.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: %s: audio format %d is not integer PCM", ErrFormat, path, d.WavAudioFormat)
	}
	if d.BitDepth != bitDepth {
		return nil, fmt.Errorf("%w: %s: bit depth %d, want %d", ErrFormat, path, d.BitDepth, bitDepth)
	}
	if d.SampleRate == 0 || d.NumChans == 0 {
		return nil, fmt.Errorf("%w: %s: sample rate %d, channels %d", ErrFormat, path, d.SampleRate, d.NumChans)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrFormat, path, err)
	}

	declared := d.PCMSize / (bitDepth / 8)
	if len(buf.Data) != declared {
		return nil, fmt.Errorf("%w: %s: header declares %d samples, decoded %d", ErrFormat, path, declared, len(buf.Data))
	}
	if declared%int(d.NumChans) != 0 {
		return nil, fmt.Errorf("%w: %s: %d samples do not divide into %d channels", ErrFormat, path, declared, d.NumChans)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	rate := int(d.SampleRate)
	chans := int(d.NumChans)
	return &Waveform{
		Samples:    samples,
		SampleRate: rate,
		Channels:   chans,
		Duration:   float64(declared) / float64(rate*chans),
	}, nil
}
