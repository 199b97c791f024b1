package segment

import "fmt"

// int16 full-scale magnitude.
const fullScale = 32768.0

// Normalize converts 16-bit samples to float32 amplitudes in [-1.0, 1.0].
func Normalize(samples []int16) ([]float32, error) {
	out := make([]float32, 0, len(samples))
	for _, s := range samples {
		out = append(out, float32(float64(s)/fullScale))
	}
	if len(out) != len(samples) {
		return nil, fmt.Errorf("%w: normalized %d samples from %d", ErrConversion, len(out), len(samples))
	}
	return out, nil
}

// Downmix averages interleaved channels into a mono signal. A trailing
// partial frame is dropped.
func Downmix(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += samples[i*channels+c]
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}
