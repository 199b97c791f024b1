// Package timescale maps engine time units onto wall-clock centiseconds.
package timescale

import (
	"fmt"
	"math"

	"github.com/nguyentantai21042004/caption-synth/internal/segment"
)

// Segment is a recognized span in wall-clock centiseconds.
type Segment struct {
	StartCS int64
	EndCS   int64
	Text    string
}

// Scale is a single linear mapping from engine time to wall-clock time.
type Scale struct {
	MaxEngineTime int64
	// Duration of the source audio in seconds.
	Duration float64
}

// New anchors the scale to the largest segment end across raw: that end is
// taken to coincide with the end of the audio. When speech stops before the
// audio does (trailing silence) every timestamp is stretched accordingly;
// this is a known limitation of the mapping, not corrected here.
func New(raw []segment.Raw, duration float64) (Scale, error) {
	if len(raw) == 0 {
		return Scale{}, ErrNoSpeech
	}

	var maxEnd int64
	for _, r := range raw {
		if r.End > maxEnd {
			maxEnd = r.End
		}
	}
	if maxEnd <= 0 {
		return Scale{}, fmt.Errorf("%w: %d segments all end at engine time 0", ErrNoSpeech, len(raw))
	}

	return Scale{MaxEngineTime: maxEnd, Duration: duration}, nil
}

// Rescale converts one engine time to centiseconds.
func (s Scale) Rescale(engineTime int64) int64 {
	seconds := float64(engineTime) / float64(s.MaxEngineTime) * s.Duration
	return int64(math.Round(seconds * 100))
}

// Apply rescales every segment, keeping order. Zero-length segments are
// passed through.
func (s Scale) Apply(raw []segment.Raw) []Segment {
	out := make([]Segment, len(raw))
	for i, r := range raw {
		out[i] = Segment{
			StartCS: s.Rescale(r.Start),
			EndCS:   s.Rescale(r.End),
			Text:    r.Text,
		}
	}
	return out
}

// Rescale builds a Scale from raw and applies it.
func Rescale(raw []segment.Raw, duration float64) ([]Segment, Scale, error) {
	scale, err := New(raw, duration)
	if err != nil {
		return nil, Scale{}, err
	}
	return scale.Apply(raw), scale, nil
}
