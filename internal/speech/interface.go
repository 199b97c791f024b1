// Package speech synthesizes narration audio into 16-bit PCM WAV files.
package speech

import (
	"context"
	"errors"
)

// Synthesizer renders text as speech into a WAV file at wavPath.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, wavPath string) error
}

// ErrEmptyText indicates there is nothing to synthesize.
var ErrEmptyText = errors.New("empty text")

// ErrNoAudio indicates the service response carried no audio payload.
var ErrNoAudio = errors.New("response has no audio")

// Both services return raw little-endian 16-bit mono PCM at this rate unless
// told otherwise.
const (
	defaultSampleRate = 24000
	channels          = 1
)
