// Package segment turns a waveform into raw recognized segments.
package segment

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

// Segmenter prepares samples for an engine and collects its segments.
type Segmenter struct {
	decoding Decoding
	logger   logger.Logger
}

// New creates a Segmenter with a fixed decoding strategy.
func New(decoding Decoding, log logger.Logger) *Segmenter {
	if decoding.BeamSize <= 0 {
		decoding.BeamSize = DefaultDecoding.BeamSize
	}
	if decoding.Patience <= 0 {
		decoding.Patience = DefaultDecoding.Patience
	}
	return &Segmenter{decoding: decoding, logger: log}
}

// Decoding returns the strategy passed to every engine run.
func (s *Segmenter) Decoding() Decoding {
	return s.decoding
}

// Segment runs engine over wf and returns segments in emission order. The
// engine is used once; the caller keeps ownership and closes it.
func (s *Segmenter) Segment(ctx context.Context, engine Engine, wf *audio.Waveform, language string) ([]Raw, error) {
	samples, err := Normalize(wf.Samples)
	if err != nil {
		return nil, err
	}

	if wf.Channels > 1 {
		s.logger.Debug(ctx, "Downmixing %d channels to mono", wf.Channels)
		samples = Downmix(samples, wf.Channels)
	}

	// Patience is handed to the engine but not every engine honours it.
	s.logger.Debug(ctx, "Running recognition: %d samples, language=%s, beam=%d",
		len(samples), language, s.decoding.BeamSize)

	if err := engine.Run(samples, language, s.decoding); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngine, err)
	}

	n := engine.NumSegments()
	segments := make([]Raw, 0, n)
	for i := 0; i < n; i++ {
		start, end := engine.SegmentBounds(i)
		segments = append(segments, Raw{
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(engine.SegmentText(i)),
		})
	}

	s.logger.Info(ctx, "Recognition emitted %d segments", len(segments))
	return segments, nil
}
