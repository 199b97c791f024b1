// Package pipeline chains audio loading, recognition, time rescaling and
// subtitle encoding into a single synchronous run.
package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
	"github.com/nguyentantai21042004/caption-synth/internal/segment"
	"github.com/nguyentantai21042004/caption-synth/internal/subtitle"
	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
)

// Request describes one run.
type Request struct {
	AudioPath    string
	Language     string
	SubtitlePath string
	// ASSPath, when set, also receives the cues as a styled ASS document.
	ASSPath string
	Style   subtitle.Style
}

// Result is what a successful run produced.
type Result struct {
	Duration float64
	Scale    timescale.Scale
	Segments []timescale.Segment
	Elapsed  time.Duration
}

// Pipeline runs the subtitle synthesis stages in order.
type Pipeline struct {
	segmenter *segment.Segmenter
	encoder   subtitle.Encoder
	logger    logger.Logger
}

// New creates a Pipeline.
func New(segmenter *segment.Segmenter, encoder subtitle.Encoder, log logger.Logger) *Pipeline {
	return &Pipeline{
		segmenter: segmenter,
		encoder:   encoder,
		logger:    log,
	}
}

// Run executes every stage against engine, which it uses once and does not
// close. Any failure aborts the remaining stages and is returned as a
// *StageError.
func (p *Pipeline) Run(ctx context.Context, engine segment.Engine, req Request) (*Result, error) {
	startTime := time.Now()

	// Step 1: Load audio
	wf, err := audio.Load(req.AudioPath)
	if err != nil {
		return nil, &StageError{Stage: StageLoad, Err: err}
	}
	p.logger.Info(ctx, "Loaded audio: %s (%.2fs, %d Hz, %d ch)", req.AudioPath, wf.Duration, wf.SampleRate, wf.Channels)

	// Step 2: Recognize segments
	raw, err := p.segmenter.Segment(ctx, engine, wf, req.Language)
	if err != nil {
		return nil, &StageError{Stage: StageSegment, Err: err}
	}

	// Step 3: Map engine time to wall-clock time
	segments, scale, err := timescale.Rescale(raw, wf.Duration)
	if err != nil {
		return nil, &StageError{Stage: StageRescale, Err: err}
	}
	p.logger.Debug(ctx, "Time scale: max engine time %d -> %.2fs", scale.MaxEngineTime, scale.Duration)

	// Step 4: Encode subtitles
	if err := p.encode(req, segments); err != nil {
		return nil, &StageError{Stage: StageEncode, Err: err}
	}

	elapsed := time.Since(startTime)
	p.logger.Info(ctx, "Subtitles written: %s (%d cues, %s)", req.SubtitlePath, len(segments), elapsed)

	return &Result{
		Duration: wf.Duration,
		Scale:    scale,
		Segments: segments,
		Elapsed:  elapsed,
	}, nil
}

// encode writes every requested subtitle file. On failure none of them is left
// behind.
func (p *Pipeline) encode(req Request, segments []timescale.Segment) error {
	written := make([]string, 0, 2)
	fail := func(err error) error {
		for _, path := range written {
			os.Remove(path)
		}
		return err
	}

	written = append(written, req.SubtitlePath)
	if err := p.encoder.WriteFile(req.SubtitlePath, segments); err != nil {
		return fail(err)
	}

	if req.ASSPath != "" {
		style := req.Style
		if style == (subtitle.Style{}) {
			style = subtitle.DefaultStyle
		}
		written = append(written, req.ASSPath)
		if err := p.encoder.WriteASS(req.ASSPath, segments, style); err != nil {
			return fail(err)
		}
	}
	return nil
}
