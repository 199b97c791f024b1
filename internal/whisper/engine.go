// Package whisper adapts the whisper.cpp bindings to segment.Engine.
//
// Segment bounds are reported exactly as whisper.cpp emits them (t0/t1 in
// internal frame ticks); the timescale package maps them to wall-clock time.
package whisper

import (
	"errors"
	"fmt"

	whispercpp "github.com/ggerganov/whisper.cpp/bindings/go"

	"github.com/nguyentantai21042004/caption-synth/internal/segment"
)

var (
	errClosed = errors.New("engine closed")
	errUsed   = errors.New("engine already ran; open a new one per run")
)

// Options configures model execution.
type Options struct {
	Threads int
}

// Engine owns one loaded whisper.cpp model and runs inference once.
type Engine struct {
	ctx     *whispercpp.Context
	threads int
	used    bool
}

var _ segment.Engine = (*Engine)(nil)

// Open loads the model at modelPath. The caller must call Close.
func Open(modelPath string, opts Options) (*Engine, error) {
	ctx := whispercpp.Whisper_init(modelPath)
	if ctx == nil {
		return nil, fmt.Errorf("%w: load model %q", segment.ErrEngine, modelPath)
	}
	return &Engine{ctx: ctx, threads: opts.Threads}, nil
}

// Run decodes samples with beam search. The bindings do not expose the
// patience factor, so whisper.cpp's fixed default applies.
func (e *Engine) Run(samples []float32, language string, decoding segment.Decoding) error {
	if e.ctx == nil {
		return errClosed
	}
	if e.used {
		return errUsed
	}
	e.used = true

	params := e.ctx.Whisper_full_default_params(whispercpp.SAMPLING_BEAM_SEARCH)
	params.SetBeamSize(decoding.BeamSize)
	if e.threads > 0 {
		params.SetThreads(e.threads)
	}
	params.SetTranslate(false)
	params.SetPrintProgress(false)
	params.SetPrintRealtime(false)

	id := e.ctx.Whisper_lang_id(language)
	if id < 0 {
		return fmt.Errorf("language %q not supported by model", language)
	}
	if err := params.SetLanguage(id); err != nil {
		return fmt.Errorf("set language %q: %w", language, err)
	}

	if err := e.ctx.Whisper_full(params, samples, nil, nil, nil); err != nil {
		return fmt.Errorf("whisper_full: %w", err)
	}
	return nil
}

func (e *Engine) NumSegments() int {
	if e.ctx == nil {
		return 0
	}
	return e.ctx.Whisper_full_n_segments()
}

func (e *Engine) SegmentBounds(i int) (int64, int64) {
	if e.ctx == nil {
		return 0, 0
	}
	return e.ctx.Whisper_full_get_segment_t0(i), e.ctx.Whisper_full_get_segment_t1(i)
}

func (e *Engine) SegmentText(i int) string {
	if e.ctx == nil {
		return ""
	}
	return e.ctx.Whisper_full_get_segment_text(i)
}

// Close frees the model. It is safe to call more than once.
func (e *Engine) Close() error {
	if e.ctx != nil {
		e.ctx.Whisper_free()
		e.ctx = nil
	}
	return nil
}
