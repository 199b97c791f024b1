package segment

import (
	"context"
	"errors"
	"fmt"
)

// fakeEngine emits one segment per second of 16 kHz audio, with bounds in
// 10 ms ticks and text derived from the samples, so its output is a pure
// function of its input.
type fakeEngine struct {
	runs     int
	runErr   error
	got      []float32
	language string
	decoding Decoding
	segments []Raw
	closed   bool
}

func (e *fakeEngine) Run(samples []float32, language string, decoding Decoding) error {
	e.runs++
	if e.runs > 1 {
		return errors.New("engine already used")
	}
	if e.runErr != nil {
		return e.runErr
	}
	e.got = samples
	e.language = language
	e.decoding = decoding

	const perSegment = 16000
	for off := 0; off < len(samples); off += perSegment {
		end := min(off+perSegment, len(samples))
		var sum float64
		for _, s := range samples[off:end] {
			sum += float64(s)
		}
		e.segments = append(e.segments, Raw{
			Start: int64(off / 160),
			End:   int64(end / 160),
			Text:  fmt.Sprintf(" chunk %d sum %.4f ", off/perSegment, sum),
		})
	}
	return nil
}

func (e *fakeEngine) NumSegments() int { return len(e.segments) }

func (e *fakeEngine) SegmentBounds(i int) (int64, int64) {
	return e.segments[i].Start, e.segments[i].End
}

func (e *fakeEngine) SegmentText(i int) string { return e.segments[i].Text }

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(_ context.Context, _ string, _ ...interface{}) {}
func (nopLogger) Info(_ context.Context, _ string, _ ...interface{})  {}
func (nopLogger) Warn(_ context.Context, _ string, _ ...interface{})  {}
func (nopLogger) Error(_ context.Context, _ string, _ ...interface{}) {}
