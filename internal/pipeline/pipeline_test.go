package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
	"github.com/nguyentantai21042004/caption-synth/internal/segment"
	"github.com/nguyentantai21042004/caption-synth/internal/subtitle"
	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
)

// scriptedEngine replays fixed segments regardless of input.
type scriptedEngine struct {
	segments []segment.Raw
	err      error
	samples  int
}

func (e *scriptedEngine) Run(samples []float32, _ string, _ segment.Decoding) error {
	e.samples = len(samples)
	return e.err
}

func (e *scriptedEngine) NumSegments() int { return len(e.segments) }

func (e *scriptedEngine) SegmentBounds(i int) (int64, int64) {
	return e.segments[i].Start, e.segments[i].End
}

func (e *scriptedEngine) SegmentText(i int) string { return e.segments[i].Text }

func (e *scriptedEngine) Close() error { return nil }

func newTestPipeline() *Pipeline {
	log := logger.NewWithWriter(io.Discard, "error")
	return New(segment.New(segment.DefaultDecoding, log), subtitle.Encoder{}, log)
}

func writeSilence(t *testing.T, dir string, seconds, rate, channels int) string {
	t.Helper()
	path := filepath.Join(dir, "speech.wav")
	if err := audio.WriteSamples(path, make([]int16, seconds*rate*channels), rate, channels); err != nil {
		t.Fatalf("WriteSamples() error = %v", err)
	}
	return path
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	engine := &scriptedEngine{segments: []segment.Raw{
		{Start: 0, End: 500, Text: "first half"},
		{Start: 500, End: 1000, Text: "second half"},
	}}
	req := Request{
		AudioPath:    writeSilence(t, dir, 10, 16000, 1),
		Language:     "en",
		SubtitlePath: filepath.Join(dir, "speech.srt"),
		ASSPath:      filepath.Join(dir, "speech.ass"),
	}

	res, err := newTestPipeline().Run(context.Background(), engine, req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if engine.samples != 160000 {
		t.Errorf("engine received %d samples, want 160000", engine.samples)
	}
	wantSegments := []timescale.Segment{
		{StartCS: 0, EndCS: 500, Text: "first half"},
		{StartCS: 500, EndCS: 1000, Text: "second half"},
	}
	if diff := cmp.Diff(wantSegments, res.Segments); diff != "" {
		t.Errorf("Segments mismatch (-want +got):\n%s", diff)
	}
	if res.Duration != 10 || res.Scale.MaxEngineTime != 1000 {
		t.Errorf("Duration = %v, Scale = %+v", res.Duration, res.Scale)
	}

	data, err := os.ReadFile(req.SubtitlePath)
	if err != nil {
		t.Fatal(err)
	}
	want := "1\n00:00:00,00 --> 00:00:05,00\nfirst half\n\n" +
		"2\n00:00:05,00 --> 00:00:10,00\nsecond half\n\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("srt mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(req.ASSPath); err != nil {
		t.Errorf("ASS file not written: %v", err)
	}
}

func TestRunStereoDownmixed(t *testing.T) {
	dir := t.TempDir()
	engine := &scriptedEngine{segments: []segment.Raw{{Start: 0, End: 100, Text: "hi"}}}
	req := Request{
		AudioPath:    writeSilence(t, dir, 2, 16000, 2),
		Language:     "en",
		SubtitlePath: filepath.Join(dir, "speech.srt"),
	}

	res, err := newTestPipeline().Run(context.Background(), engine, req)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if engine.samples != 32000 {
		t.Errorf("engine received %d samples, want 32000", engine.samples)
	}
	if got := res.Segments[0].EndCS; got != 200 {
		t.Errorf("EndCS = %d, want 200", got)
	}
}

func TestRunStageErrors(t *testing.T) {
	dir := t.TempDir()
	wav := writeSilence(t, dir, 1, 16000, 1)
	oneSegment := []segment.Raw{{Start: 0, End: 100, Text: "x"}}

	tests := []struct {
		name      string
		engine    *scriptedEngine
		req       Request
		wantStage string
		wantErr   error
	}{
		{
			name:      "unreadable audio",
			engine:    &scriptedEngine{segments: oneSegment},
			req:       Request{AudioPath: filepath.Join(dir, "missing.wav"), SubtitlePath: filepath.Join(dir, "a.srt")},
			wantStage: StageLoad,
			wantErr:   audio.ErrFormat,
		},
		{
			name:      "engine failure",
			engine:    &scriptedEngine{err: errors.New("out of memory")},
			req:       Request{AudioPath: wav, SubtitlePath: filepath.Join(dir, "b.srt")},
			wantStage: StageSegment,
			wantErr:   segment.ErrEngine,
		},
		{
			name:      "no speech",
			engine:    &scriptedEngine{},
			req:       Request{AudioPath: wav, SubtitlePath: filepath.Join(dir, "c.srt")},
			wantStage: StageRescale,
			wantErr:   timescale.ErrNoSpeech,
		},
		{
			name:      "unwritable output",
			engine:    &scriptedEngine{segments: oneSegment},
			req:       Request{AudioPath: wav, SubtitlePath: filepath.Join(dir, "nope", "d.srt")},
			wantStage: StageEncode,
			wantErr:   subtitle.ErrEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestPipeline().Run(context.Background(), tt.engine, tt.req)
			if res != nil {
				t.Errorf("Run() result = %+v, want nil", res)
			}
			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				t.Fatalf("Run() error = %v, want *StageError", err)
			}
			if stageErr.Stage != tt.wantStage {
				t.Errorf("Stage = %q, want %q", stageErr.Stage, tt.wantStage)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunEncodeFailureLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		AudioPath:    writeSilence(t, dir, 1, 16000, 1),
		Language:     "en",
		SubtitlePath: filepath.Join(dir, "speech.srt"),
		ASSPath:      filepath.Join(dir, "missing", "speech.ass"),
	}
	engine := &scriptedEngine{segments: []segment.Raw{{Start: 0, End: 100, Text: "x"}}}

	_, err := newTestPipeline().Run(context.Background(), engine, req)
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageEncode {
		t.Fatalf("Run() error = %v, want encode StageError", err)
	}
	if _, err := os.Stat(req.SubtitlePath); !os.IsNotExist(err) {
		t.Errorf("srt left behind after failed run: %v", err)
	}
}
