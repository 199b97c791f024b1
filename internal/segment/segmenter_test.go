package segment

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

func testWaveform(frames, channels int) *audio.Waveform {
	samples := make([]int16, frames*channels)
	for i := range samples {
		samples[i] = int16((i*131)%4096 - 2048)
	}
	return &audio.Waveform{
		Samples:    samples,
		SampleRate: 16000,
		Channels:   channels,
		Duration:   float64(frames) / 16000,
	}
}

func TestSegment(t *testing.T) {
	ctx := context.Background()
	s := New(Decoding{BeamSize: 3, Patience: 1.5}, nopLogger{})
	engine := &fakeEngine{}

	got, err := s.Segment(ctx, engine, testWaveform(40000, 1), "en")
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Start != 0 || got[2].End != 250 {
		t.Errorf("bounds = %+v", got)
	}
	if !strings.HasPrefix(got[0].Text, "chunk 0 sum") || strings.HasSuffix(got[0].Text, " ") {
		t.Errorf("text not trimmed: %q", got[0].Text)
	}
	if engine.language != "en" {
		t.Errorf("language = %q, want en", engine.language)
	}
	if diff := cmp.Diff(Decoding{BeamSize: 3, Patience: 1.5}, engine.decoding); diff != "" {
		t.Errorf("decoding mismatch (-want +got):\n%s", diff)
	}
	if engine.closed {
		t.Error("Segment() closed an engine it does not own")
	}
}

func TestSegmentDownmixesStereo(t *testing.T) {
	engine := &fakeEngine{}
	s := New(DefaultDecoding, nopLogger{})

	if _, err := s.Segment(context.Background(), engine, testWaveform(16000, 2), "en"); err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(engine.got) != 16000 {
		t.Errorf("engine received %d samples, want 16000 mono samples", len(engine.got))
	}
}

func TestSegmentEngineFailure(t *testing.T) {
	engine := &fakeEngine{runErr: errors.New("model asset missing")}
	s := New(DefaultDecoding, nopLogger{})

	_, err := s.Segment(context.Background(), engine, testWaveform(16000, 1), "en")
	if !errors.Is(err, ErrEngine) {
		t.Errorf("Segment() error = %v, want ErrEngine", err)
	}
}

func TestSegmentDeterministic(t *testing.T) {
	ctx := context.Background()
	s := New(DefaultDecoding, nopLogger{})
	wf := testWaveform(50000, 2)

	first, err := s.Segment(ctx, &fakeEngine{}, wf, "fr")
	if err != nil {
		t.Fatalf("first Segment() error = %v", err)
	}
	second, err := s.Segment(ctx, &fakeEngine{}, wf, "fr")
	if err != nil {
		t.Fatalf("second Segment() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("runs differ (-first +second):\n%s", diff)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	s := New(Decoding{}, nopLogger{})
	if diff := cmp.Diff(DefaultDecoding, s.Decoding()); diff != "" {
		t.Errorf("Decoding() mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentLogsOnlyAppliedDecoding(t *testing.T) {
	var buf bytes.Buffer
	s := New(Decoding{BeamSize: 4, Patience: 2.0}, logger.NewWithWriter(&buf, "debug"))

	if _, err := s.Segment(context.Background(), &fakeEngine{}, testWaveform(16000, 1), "en"); err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "beam=4") {
		t.Errorf("log missing beam size: %q", out)
	}
	if strings.Contains(out, "patience") {
		t.Errorf("log reports patience as applied: %q", out)
	}
}
