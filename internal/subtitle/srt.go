// Package subtitle serializes rescaled segments into numbered-cue subtitle
// documents.
package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
)

const (
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// Cue is one numbered subtitle entry.
type Cue struct {
	Index int
	Start string
	End   string
	Text  string
}

// Encoder turns segments into cues.
type Encoder struct {
	// DropDegenerate skips segments whose start equals their end.
	DropDegenerate bool
}

// FormatTimestamp renders centiseconds as HH:MM:SS,cc.
func FormatTimestamp(cs int64) string {
	ms := cs * 10
	h := ms / msPerHour
	m := (ms % msPerHour) / msPerMinute
	s := (ms % msPerMinute) / msPerSecond
	rem := ms % msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%02d", h, m, s, rem/10)
}

// Cues numbers segments from 1 in input order. Overlaps are kept.
func (e Encoder) Cues(segments []timescale.Segment) []Cue {
	cues := make([]Cue, 0, len(segments))
	for _, seg := range segments {
		if e.DropDegenerate && seg.StartCS == seg.EndCS {
			continue
		}
		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: FormatTimestamp(seg.StartCS),
			End:   FormatTimestamp(seg.EndCS),
			Text:  seg.Text,
		})
	}
	return cues
}

// Encode writes the cue blocks to w.
func (e Encoder) Encode(w io.Writer, segments []timescale.Segment) error {
	bw := bufio.NewWriter(w)
	for _, c := range e.Cues(segments) {
		if _, err := fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n", c.Index, c.Start, c.End, c.Text); err != nil {
			return fmt.Errorf("%w: cue %d: %v", ErrEncoding, c.Index, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrEncoding, err)
	}
	return nil
}

// WriteFile encodes segments into the file at path, replacing it.
func (e Encoder) WriteFile(path string, segments []timescale.Segment) error {
	return writeFile(path, func(w io.Writer) error {
		return e.Encode(w, segments)
	})
}

// Encode writes segments with the default encoder.
func Encode(w io.Writer, segments []timescale.Segment) error {
	return Encoder{}.Encode(w, segments)
}

// WriteFile writes segments to path with the default encoder.
func WriteFile(path string, segments []timescale.Segment) error {
	return Encoder{}.WriteFile(path, segments)
}

func writeFile(path string, encode func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrEncoding, path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrEncoding, path, err)
	}
	return nil
}
