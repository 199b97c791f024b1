// Package transcript exports subtitle cues as a readable .docx transcript.
package transcript

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// Line is one transcript paragraph.
type Line struct {
	Stamp string
	Text  string
}

// Lines turns segments into transcript lines stamped with their start time.
// Blank cues are skipped and consecutive repeats collapsed.
func Lines(segments []timescale.Segment) []Line {
	var lines []Line
	var prev string
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" || text == prev {
			continue
		}
		prev = text
		lines = append(lines, Line{Stamp: stamp(seg.StartCS), Text: text})
	}
	return lines
}

// WriteDocx writes the transcript of segments to outputPath.
func WriteDocx(title string, segments []timescale.Segment, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	for _, line := range Lines(segments) {
		p := doc.AddParagraph("")
		addStyledRun(p, "["+line.Stamp+"] ", true, fontSize)
		addStyledRun(p, line.Text, false, fontSize)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// stamp renders centiseconds as H:MM:SS or MM:SS.
func stamp(cs int64) string {
	total := cs / 100
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
