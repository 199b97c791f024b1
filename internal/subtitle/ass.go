package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nguyentantai21042004/caption-synth/internal/timescale"
)

// Style is the single fixed style applied to every burned-in cue.
type Style struct {
	FontName string
	FontSize int
	// Alignment uses numpad layout: 2 is bottom centre.
	Alignment int
}

// DefaultStyle is bottom-centred Arial.
var DefaultStyle = Style{FontName: "Arial", FontSize: 18, Alignment: 2}

const assHeader = `[Script Info]
ScriptType: v4.00+
PlayResX: 384
PlayResY: 288
WrapStyle: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,0,0,0,0,100,100,0,0,1,1,0,%d,10,10,10,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// FormatASSTimestamp renders centiseconds as H:MM:SS.cc.
func FormatASSTimestamp(cs int64) string {
	h := cs / 360_000
	m := (cs % 360_000) / 6_000
	s := (cs % 6_000) / 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, cs%100)
}

// EncodeASS writes an Advanced SubStation document. ASS timestamps are
// centisecond-native, so burn-in renders exact cue times.
func (e Encoder) EncodeASS(w io.Writer, segments []timescale.Segment, style Style) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, assHeader, style.FontName, style.FontSize, style.Alignment); err != nil {
		return fmt.Errorf("%w: header: %v", ErrEncoding, err)
	}

	for _, seg := range segments {
		if e.DropDegenerate && seg.StartCS == seg.EndCS {
			continue
		}
		text := strings.ReplaceAll(strings.ReplaceAll(seg.Text, "\r\n", "\n"), "\n", `\N`)
		if _, err := fmt.Fprintf(bw, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			FormatASSTimestamp(seg.StartCS), FormatASSTimestamp(seg.EndCS), text); err != nil {
			return fmt.Errorf("%w: dialogue: %v", ErrEncoding, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %v", ErrEncoding, err)
	}
	return nil
}

// WriteASS writes an ASS document to path, replacing it.
func (e Encoder) WriteASS(path string, segments []timescale.Segment, style Style) error {
	return writeFile(path, func(w io.Writer) error {
		return e.EncodeASS(w, segments, style)
	})
}
