package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/caption-synth/internal/logger"
	"github.com/nguyentantai21042004/caption-synth/internal/pipeline"
	"github.com/nguyentantai21042004/caption-synth/internal/subtitle"
	"github.com/nguyentantai21042004/caption-synth/internal/transcript"
)

// ErrNoGenerator indicates a prompt-only manifest with no script generator.
var ErrNoGenerator = errors.New("manifest needs a generated script but no generator is configured")

// Outcome lists a finished job's deliverables.
type Outcome struct {
	JobID      string
	Name       string
	Video      string
	Subtitle   string
	ASS        string
	Transcript string
	Script     string
	Cues       int
	Elapsed    time.Duration
}

// Process runs a job and only reports failure; used as the watcher handler.
func (p *implProcessor) Process(ctx context.Context, manifestPath string) error {
	_, err := p.Run(ctx, manifestPath)
	return err
}

// Run orchestrates the entire job: script, speech, subtitles, video
func (p *implProcessor) Run(ctx context.Context, manifestPath string) (*Outcome, error) {
	startTime := time.Now()
	jobID := uuid.NewString()[:8]
	ctx = logger.WithJob(ctx, jobID)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting job: %s", manifestPath)
	p.logger.Info(ctx, "========================================")

	m, err := LoadManifest(manifestPath, p.cfg.Whisper.Language)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	dirs, err := p.outputDirs()
	if err != nil {
		return nil, err
	}

	workDir, err := p.makeWorkDir()
	if err != nil {
		return nil, err
	}
	defer p.cleanupDir(ctx, workDir)

	out := &Outcome{
		JobID:      jobID,
		Name:       m.Name,
		Video:      filepath.Join(dirs.videos, m.Name+videoExt(m.Video)),
		Subtitle:   filepath.Join(dirs.subtitles, m.Name+".srt"),
		ASS:        filepath.Join(dirs.subtitles, m.Name+".ass"),
		Transcript: filepath.Join(dirs.transcripts, m.Name+".docx"),
		Script:     filepath.Join(dirs.scripts, m.Name+".txt"),
	}

	// Step 1: Obtain the narration script
	script, err := p.script(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	if err := os.WriteFile(out.Script, []byte(script+"\n"), 0644); err != nil {
		p.logger.Warn(ctx, "Failed to save script: %v", err)
	}

	// Step 2: Synthesize speech
	speechPath := filepath.Join(workDir, "narration.wav")
	if err := p.deps.Synthesizer.Synthesize(ctx, script, speechPath); err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	// Step 3: Timed subtitles from the narration
	res, err := p.subtitles(ctx, pipeline.Request{
		AudioPath:    speechPath,
		Language:     m.Language,
		SubtitlePath: out.Subtitle,
		ASSPath:      out.ASS,
		Style: subtitle.Style{
			FontName:  p.cfg.Subtitle.FontName,
			FontSize:  p.cfg.Subtitle.FontSize,
			Alignment: p.cfg.Subtitle.Alignment,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("subtitles: %w", err)
	}
	out.Cues = len(res.Segments)

	// Step 4: Replace the video's audio with the narration
	muxedPath := filepath.Join(workDir, "muxed"+videoExt(m.Video))
	if err := p.deps.Media.Mux(ctx, m.Video, speechPath, muxedPath); err != nil {
		return nil, fmt.Errorf("mux: %w", err)
	}

	// Step 5: Burn subtitles (from ASS: its timestamps are centisecond-native)
	if err := p.deps.Media.Burn(ctx, muxedPath, out.ASS, out.Video); err != nil {
		return nil, fmt.Errorf("burn subtitle: %w", err)
	}

	// Step 6: Transcript document
	if err := transcript.WriteDocx(m.Name, res.Segments, out.Transcript); err != nil {
		p.logger.Warn(ctx, "Failed to write transcript: %v", err)
		out.Transcript = ""
	}

	// Step 7: Archive the manifest so it won't be re-processed
	if err := p.moveToArchived(ctx, manifestPath); err != nil {
		p.logger.Warn(ctx, "Failed to move manifest to archived folder: %v", err)
	}

	out.Elapsed = time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Job completed successfully!")
	p.logger.Info(ctx, "Output video: %s (%s)", out.Video, fileSize(out.Video))
	p.logger.Info(ctx, "Output subtitle: %s (%d cues)", out.Subtitle, out.Cues)
	p.logger.Info(ctx, "Processing time: %s", out.Elapsed.Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return out, nil
}

func (p *implProcessor) script(ctx context.Context, m *Manifest) (string, error) {
	if s := strings.TrimSpace(m.Script); s != "" {
		p.logger.Info(ctx, "Using script from manifest (%d words)", len(strings.Fields(s)))
		return s, nil
	}
	if p.deps.Generator == nil {
		return "", ErrNoGenerator
	}
	return p.deps.Generator.Script(ctx, m.Prompt, m.Language)
}

// subtitles runs the pipeline on a fresh engine while holding a recognition
// slot.
func (p *implProcessor) subtitles(ctx context.Context, req pipeline.Request) (*pipeline.Result, error) {
	if err := p.recognition.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.recognition.Release(1)

	engine, err := p.deps.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("open engine: %w", err)
	}
	defer engine.Close()

	return p.deps.Pipeline.Run(ctx, engine, req)
}

func videoExt(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return ".mp4"
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "unknown size"
	}
	return humanize.Bytes(uint64(info.Size()))
}
