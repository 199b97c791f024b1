// Package media drives ffmpeg to mux narration into a video and burn
// subtitles into its picture.
package media

import (
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
	"github.com/nguyentantai21042004/caption-synth/pkg/executor"
)

// Options are the ffmpeg encoding settings.
type Options struct {
	Encoder      string
	VideoBitrate string
	AudioCodec   string
	Preset       string
	// TempDir holds per-burn scratch directories.
	TempDir string
}

// Orchestrator runs ffmpeg jobs. Callers see success or failure only.
type Orchestrator struct {
	executor executor.Executor
	opts     Options
	logger   logger.Logger
}

// New creates an Orchestrator.
func New(exec executor.Executor, opts Options, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		executor: exec,
		opts:     opts,
		logger:   log,
	}
}
