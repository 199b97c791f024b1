package processor

import (
	"context"

	"github.com/nguyentantai21042004/caption-synth/internal/segment"
)

// Processor turns a job manifest into narrated, subtitled deliverables.
type Processor interface {
	Process(ctx context.Context, manifestPath string) error
	Run(ctx context.Context, manifestPath string) (*Outcome, error)
}

// EngineFactory opens a fresh recognition engine for one job.
type EngineFactory func() (segment.Engine, error)

// ScriptGenerator writes narration from a prompt.
type ScriptGenerator interface {
	Script(ctx context.Context, prompt, language string) (string, error)
}

// MediaOrchestrator muxes and burns with an external tool.
type MediaOrchestrator interface {
	Mux(ctx context.Context, videoPath, audioPath, outPath string) error
	Burn(ctx context.Context, videoPath, subtitlePath, outPath string) error
}
