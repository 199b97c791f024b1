package processor

import (
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/caption-synth/internal/config"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
	"github.com/nguyentantai21042004/caption-synth/internal/pipeline"
	"github.com/nguyentantai21042004/caption-synth/internal/speech"
)

// Deps are the collaborators a Processor drives. Generator may be nil when
// every manifest carries a literal script.
type Deps struct {
	Generator   ScriptGenerator
	Synthesizer speech.Synthesizer
	Pipeline    *pipeline.Pipeline
	NewEngine   EngineFactory
	Media       MediaOrchestrator
}

type implProcessor struct {
	cfg         *config.Config
	deps        Deps
	logger      logger.Logger
	recognition *semaphore.Weighted
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		deps:        deps,
		logger:      log,
		recognition: semaphore.NewWeighted(int64(max(cfg.Performance.MaxRecognition, 1))),
	}
}
