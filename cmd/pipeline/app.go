package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/caption-synth/internal/config"
	"github.com/nguyentantai21042004/caption-synth/internal/gemini"
	"github.com/nguyentantai21042004/caption-synth/internal/generate"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
	"github.com/nguyentantai21042004/caption-synth/internal/media"
	"github.com/nguyentantai21042004/caption-synth/internal/pipeline"
	"github.com/nguyentantai21042004/caption-synth/internal/processor"
	"github.com/nguyentantai21042004/caption-synth/internal/segment"
	"github.com/nguyentantai21042004/caption-synth/internal/speech"
	"github.com/nguyentantai21042004/caption-synth/internal/subtitle"
	"github.com/nguyentantai21042004/caption-synth/internal/whisper"
	"github.com/nguyentantai21042004/caption-synth/pkg/executor"
)

var (
	errConfig           = errors.New("configuration error")
	errOpenAIKeyMissing = errors.New("OPENAI_API_KEY is not set")
)

// app holds what every subcommand shares once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("%w: %v", errConfig, err)
	}
	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level)
	return nil
}

func (a *app) segmenter() *segment.Segmenter {
	return segment.New(segment.Decoding{
		BeamSize: a.cfg.Whisper.BeamSize,
		Patience: a.cfg.Whisper.Patience,
	}, a.log)
}

func (a *app) encoder() subtitle.Encoder {
	return subtitle.Encoder{DropDegenerate: a.cfg.Subtitle.DropDegenerate}
}

func (a *app) style() subtitle.Style {
	return subtitle.Style{
		FontName:  a.cfg.Subtitle.FontName,
		FontSize:  a.cfg.Subtitle.FontSize,
		Alignment: a.cfg.Subtitle.Alignment,
	}
}

func (a *app) pipeline() *pipeline.Pipeline {
	return pipeline.New(a.segmenter(), a.encoder(), a.log)
}

// openEngine loads the configured model; each call yields a single-use engine.
func (a *app) openEngine() (segment.Engine, error) {
	return whisper.Open(a.cfg.Whisper.ModelPath, whisper.Options{Threads: a.cfg.Whisper.Threads})
}

// processor wires the full job chain. Script generation is only available
// when Gemini keys are present.
func (a *app) processor() (processor.Processor, error) {
	keys := geminiKeys()

	var gen processor.ScriptGenerator
	var client gemini.Client
	if len(keys) > 0 {
		client = gemini.New(keys, a.log)
		gen = generate.New(client, a.cfg.Gemini.Model, a.log)
	}

	var synth speech.Synthesizer
	switch a.cfg.Speech.Provider {
	case config.ProviderOpenAI:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, errOpenAIKeyMissing
		}
		synth = speech.NewOpenAI(key, a.cfg.OpenAI.TTSModel, a.cfg.OpenAI.Voice, a.log)
	default:
		if client == nil {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEYS", gemini.ErrNoKeys)
		}
		synth = speech.NewGemini(client, a.cfg.Gemini.TTSModel, a.cfg.Gemini.Voice, a.log)
	}

	orchestrator := media.New(executor.New(), media.Options{
		Encoder:      a.cfg.FFmpeg.Encoder,
		VideoBitrate: a.cfg.FFmpeg.VideoBitrate,
		AudioCodec:   a.cfg.FFmpeg.AudioCodec,
		Preset:       a.cfg.FFmpeg.Preset,
		TempDir:      a.cfg.Paths.Temp,
	}, a.log)

	return processor.New(a.cfg, processor.Deps{
		Generator:   gen,
		Synthesizer: synth,
		Pipeline:    a.pipeline(),
		NewEngine:   a.openEngine,
		Media:       orchestrator,
	}, a.log), nil
}

// geminiKeys reads a comma separated key list for rotation.
func geminiKeys() []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		if k := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
