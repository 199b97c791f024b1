package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

// speechCreator is the subset of *openai.Client used here.
type speechCreator interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

var _ speechCreator = (*openai.Client)(nil)

// OpenAISynthesizer uses the OpenAI speech endpoint.
type OpenAISynthesizer struct {
	client speechCreator
	model  string
	voice  string
	logger logger.Logger
}

var _ Synthesizer = (*OpenAISynthesizer)(nil)

// NewOpenAI creates an OpenAISynthesizer authenticated with apiKey.
func NewOpenAI(apiKey, model, voice string, log logger.Logger) *OpenAISynthesizer {
	return &OpenAISynthesizer{
		client: openai.NewClient(apiKey),
		model:  model,
		voice:  voice,
		logger: log,
	}
}

// Synthesize requests raw PCM rather than WAV: the streamed WAV header does
// not declare the real data length, which audio.Load rejects.
func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, wavPath string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	s.logger.Info(ctx, "Synthesizing speech with %s (voice %s)", s.model, s.voice)

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return fmt.Errorf("read speech: %w", err)
	}
	if len(pcm) == 0 {
		return fmt.Errorf("synthesize: %w", ErrNoAudio)
	}

	if err := audio.WritePCM16(wavPath, pcm, defaultSampleRate, channels); err != nil {
		return fmt.Errorf("write speech: %w", err)
	}

	s.logger.Info(ctx, "Speech written: %s", wavPath)
	return nil
}
