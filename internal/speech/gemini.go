package speech

import (
	"context"
	"fmt"
	"mime"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/caption-synth/internal/audio"
	"github.com/nguyentantai21042004/caption-synth/internal/gemini"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

// GeminiSynthesizer uses a Gemini TTS model with a prebuilt voice.
type GeminiSynthesizer struct {
	client gemini.Client
	model  string
	voice  string
	logger logger.Logger
}

var _ Synthesizer = (*GeminiSynthesizer)(nil)

// NewGemini creates a GeminiSynthesizer.
func NewGemini(client gemini.Client, model, voice string, log logger.Logger) *GeminiSynthesizer {
	return &GeminiSynthesizer{client: client, model: model, voice: voice, logger: log}
}

func (s *GeminiSynthesizer) Synthesize(ctx context.Context, text, wavPath string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	s.logger.Info(ctx, "Synthesizing speech with %s (voice %s)", s.model, s.voice)

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: s.voice},
			},
		},
	}

	resp, err := s.client.Generate(ctx, s.model, genai.Text(text), cfg)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	blob, err := gemini.InlineData(resp)
	if err != nil {
		return fmt.Errorf("synthesize: %w: %v", ErrNoAudio, err)
	}

	rate := sampleRate(blob.MIMEType)
	if err := audio.WritePCM16(wavPath, blob.Data, rate, channels); err != nil {
		return fmt.Errorf("write speech: %w", err)
	}

	s.logger.Info(ctx, "Speech written: %s (%d Hz)", wavPath, rate)
	return nil
}

// sampleRate reads the rate parameter of an "audio/L16;rate=24000" MIME type.
func sampleRate(mimeType string) int {
	_, params, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return defaultSampleRate
	}
	rate, err := strconv.Atoi(params["rate"])
	if err != nil || rate <= 0 {
		return defaultSampleRate
	}
	return rate
}
