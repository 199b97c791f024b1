package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/caption-synth/internal/lang"
)

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Subtitle    SubtitleConfig    `yaml:"subtitle"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Speech      SpeechConfig      `yaml:"speech"`
}

type WhisperConfig struct {
	ModelPath string  `yaml:"model_path"`
	Language  string  `yaml:"language"`
	Threads   int     `yaml:"threads"`
	BeamSize  int     `yaml:"beam_size"`
	Patience  float64 `yaml:"patience"`
}

type FFmpegConfig struct {
	VideoBitrate string `yaml:"video_bitrate"`
	AudioCodec   string `yaml:"audio_codec"`
	Encoder      string `yaml:"encoder"`
	Preset       string `yaml:"preset"`
}

type SubtitleConfig struct {
	FontName       string `yaml:"font_name"`
	FontSize       int    `yaml:"font_size"`
	Alignment      int    `yaml:"alignment"`
	DropDegenerate bool   `yaml:"drop_degenerate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent  int `yaml:"max_concurrent"`
	MaxRecognition int `yaml:"max_recognition"`
}

type GeminiConfig struct {
	Model    string `yaml:"model"`
	TTSModel string `yaml:"tts_model"`
	Voice    string `yaml:"voice"`
}

type OpenAIConfig struct {
	TTSModel string `yaml:"tts_model"`
	Voice    string `yaml:"voice"`
}

type SpeechConfig struct {
	Provider string `yaml:"provider"`
}

// Speech providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Load reads the YAML file at path and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("whisper.language is required")
	}
	code, err := lang.Parse(c.Whisper.Language)
	if err != nil {
		return fmt.Errorf("whisper.language: %w", err)
	}
	c.Whisper.Language = code
	if c.FFmpeg.Encoder == "" {
		return fmt.Errorf("ffmpeg.encoder is required")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Whisper.BeamSize < 0 {
		return fmt.Errorf("whisper.beam_size must not be negative")
	}
	if c.Whisper.Patience < 0 {
		return fmt.Errorf("whisper.patience must not be negative")
	}

	switch c.Speech.Provider {
	case "":
		c.Speech.Provider = ProviderGemini
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("speech.provider %q is not supported", c.Speech.Provider)
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxRecognition == 0 {
		c.Performance.MaxRecognition = 1
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.BeamSize == 0 {
		c.Whisper.BeamSize = 5
	}
	if c.Whisper.Patience == 0 {
		c.Whisper.Patience = 1.0
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.VideoBitrate == "" {
		c.FFmpeg.VideoBitrate = "5M"
	}
	if c.Subtitle.FontName == "" {
		c.Subtitle.FontName = "Arial"
	}
	if c.Subtitle.FontSize == 0 {
		c.Subtitle.FontSize = 18
	}
	if c.Subtitle.Alignment == 0 {
		c.Subtitle.Alignment = 2
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.TTSModel == "" {
		c.Gemini.TTSModel = "gemini-2.5-flash-preview-tts"
	}
	if c.Gemini.Voice == "" {
		c.Gemini.Voice = "Kore"
	}
	if c.OpenAI.TTSModel == "" {
		c.OpenAI.TTSModel = "tts-1"
	}
	if c.OpenAI.Voice == "" {
		c.OpenAI.Voice = "alloy"
	}

	return nil
}
