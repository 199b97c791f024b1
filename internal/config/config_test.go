package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		Whisper: WhisperConfig{
			ModelPath: "models/test.bin",
			Language:  "en",
		},
		FFmpeg: FFmpegConfig{
			Encoder: "h264_videotoolbox",
		},
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing model path",
			mutate:  func(c *Config) { c.Whisper.ModelPath = "" },
			wantErr: true,
		},
		{
			name:    "missing paths",
			mutate:  func(c *Config) { c.Paths = PathsConfig{} },
			wantErr: true,
		},
		{
			name:    "unknown language",
			mutate:  func(c *Config) { c.Whisper.Language = "zz" },
			wantErr: true,
		},
		{
			name:    "three letter language",
			mutate:  func(c *Config) { c.Whisper.Language = "eng" },
			wantErr: true,
		},
		{
			name:    "negative beam size",
			mutate:  func(c *Config) { c.Whisper.BeamSize = -1 },
			wantErr: true,
		},
		{
			name:    "unsupported speech provider",
			mutate:  func(c *Config) { c.Speech.Provider = "espeak" },
			wantErr: true,
		},
		{
			name:    "openai speech provider",
			mutate:  func(c *Config) { c.Speech.Provider = ProviderOpenAI },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Whisper.BeamSize != 5 {
		t.Errorf("BeamSize = %d, want 5", cfg.Whisper.BeamSize)
	}
	if cfg.Whisper.Patience != 1.0 {
		t.Errorf("Patience = %v, want 1.0", cfg.Whisper.Patience)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Performance.MaxConcurrent)
	}
	if cfg.Performance.MaxRecognition != 1 {
		t.Errorf("MaxRecognition = %d, want 1", cfg.Performance.MaxRecognition)
	}
	if cfg.Speech.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.Speech.Provider, ProviderGemini)
	}
	if cfg.Subtitle.Alignment != 2 {
		t.Errorf("Alignment = %d, want 2", cfg.Subtitle.Alignment)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
whisper:
  model_path: "models/test.bin"
  language: "EN"
  beam_size: 3
  patience: 2.0

ffmpeg:
  video_bitrate: "5M"
  audio_codec: "aac"
  encoder: "h264_videotoolbox"

subtitle:
  font_name: "Helvetica"
  drop_degenerate: true

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "info"
`

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Whisper.Language != "en" {
		t.Errorf("Language = %v, want %v", cfg.Whisper.Language, "en")
	}
	if cfg.Whisper.BeamSize != 3 {
		t.Errorf("BeamSize = %v, want 3", cfg.Whisper.BeamSize)
	}
	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
	if cfg.Subtitle.FontName != "Helvetica" || !cfg.Subtitle.DropDegenerate {
		t.Errorf("Subtitle = %+v", cfg.Subtitle)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("whisper: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should return error for malformed YAML")
	}
}
