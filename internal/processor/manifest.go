package processor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/caption-synth/internal/lang"
)

// ErrInvalidManifest indicates a manifest that cannot describe a job.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes one narration job.
type Manifest struct {
	Name     string `yaml:"name"`
	Video    string `yaml:"video"`
	Language string `yaml:"language"`
	// Script is read verbatim; Prompt asks the generator for one instead.
	Script string `yaml:"script"`
	Prompt string `yaml:"prompt"`
}

// LoadManifest reads and validates a manifest. Relative video paths resolve
// against the manifest's directory; a missing language falls back to
// defaultLanguage.
func LoadManifest(path, defaultLanguage string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidManifest, path, err)
	}

	if m.Video == "" {
		return nil, fmt.Errorf("%w: video is required", ErrInvalidManifest)
	}
	if !filepath.IsAbs(m.Video) {
		m.Video = filepath.Join(filepath.Dir(path), m.Video)
	}
	if strings.TrimSpace(m.Script) == "" && strings.TrimSpace(m.Prompt) == "" {
		return nil, fmt.Errorf("%w: one of script or prompt is required", ErrInvalidManifest)
	}

	if m.Language == "" {
		m.Language = defaultLanguage
	}
	code, err := lang.Parse(m.Language)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	m.Language = code

	if m.Name == "" {
		base := filepath.Base(path)
		m.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.ContainsAny(m.Name, `/\`) {
		return nil, fmt.Errorf("%w: name %q must not contain path separators", ErrInvalidManifest, m.Name)
	}

	return &m, nil
}
