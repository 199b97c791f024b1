// Package generate writes narration scripts with a Gemini text model.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/caption-synth/internal/gemini"
	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

// ErrEmptyPrompt indicates a blank generation prompt.
var ErrEmptyPrompt = errors.New("empty prompt")

const scriptPrompt = `Write a narration script to be read aloud over a short video.

Requirements:
- Plain spoken prose only: no headings, lists, stage directions or markdown
- Short sentences that read naturally when spoken
- Write in the language with ISO 639-1 code "%s"

Topic:
---
%s
---`

// Generator produces narration scripts.
type Generator struct {
	client gemini.Client
	model  string
	logger logger.Logger
}

// New creates a Generator using model.
func New(client gemini.Client, model string, log logger.Logger) *Generator {
	return &Generator{client: client, model: model, logger: log}
}

// Script asks the model for a narration script about prompt.
func (g *Generator) Script(ctx context.Context, prompt, language string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	g.logger.Info(ctx, "Generating script with %s", g.model)

	resp, err := g.client.Generate(ctx, g.model, genai.Text(fmt.Sprintf(scriptPrompt, language, prompt)), nil)
	if err != nil {
		return "", fmt.Errorf("generate script: %w", err)
	}

	text, err := gemini.Text(resp)
	if err != nil {
		return "", fmt.Errorf("generate script: %w", err)
	}

	script := strings.TrimSpace(text)
	g.logger.Info(ctx, "Script generated: %d words", len(strings.Fields(script)))
	return script, nil
}
