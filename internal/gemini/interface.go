package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client sends generateContent requests.
type Client interface {
	Generate(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// models is the subset of *genai.Models used here.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// modelsFactory builds a models client for one API key.
type modelsFactory func(ctx context.Context, apiKey string) (models, error)
