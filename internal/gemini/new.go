package gemini

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/caption-synth/internal/logger"
)

type implClient struct {
	apiKeys    []string
	currentKey int
	mu         sync.Mutex
	logger     logger.Logger
	newModels  modelsFactory
}

// New creates a Client that rotates through the supplied API keys.
func New(apiKeys []string, log logger.Logger) Client {
	return &implClient{
		apiKeys:   apiKeys,
		logger:    log,
		newModels: genaiModels,
	}
}

func genaiModels(ctx context.Context, apiKey string) (models, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}
