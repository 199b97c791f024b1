package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Generate calls the model, rotating API keys on 429 / quota errors. Each key
// is tried at most once per call.
func (c *implClient) Generate(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if len(c.apiKeys) == 0 {
		return nil, ErrNoKeys
	}

	var lastErr error
	for range len(c.apiKeys) {
		key, idx := c.key()

		m, err := c.newModels(ctx, key)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := m.GenerateContent(ctx, model, contents, config)
		if err != nil {
			if isRateLimited(err) {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("generate content: %w", err)
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrKeysExhausted, lastErr)
}

func (c *implClient) key() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKeys[c.currentKey], c.currentKey
}

func (c *implClient) rotateKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// Parts returns the parts of the first candidate.
func Parts(resp *genai.GenerateContentResponse) ([]*genai.Part, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, ErrNoCandidates
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return nil, ErrNoContent
	}
	return content.Parts, nil
}

// Text concatenates the text parts of the first candidate.
func Text(resp *genai.GenerateContentResponse) (string, error) {
	parts, err := Parts(resp)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, part := range parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return "", ErrNoText
	}
	return b.String(), nil
}

// InlineData returns the first inline binary payload of the first candidate.
func InlineData(resp *genai.GenerateContentResponse) (*genai.Blob, error) {
	parts, err := Parts(resp)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, nil
		}
	}
	return nil, ErrNoInlineData
}
