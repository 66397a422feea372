// Package embedding provides the sentence-embedding backend used by the
// semantic relevance booster. The client is constructed once at process start
// and shared: it is safe for concurrent use and holds the only expensive
// initialization in the scoring path.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-embedding-001"

// GeminiEmbedder wraps the Google GenAI embedding endpoint.
type GeminiEmbedder struct {
	client    *genai.Client
	modelName string
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &GeminiEmbedder{client: client, modelName: model}, nil
}

// Embed returns the embedding vector for the given text.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	resp, err := g.client.Models.EmbedContent(ctx, g.modelName, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini api returned an empty embedding")
	}
	return resp.Embeddings[0].Values, nil
}

// Model returns the configured embedding model name.
func (g *GeminiEmbedder) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
