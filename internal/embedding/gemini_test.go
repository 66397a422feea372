package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiEmbedder_RequiresKey(t *testing.T) {
	_, err := NewGeminiEmbedder(context.Background(), "", "")
	require.Error(t, err)

	_, err = NewGeminiEmbedder(context.Background(), "   ", "some-model")
	require.Error(t, err)
}

func TestNewGeminiEmbedder_DefaultsModel(t *testing.T) {
	e, err := NewGeminiEmbedder(context.Background(), "test-key", "")
	require.NoError(t, err)
	assert.Equal(t, defaultModel, e.Model())

	e, err = NewGeminiEmbedder(context.Background(), "test-key", "gemini-embedding-exp")
	require.NoError(t, err)
	assert.Equal(t, "gemini-embedding-exp", e.Model())
}

func TestEmbed_GuardsInput(t *testing.T) {
	var nilEmbedder *GeminiEmbedder
	_, err := nilEmbedder.Embed(context.Background(), "text")
	assert.Error(t, err)

	e, err := NewGeminiEmbedder(context.Background(), "test-key", "")
	require.NoError(t, err)
	_, err = e.Embed(context.Background(), "   ")
	assert.Error(t, err)
}
