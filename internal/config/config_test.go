package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PDS_EMBEDDING_MODEL", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-embedding-001", cfg.EmbeddingModel)
	assert.Greater(t, cfg.Workers, 0)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_RoundTrip(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PDS_EMBEDDING_MODEL", "")

	path := filepath.Join(t.TempDir(), "config.json")
	saved := &Config{
		GeminiAPIKey:   "file-key",
		EmbeddingModel: "gemini-embedding-001",
		Workers:        3,
		Debug:          true,
	}
	require.NoError(t, saved.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := &Config{GeminiAPIKey: "file-key", EmbeddingModel: "file-model", Workers: 2}
	require.NoError(t, saved.SaveTo(path))

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PDS_EMBEDDING_MODEL", "env-model")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, "env-model", cfg.EmbeddingModel)
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.EmbeddingModel = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Workers = 0
	assert.Error(t, cfg.Validate())
}
