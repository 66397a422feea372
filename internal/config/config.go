package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds process configuration. The embedding key is optional: without
// one the screener runs rule-only assessments.
type Config struct {
	GeminiAPIKey   string `json:"gemini_api_key"`
	EmbeddingModel string `json:"embedding_model"`
	Workers        int    `json:"workers"`
	Debug          bool   `json:"debug"`
	JSONLogs       bool   `json:"json_logs"`
}

// DefaultConfig returns a new config with default values.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel: "gemini-embedding-001",
		Workers:        runtime.NumCPU(),
	}
}

// GetConfigPath returns the path to the configuration file.
// On Windows: %APPDATA%/PDSScreener/config.json
// On Unix: ~/.config/PDSScreener/config.json
func GetConfigPath() (string, error) {
	var configDir string

	if os.Getenv("APPDATA") != "" {
		configDir = filepath.Join(os.Getenv("APPDATA"), "PDSScreener")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "PDSScreener")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load loads configuration from the default config path, then applies
// environment overrides.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path. A missing file yields
// the defaults rather than an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.GeminiAPIKey = key
	}
	if model := os.Getenv("PDS_EMBEDDING_MODEL"); model != "" {
		cfg.EmbeddingModel = model
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}

// SaveTo saves the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding_model is required")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	return nil
}
