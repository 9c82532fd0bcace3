package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the ingest service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upload    UploadConfig    `yaml:"upload"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Index     IndexConfig     `yaml:"index"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_sec"`
}

// UploadConfig holds the upload acceptance policy.
type UploadConfig struct {
	MaxBytes  int64    `yaml:"max_bytes"`
	EnablePDF bool     `yaml:"enable_pdf"`
	Includes  []string `yaml:"includes"` // CLI directory ingest only
	Excludes  []string `yaml:"excludes"`
}

// ChunkingConfig holds text chunking parameters.
type ChunkingConfig struct {
	Strategy  string `yaml:"strategy"` // "fixed" or "boundary"
	ChunkSize int    `yaml:"chunk_size"`
	Overlap   int    `yaml:"overlap"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Dimension   int    `yaml:"dimension"`
	Concurrency int    `yaml:"concurrency"`
}

// IndexConfig holds vector index configuration.
type IndexConfig struct {
	Provider  string `yaml:"provider"` // "hosted" or "local"
	URL       string `yaml:"url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Name      string `yaml:"name"`
	BatchSize int    `yaml:"batch_size"`
	Path      string `yaml:"path"` // local provider db file
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 60,
			ShutdownSec:     10,
		},
		Upload: UploadConfig{
			MaxBytes:  4 << 20,
			EnablePDF: false,
			Includes:  []string{"**/*.txt", "**/*.md"},
			Excludes:  []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		},
		Chunking: ChunkingConfig{
			Strategy:  "boundary",
			ChunkSize: 1000,
			Overlap:   200,
		},
		Embedding: EmbeddingConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "text-embedding-3-small",
			APIKeyEnv:   "OPENAI_API_KEY",
			Dimension:   1536,
			Concurrency: 8,
		},
		Index: IndexConfig{
			Provider:  "local",
			APIKeyEnv: "VECTOR_INDEX_API_KEY",
			BatchSize: 100,
			Path:      ".docingest/vectors.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for docingest.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "docingest.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Validate rejects parameter combinations the pipeline cannot honor.
func (c *Config) Validate() error {
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunking.chunk_size must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("chunking.overlap must not be negative, got %d", c.Chunking.Overlap)
	}
	if c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunking.overlap (%d) must be smaller than chunking.chunk_size (%d)",
			c.Chunking.Overlap, c.Chunking.ChunkSize)
	}
	switch c.Chunking.Strategy {
	case "fixed", "boundary":
	default:
		return fmt.Errorf("chunking.strategy must be \"fixed\" or \"boundary\", got %q", c.Chunking.Strategy)
	}
	switch c.Index.Provider {
	case "hosted", "local":
	default:
		return fmt.Errorf("index.provider must be \"hosted\" or \"local\", got %q", c.Index.Provider)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	return nil
}
