// Package config provides configuration loading for the bot.
// Defaults work with zero configuration; a YAML file and environment
// variables override them, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the bot.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Corpus     CorpusConfig     `yaml:"corpus"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Semantic   SemanticConfig   `yaml:"semantic"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr             string        `yaml:"addr"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// CorpusConfig holds FAQ corpus settings.
type CorpusConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider     string `yaml:"provider"` // ollama or openai
	OllamaURL    string `yaml:"ollama_url"`
	Model        string `yaml:"model"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
}

// SemanticConfig holds semantic-match settings.
type SemanticConfig struct {
	// Threshold is the cosine-similarity floor for accepting a match.
	Threshold float64 `yaml:"threshold"`
}

// TranscriptConfig holds chat-history storage settings.
type TranscriptConfig struct {
	DBPath       string `yaml:"db_path"`
	HistoryLimit int    `yaml:"history_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Default returns the development configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             ":5100",
			ReadTimeout:      15 * time.Second,
			WriteTimeout:     30 * time.Second,
			GracefulShutdown: 5 * time.Second,
		},
		Corpus: CorpusConfig{
			Path:  "data/faq_with_intent.csv",
			Watch: true,
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			OllamaURL: "http://localhost:11434",
			Model:     "all-minilm",
		},
		Semantic: SemanticConfig{
			Threshold: 0.55,
		},
		Transcript: TranscriptConfig{
			DBPath:       "data/chat_history.db",
			HistoryLimit: 50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from an optional YAML file and applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Corpus.Path == "" {
		return fmt.Errorf("corpus.path must not be empty")
	}
	switch c.Embedding.Provider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("embedding.provider must be ollama or openai, got %q", c.Embedding.Provider)
	}
	if c.Embedding.Provider == "openai" && c.Embedding.OpenAIAPIKey == "" {
		return fmt.Errorf("embedding.openai_api_key required for the openai provider")
	}
	if c.Semantic.Threshold < -1 || c.Semantic.Threshold > 1 {
		return fmt.Errorf("semantic.threshold must be within [-1, 1], got %v", c.Semantic.Threshold)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Addr, "SHOPBOT_ADDR")
	setString(&cfg.Corpus.Path, "SHOPBOT_CORPUS_PATH")
	setString(&cfg.Embedding.Provider, "SHOPBOT_EMBEDDING_PROVIDER")
	setString(&cfg.Embedding.OllamaURL, "SHOPBOT_OLLAMA_URL")
	setString(&cfg.Embedding.Model, "SHOPBOT_EMBEDDING_MODEL")
	setString(&cfg.Embedding.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.Transcript.DBPath, "SHOPBOT_DB_PATH")
	setString(&cfg.Log.Level, "SHOPBOT_LOG_LEVEL")
	setString(&cfg.Log.Format, "SHOPBOT_LOG_FORMAT")

	if v := os.Getenv("SHOPBOT_SEMANTIC_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Semantic.Threshold = f
		}
	}
	if v := os.Getenv("SHOPBOT_CORPUS_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Corpus.Watch = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
