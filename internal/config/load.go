package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is picked up when no --config flag is given.
const DefaultPath = "config.yaml"

// Load reads a YAML (or .toml) config file, applies .env and environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	}

	return finish(cfg)
}

// Resolve loads path when set, otherwise DefaultPath when it exists,
// otherwise the built-in defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	return finish(&Config{})
}

func finish(cfg *Config) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWS.Region = v
	}
	if v := os.Getenv("S3_BUCKET_NAME"); v != "" {
		cfg.AWS.Bucket = v
	}
	if v := os.Getenv("HEYGEN_API_KEY"); v != "" {
		cfg.Video.APIKey = v
	}
	if v := os.Getenv("HEYGEN_TEMPLATE_ID"); v != "" {
		cfg.Video.TemplateID = v
	}
	if v := os.Getenv("WEAVIATE_HOST"); v != "" {
		cfg.Index.Host = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Summarizer.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Summarizer.OpenAIAPIKey = v
	}
	if v := os.Getenv("SUMMARIZE_ME_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
