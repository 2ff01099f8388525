package config

import (
	"fmt"
	"time"
)

const (
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
)

type Config struct {
	AWS         AWSConfig         `yaml:"aws" toml:"aws"`
	Transcriber TranscriberConfig `yaml:"transcriber" toml:"transcriber"`
	Summarizer  SummarizerConfig  `yaml:"summarizer" toml:"summarizer"`
	Video       VideoConfig       `yaml:"video" toml:"video"`
	Index       IndexConfig       `yaml:"index" toml:"index"`
	Output      OutputConfig      `yaml:"output" toml:"output"`
	Watch       WatchConfig       `yaml:"watch" toml:"watch"`
	Logging     LoggingConfig     `yaml:"logging" toml:"logging"`
}

type AWSConfig struct {
	Region string `yaml:"region" toml:"region"`
	Bucket string `yaml:"bucket" toml:"bucket"`
}

type TranscriberConfig struct {
	Language     string        `yaml:"language" toml:"language"`
	KeyPrefix    string        `yaml:"key_prefix" toml:"key_prefix"`
	PollInterval time.Duration `yaml:"poll_interval" toml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout" toml:"timeout"`
}

type SummarizerConfig struct {
	Provider     string   `yaml:"provider" toml:"provider"`
	Model        string   `yaml:"model" toml:"model"`
	Temperature  *float32 `yaml:"temperature" toml:"temperature"`
	TopP         *float32 `yaml:"top_p" toml:"top_p"`
	MaxTokens    int      `yaml:"max_tokens" toml:"max_tokens"`
	MaxItems     int      `yaml:"max_items" toml:"max_items"`
	MaxReprompts *int     `yaml:"max_reprompts" toml:"max_reprompts"`
	Parallel     bool     `yaml:"parallel" toml:"parallel"`
	GeminiAPIKey string   `yaml:"gemini_api_key" toml:"gemini_api_key"`
	OpenAIAPIKey string   `yaml:"openai_api_key" toml:"openai_api_key"`
}

type VideoConfig struct {
	BaseURL      string        `yaml:"base_url" toml:"base_url"`
	APIKey       string        `yaml:"api_key" toml:"api_key"`
	TemplateID   string        `yaml:"template_id" toml:"template_id"`
	OutputDir    string        `yaml:"output_dir" toml:"output_dir"`
	ScriptLimit  int           `yaml:"script_limit" toml:"script_limit"`
	PollInterval time.Duration `yaml:"poll_interval" toml:"poll_interval"`
	Timeout      time.Duration `yaml:"timeout" toml:"timeout"`
}

type IndexConfig struct {
	Host       string   `yaml:"host" toml:"host"`
	Scheme     string   `yaml:"scheme" toml:"scheme"`
	Collection string   `yaml:"collection" toml:"collection"`
	Reset      *bool    `yaml:"reset" toml:"reset"`
	Query      string   `yaml:"query" toml:"query"`
	Limit      int      `yaml:"limit" toml:"limit"`
	Fixtures   []string `yaml:"fixtures" toml:"fixtures"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx" toml:"docx"`
}

type WatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// ResetOnIngest reports whether ingest drops and recreates the collection.
func (c IndexConfig) ResetOnIngest() bool {
	return c.Reset == nil || *c.Reset
}

// Reprompts is how many times malformed model output is re-requested. Defaults to 1.
func (c SummarizerConfig) Reprompts() int {
	if c.MaxReprompts == nil {
		return 1
	}
	return *c.MaxReprompts
}

// SamplingTemperature defaults to 0.5 when unset. An explicit 0 is kept.
func (c SummarizerConfig) SamplingTemperature() float32 {
	if c.Temperature == nil {
		return 0.5
	}
	return *c.Temperature
}

// SamplingTopP defaults to 0.9 when unset. An explicit 0 is kept.
func (c SummarizerConfig) SamplingTopP() float32 {
	if c.TopP == nil {
		return 0.9
	}
	return *c.TopP
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	// Validate only fails on explicitly invalid values, never on an empty tree.
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	switch c.Summarizer.Provider {
	case "":
		c.Summarizer.Provider = ProviderBedrock
	case ProviderBedrock, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("summarizer.provider %q is not supported", c.Summarizer.Provider)
	}
	if c.Transcriber.PollInterval < 0 || c.Transcriber.Timeout < 0 {
		return fmt.Errorf("transcriber poll_interval and timeout must be >= 0")
	}
	if c.Video.PollInterval < 0 || c.Video.Timeout < 0 {
		return fmt.Errorf("video poll_interval and timeout must be >= 0")
	}
	if t, p := c.Summarizer.SamplingTemperature(), c.Summarizer.SamplingTopP(); t < 0 || p < 0 || p > 1 {
		return fmt.Errorf("summarizer temperature must be >= 0 and top_p within [0,1]")
	}
	if c.Summarizer.MaxTokens < 0 || c.Summarizer.MaxItems < 0 || c.Summarizer.Reprompts() < 0 {
		return fmt.Errorf("summarizer limits must be >= 0")
	}
	if c.Video.ScriptLimit < 0 || c.Index.Limit < 0 || c.Watch.MaxConcurrent < 0 {
		return fmt.Errorf("limits must be >= 0")
	}
	if c.Index.Scheme != "" && c.Index.Scheme != "http" && c.Index.Scheme != "https" {
		return fmt.Errorf("index.scheme must be http or https")
	}

	if c.AWS.Region == "" {
		c.AWS.Region = "us-east-1"
	}
	if c.Transcriber.Language == "" {
		c.Transcriber.Language = "en-US"
	}
	if c.Transcriber.KeyPrefix == "" {
		c.Transcriber.KeyPrefix = "video/"
	}
	if c.Transcriber.PollInterval == 0 {
		c.Transcriber.PollInterval = 10 * time.Second
	}
	if c.Transcriber.Timeout == 0 {
		c.Transcriber.Timeout = 2 * time.Hour
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = defaultModel(c.Summarizer.Provider)
	}
	if c.Summarizer.MaxTokens == 0 {
		c.Summarizer.MaxTokens = 1000
	}
	if c.Summarizer.MaxItems == 0 {
		c.Summarizer.MaxItems = 5
	}
	if c.Video.BaseURL == "" {
		c.Video.BaseURL = "https://api.heygen.com"
	}
	if c.Video.OutputDir == "" {
		c.Video.OutputDir = "example"
	}
	if c.Video.ScriptLimit == 0 {
		c.Video.ScriptLimit = 800
	}
	if c.Video.PollInterval == 0 {
		c.Video.PollInterval = 10 * time.Second
	}
	if c.Video.Timeout == 0 {
		c.Video.Timeout = time.Hour
	}
	if c.Index.Host == "" {
		c.Index.Host = "localhost:8080"
	}
	if c.Index.Scheme == "" {
		c.Index.Scheme = "http"
	}
	if c.Index.Collection == "" {
		c.Index.Collection = "Index"
	}
	if c.Index.Query == "" {
		c.Index.Query = "action items"
	}
	if c.Index.Limit == 0 {
		c.Index.Limit = 5
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

func defaultModel(provider string) string {
	switch provider {
	case ProviderGemini:
		return "gemini-2.5-flash"
	case ProviderOpenAI:
		return "gpt-4o-mini"
	default:
		return "anthropic.claude-3-haiku-20240307-v1:0"
	}
}
