package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"AWS_REGION", "S3_BUCKET_NAME", "HEYGEN_API_KEY", "HEYGEN_TEMPLATE_ID",
		"WEAVIATE_HOST", "GEMINI_API_KEY", "OPENAI_API_KEY", "SUMMARIZE_ME_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "known provider",
			config: Config{
				Summarizer: SummarizerConfig{Provider: ProviderGemini},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				Summarizer: SummarizerConfig{Provider: "mistral"},
			},
			wantErr: true,
		},
		{
			name: "negative poll interval",
			config: Config{
				Transcriber: TranscriberConfig{PollInterval: -time.Second},
			},
			wantErr: true,
		},
		{
			name: "top_p out of range",
			config: Config{
				Summarizer: SummarizerConfig{TopP: float32Ptr(1.5)},
			},
			wantErr: true,
		},
		{
			name: "bad index scheme",
			config: Config{
				Index: IndexConfig{Scheme: "grpc"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Transcriber.PollInterval != 10*time.Second {
		t.Errorf("Transcriber.PollInterval = %v, want %v", cfg.Transcriber.PollInterval, 10*time.Second)
	}
	if cfg.Summarizer.Provider != ProviderBedrock {
		t.Errorf("Summarizer.Provider = %v, want %v", cfg.Summarizer.Provider, ProviderBedrock)
	}
	if cfg.Summarizer.Model != "anthropic.claude-3-haiku-20240307-v1:0" {
		t.Errorf("Summarizer.Model = %v", cfg.Summarizer.Model)
	}
	if cfg.Summarizer.SamplingTemperature() != 0.5 || cfg.Summarizer.SamplingTopP() != 0.9 || cfg.Summarizer.MaxTokens != 1000 {
		t.Errorf("sampling = %v/%v/%v, want 0.5/0.9/1000", cfg.Summarizer.SamplingTemperature(), cfg.Summarizer.SamplingTopP(), cfg.Summarizer.MaxTokens)
	}
	if cfg.Summarizer.Reprompts() != 1 {
		t.Errorf("Reprompts() = %v, want 1", cfg.Summarizer.Reprompts())
	}
	if cfg.Video.ScriptLimit != 800 {
		t.Errorf("Video.ScriptLimit = %v, want 800", cfg.Video.ScriptLimit)
	}
	if cfg.Video.OutputDir != "example" {
		t.Errorf("Video.OutputDir = %v, want example", cfg.Video.OutputDir)
	}
	if !cfg.Index.ResetOnIngest() {
		t.Error("Index.ResetOnIngest() = false, want true")
	}
	if cfg.Index.Host != "localhost:8080" || cfg.Index.Limit != 5 {
		t.Errorf("Index = %+v", cfg.Index)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
aws:
  region: "eu-west-1"
  bucket: "meetings"

transcriber:
  poll_interval: 5s
  timeout: 30m

summarizer:
  provider: "gemini"
  max_reprompts: 0

video:
  template_id: "tpl-1"

index:
  reset: false
  fixtures:
    - "fixtures/cat.mp4"

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AWS.Bucket != "meetings" {
		t.Errorf("Bucket = %v, want %v", cfg.AWS.Bucket, "meetings")
	}
	if cfg.Transcriber.PollInterval != 5*time.Second {
		t.Errorf("PollInterval = %v, want %v", cfg.Transcriber.PollInterval, 5*time.Second)
	}
	if cfg.Summarizer.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v, want %v", cfg.Summarizer.Model, "gemini-2.5-flash")
	}
	if cfg.Summarizer.Reprompts() != 0 {
		t.Errorf("Reprompts() = %v, want 0", cfg.Summarizer.Reprompts())
	}
	if cfg.Index.ResetOnIngest() {
		t.Error("ResetOnIngest() = true, want false")
	}
	if len(cfg.Index.Fixtures) != 1 {
		t.Errorf("Fixtures = %v", cfg.Index.Fixtures)
	}
}

func TestLoad_ZeroSamplingKept(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
summarizer:
  temperature: 0
  top_p: 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Summarizer.SamplingTemperature(); got != 0 {
		t.Errorf("SamplingTemperature() = %v, want 0", got)
	}
	if got := cfg.Summarizer.SamplingTopP(); got != 0 {
		t.Errorf("SamplingTopP() = %v, want 0", got)
	}
}

func float32Ptr(v float32) *float32 { return &v }

func TestLoadTOML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[aws]
bucket = "meetings"

[video]
output_dir = "out"
poll_interval = "2s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AWS.Bucket != "meetings" {
		t.Errorf("Bucket = %v, want meetings", cfg.AWS.Bucket)
	}
	if cfg.Video.OutputDir != "out" {
		t.Errorf("OutputDir = %v, want out", cfg.Video.OutputDir)
	}
	if cfg.Video.PollInterval != 2*time.Second {
		t.Errorf("PollInterval = %v, want 2s", cfg.Video.PollInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("S3_BUCKET_NAME", "from-env")
	t.Setenv("HEYGEN_API_KEY", "key")
	t.Setenv("HEYGEN_TEMPLATE_ID", "tpl")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("aws:\n  bucket: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AWS.Bucket != "from-env" {
		t.Errorf("Bucket = %v, want from-env", cfg.AWS.Bucket)
	}
	if cfg.Video.APIKey != "key" || cfg.Video.TemplateID != "tpl" {
		t.Errorf("Video = %+v", cfg.Video)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
