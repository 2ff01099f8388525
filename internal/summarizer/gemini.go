package summarizer

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
)

type geminiProvider struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiProvider creates a Provider backed by the Gemini API.
// baseURL overrides the API endpoint when non-empty.
func NewGeminiProvider(ctx context.Context, cfg config.SummarizerConfig, baseURL string) (Provider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	return &geminiProvider{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(cfg.SamplingTemperature()),
			TopP:            genai.Ptr(cfg.SamplingTopP()),
			MaxOutputTokens: int32(cfg.MaxTokens),
		},
	}, nil
}

func (p *geminiProvider) Name() string { return "gemini:" + p.model }

func (p *geminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), p.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", nil
}
