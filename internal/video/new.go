package video

import (
	"net/http"
	"strings"

	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
)

type implGenerator struct {
	baseURL    string
	apiKey     string
	templateID string
	cfg        config.VideoConfig
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Generator for the HeyGen API described by cfg.
func New(cfg config.VideoConfig, httpClient *http.Client, log logger.Logger) Generator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &implGenerator{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		templateID: cfg.TemplateID,
		cfg:        cfg,
		httpClient: httpClient,
		logger:     log,
	}
}
