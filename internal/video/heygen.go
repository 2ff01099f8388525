package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
	"github.com/generative-ai-on-aws/summarize-me/internal/filestore"
	"github.com/generative-ai-on-aws/summarize-me/internal/poll"
)

type textVariable struct {
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

type generateRequest struct {
	Test      bool                    `json:"test"`
	Caption   bool                    `json:"caption"`
	Title     string                  `json:"title"`
	Variables map[string]textVariable `json:"variables"`
}

type generateResponse struct {
	Error interface{} `json:"error"`
	Data  *struct {
		VideoID string `json:"video_id"`
	} `json:"data"`
}

type statusResponse struct {
	Code int `json:"code"`
	Data struct {
		Status   string      `json:"status"`
		VideoURL string      `json:"video_url"`
		Error    interface{} `json:"error"`
	} `json:"data"`
}

// Submit asks the backend to render the template and returns the video id.
func (g *implGenerator) Submit(ctx context.Context, vars Variables) (string, error) {
	variables := make(map[string]textVariable, 7)
	for name, content := range vars.Map() {
		variables[name] = textVariable{
			Name:       name,
			Type:       "text",
			Properties: map[string]string{"content": content},
		}
	}

	payload, err := json.Marshal(generateRequest{
		Title:     vars.MeetingName,
		Variables: variables,
	})
	if err != nil {
		return "", errs.New(errs.KindVideoGeneration, "submit", err)
	}

	endpoint := fmt.Sprintf("%s/v2/template/%s/generate", g.baseURL, url.PathEscape(g.templateID))
	body, status, err := g.do(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errs.New(errs.KindVideoGeneration, "submit", err)
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", errs.Newf(errs.KindVideoGeneration, "submit", "parse response (HTTP %d): %v", status, err)
	}
	if resp.Data == nil || resp.Data.VideoID == "" {
		return "", errs.Newf(errs.KindVideoGeneration, "submit", "no video id returned (HTTP %d): %s", status, describe(resp.Error))
	}

	g.logger.Info(ctx, "Video generation started: %s", resp.Data.VideoID)
	return resp.Data.VideoID, nil
}

// AwaitCompletion polls the video status and downloads the finished file to destPath.
func (g *implGenerator) AwaitCompletion(ctx context.Context, videoID, destPath string) error {
	endpoint := fmt.Sprintf("%s/v1/video_status.get?video_id=%s", g.baseURL, url.QueryEscape(videoID))

	var videoURL string
	err := poll.Until(ctx, poll.Options{Interval: g.cfg.PollInterval, Timeout: g.cfg.Timeout}, func(ctx context.Context) (bool, error) {
		body, status, err := g.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return false, err
		}

		var resp statusResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return false, fmt.Errorf("parse status (HTTP %d): %w", status, err)
		}

		switch resp.Data.Status {
		case "completed":
			videoURL = resp.Data.VideoURL
			return true, nil
		case "failed":
			return false, fmt.Errorf("video generation failed: %s", describe(resp.Data.Error))
		default:
			g.logger.Debug(ctx, "Video %s status: %s", videoID, resp.Data.Status)
			return false, nil
		}
	})
	if errs.Is(err, errs.KindTimeout) {
		return fmt.Errorf("await video %s: %w", videoID, err)
	}
	if err != nil {
		return errs.New(errs.KindVideoGeneration, "await video", err)
	}

	if videoURL == "" {
		return errs.Newf(errs.KindVideoGeneration, "await video", "completed video %s has no url", videoID)
	}
	if err := g.download(ctx, videoURL, destPath); err != nil {
		return errs.New(errs.KindVideoGeneration, "download video", err)
	}

	g.logger.Info(ctx, "Video saved to %s", destPath)
	return nil
}

// Generate submits the template and waits for the rendered file.
func (g *implGenerator) Generate(ctx context.Context, vars Variables, destPath string) error {
	id, err := g.Submit(ctx, vars)
	if err != nil {
		return err
	}
	return g.AwaitCompletion(ctx, id, destPath)
}

func (g *implGenerator) do(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("X-API-KEY", g.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

func (g *implGenerator) download(ctx context.Context, videoURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed (HTTP %d)", resp.StatusCode)
	}
	return filestore.CopyAtomic(destPath, resp.Body, 0o644)
}

// describe renders the backend's error field, which may be a string or an object.
func describe(v interface{}) string {
	switch e := v.(type) {
	case nil:
		return "unknown error"
	case string:
		if strings.TrimSpace(e) == "" {
			return "unknown error"
		}
		return e
	case map[string]interface{}:
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg
		}
	}
	b, _ := json.Marshal(v)
	return string(b)
}
