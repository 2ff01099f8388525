package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/generative-ai-on-aws/summarize-me/internal/app"
	"github.com/generative-ai-on-aws/summarize-me/internal/config"
	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
	"github.com/generative-ai-on-aws/summarize-me/internal/index"
	"github.com/generative-ai-on-aws/summarize-me/internal/logger"
	"github.com/generative-ai-on-aws/summarize-me/internal/pipeline"
)

type fakePipeline struct {
	paths []string
	err   error
}

func (p *fakePipeline) Run(ctx context.Context, path string) (*pipeline.Result, error) {
	p.paths = append(p.paths, path)
	if p.err != nil {
		return nil, p.err
	}
	return &pipeline.Result{VideoPath: "example/meeting_video_summary.mp4"}, nil
}

type staticBackend struct {
	results []index.SearchResult
	ready   bool
}

func (b *staticBackend) CollectionExists(ctx context.Context, name string) (bool, error) {
	return true, nil
}
func (b *staticBackend) DeleteCollection(ctx context.Context, name string) error { return nil }
func (b *staticBackend) CreateCollection(ctx context.Context, name string) error { return nil }
func (b *staticBackend) Insert(ctx context.Context, name string, item index.Item) error {
	return nil
}
func (b *staticBackend) CountByMediaType(ctx context.Context, name string) (map[string]int, error) {
	return nil, nil
}
func (b *staticBackend) List(ctx context.Context, name string) ([]index.Item, error) {
	return nil, nil
}
func (b *staticBackend) NearText(ctx context.Context, name, query string, limit int) ([]index.SearchResult, error) {
	return b.results, nil
}
func (b *staticBackend) Ready(ctx context.Context) (bool, error) { return b.ready, nil }

type harness struct {
	cfg      *config.Config
	pipe     *fakePipeline
	backend  *staticBackend
	appCalls int
}

func newHarness() *harness {
	return &harness{
		cfg:     config.Default(),
		pipe:    &fakePipeline{},
		backend: &staticBackend{ready: true},
	}
}

func (h *harness) deps() *Dependencies {
	return &Dependencies{
		LoadConfig: func(path string) (*config.Config, error) { return h.cfg, nil },
		NewApp: func(ctx context.Context, cfg *config.Config) (*app.App, error) {
			h.appCalls++
			return &app.App{
				Config:   cfg,
				Logger:   logger.Nop(),
				Pipeline: h.pipe,
				Index:    index.New(h.backend, cfg.Index, logger.Nop()),
			}, nil
		},
	}
}

func (h *harness) execute(stdin string, args ...string) (string, error) {
	cmd := NewRootCmd(h.deps())
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeRecording(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	return path
}

func TestRoot_PromptsAndRunsPipeline(t *testing.T) {
	h := newHarness()
	input := writeRecording(t, "meeting.mp3")

	out, err := h.execute(input + "\n")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Enter the path to the input file: "))
	assert.Equal(t, []string{input}, h.pipe.paths)
	assert.Contains(t, out, "example/meeting_video_summary.mp4")
}

func TestRoot_InputWithoutTrailingNewline(t *testing.T) {
	h := newHarness()
	input := writeRecording(t, "meeting.wav")

	_, err := h.execute(input)

	require.NoError(t, err)
	assert.Equal(t, []string{input}, h.pipe.paths)
}

func TestRoot_InvalidInputFailsBeforeWiring(t *testing.T) {
	h := newHarness()
	input := writeRecording(t, "notes.txt")

	_, err := h.execute(input + "\n")

	require.Error(t, err)
	assert.Equal(t, errs.KindInput, errs.KindOf(err))
	assert.Zero(t, h.appCalls)
	assert.Empty(t, h.pipe.paths)
}

func TestRoot_EmptyInput(t *testing.T) {
	h := newHarness()

	_, err := h.execute("\n")

	require.Error(t, err)
	assert.Zero(t, h.appCalls)
}

func TestRoot_StageErrorIsReturned(t *testing.T) {
	h := newHarness()
	h.pipe.err = &pipeline.StageError{Stage: pipeline.StageTranscribe, Err: errors.New("transcription failed: bad media")}
	input := writeRecording(t, "meeting.mp4")

	_, err := h.execute(input + "\n")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRANSCRIBE")
	assert.Contains(t, err.Error(), "bad media")
}

func TestSearch(t *testing.T) {
	h := newHarness()
	h.backend.results = []index.SearchResult{
		{Path: "b.mp4", Distance: 0.5},
		{Path: "a.mp4", Distance: 0.25},
	}

	out, err := h.execute("", "search", "action", "items")

	require.NoError(t, err)
	assert.Contains(t, out, `Results for "action items"`)
	assert.Contains(t, out, "1. a.mp4 (distance 0.2500, similarity 0.7500)")
	assert.Contains(t, out, "2. b.mp4 (distance 0.5000, similarity 0.5000)")
}

func TestSearch_NoResults(t *testing.T) {
	h := newHarness()

	out, err := h.execute("", "search", "anything")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching videos")
}

func TestDoctor(t *testing.T) {
	h := newHarness()
	h.cfg.Video.APIKey = "key"
	h.cfg.Video.TemplateID = "tpl"

	out, err := h.execute("", "doctor")

	require.NoError(t, err)
	assert.Contains(t, out, "❌ S3 bucket")
	assert.Contains(t, out, "✅ HeyGen template: tpl")
	assert.Contains(t, out, "❌ AWS credentials")
	assert.Contains(t, out, "✅ Weaviate: http://localhost:8080")
	assert.Contains(t, out, "Some prerequisites are missing.")
}

func TestVersion(t *testing.T) {
	h := newHarness()

	out, err := h.execute("", "version")

	require.NoError(t, err)
	assert.Contains(t, out, "summarize-me dev")
	assert.Zero(t, h.appCalls)
}
