package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	"github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/google/uuid"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
	"github.com/generative-ai-on-aws/summarize-me/internal/filestore"
	"github.com/generative-ai-on-aws/summarize-me/internal/poll"
)

var reJobNameInvalid = regexp.MustCompile(`[^0-9A-Za-z._-]`)

// Transcribe uploads the recording, runs a transcription job and returns the first transcript.
func (t *implTranscriber) Transcribe(ctx context.Context, localFilePath string) (string, error) {
	in, err := filestore.ValidateInput(localFilePath)
	if err != nil {
		return "", err
	}

	mediaURI, err := t.upload(ctx, in.Path)
	if err != nil {
		return "", errs.New(errs.KindTranscription, "upload media", err)
	}

	name := t.newJobName(filepath.Base(in.Path))
	t.logger.Info(ctx, "Starting transcription job %s for %s", name, mediaURI)

	_, err = t.jobs.StartTranscriptionJob(ctx, &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(name),
		Media:                &types.Media{MediaFileUri: aws.String(mediaURI)},
		LanguageCode:         types.LanguageCode(t.cfg.Language),
	})
	if err != nil {
		return "", errs.New(errs.KindTranscription, "start transcription job", err)
	}

	t.logger.Info(ctx, "Transcription job started. Waiting for completion...")
	job, err := t.await(ctx, name)
	if err != nil {
		return "", err
	}

	if job.TranscriptionJobStatus == types.TranscriptionJobStatusFailed {
		return "", errs.Newf(errs.KindTranscription, "transcription job", "transcription failed: %s", aws.ToString(job.FailureReason))
	}

	if job.Transcript == nil || aws.ToString(job.Transcript.TranscriptFileUri) == "" {
		return "", errs.Newf(errs.KindTranscription, "transcription job", "completed job %s has no transcript uri", name)
	}

	text, err := t.fetchTranscript(ctx, aws.ToString(job.Transcript.TranscriptFileUri))
	if err != nil {
		return "", errs.New(errs.KindTranscription, "fetch transcript", err)
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

func (t *implTranscriber) upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	key := t.cfg.KeyPrefix + filepath.Base(path)
	t.logger.Info(ctx, "Uploading %s to s3://%s/%s", path, t.bucket, key)

	if _, err := t.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("s3://%s/%s", t.bucket, key), nil
}

// await polls the job until it is COMPLETED or FAILED.
func (t *implTranscriber) await(ctx context.Context, name string) (*types.TranscriptionJob, error) {
	var job *types.TranscriptionJob

	err := poll.Until(ctx, poll.Options{Interval: t.cfg.PollInterval, Timeout: t.cfg.Timeout}, func(ctx context.Context) (bool, error) {
		out, err := t.jobs.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
			TranscriptionJobName: aws.String(name),
		})
		if err != nil {
			return false, err
		}
		if out.TranscriptionJob == nil {
			return false, fmt.Errorf("job %s not returned by backend", name)
		}

		job = out.TranscriptionJob
		t.logger.Debug(ctx, "Transcription job %s status: %s", name, job.TranscriptionJobStatus)

		switch job.TranscriptionJobStatus {
		case types.TranscriptionJobStatusCompleted, types.TranscriptionJobStatusFailed:
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		if errs.Is(err, errs.KindTimeout) {
			return nil, fmt.Errorf("await transcription job %s: %w", name, err)
		}
		return nil, errs.New(errs.KindTranscription, "get transcription job", err)
	}

	return job, nil
}

type transcriptDocument struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
	} `json:"results"`
}

func (t *implTranscriber) fetchTranscript(ctx context.Context, uri string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return "", err
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download transcript: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript download failed (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc transcriptDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("parse transcript document: %w", err)
	}
	if len(doc.Results.Transcripts) == 0 {
		return "", nil
	}
	return doc.Results.Transcripts[0].Transcript, nil
}

// jobName derives a unique job name from the media base name.
func jobName(base string) string {
	stem := base
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	stem = reJobNameInvalid.ReplaceAllString(stem, "-")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("TranscribeJob_%s_%s", stem, suffix)
}
