package filestore

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/generative-ai-on-aws/summarize-me/internal/errs"
)

// SupportedExtensions are the containers the speech-to-text backend accepts.
var SupportedExtensions = []string{".amr", ".flac", ".m4a", ".mp3", ".mp4", ".ogg", ".wav", ".webm"}

// MeetingInput is a validated local recording.
type MeetingInput struct {
	Path string
	Dir  string
	Name string
	Ext  string
}

// IsSupported reports whether path carries a supported extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ValidateInput checks that path exists, is a regular file and has a supported extension.
func ValidateInput(path string) (MeetingInput, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return MeetingInput{}, errs.Newf(errs.KindInput, "validate input", "input file path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MeetingInput{}, errs.Newf(errs.KindInput, "validate input", "input file not found: %s", path)
		}
		return MeetingInput{}, errs.New(errs.KindInput, "validate input", err)
	}
	if info.IsDir() {
		return MeetingInput{}, errs.Newf(errs.KindInput, "validate input", "input path is a directory: %s", path)
	}
	if !IsSupported(path) {
		return MeetingInput{}, errs.Newf(errs.KindInput, "validate input",
			"input file type %q not supported, try an .mp3 or .mp4 file", filepath.Ext(path))
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return MeetingInput{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: strings.TrimSuffix(base, ext),
		Ext:  strings.ToLower(ext),
	}, nil
}

func (m MeetingInput) sibling(suffix string) string {
	return filepath.Join(m.Dir, m.Name+suffix)
}

func (m MeetingInput) TranscriptPath() string  { return m.sibling("_transcription.txt") }
func (m MeetingInput) KeyPointsPath() string   { return m.sibling("_key_points.txt") }
func (m MeetingInput) ActionItemsPath() string { return m.sibling("_action_items.txt") }
func (m MeetingInput) ReportPath() string      { return m.sibling("_summary.docx") }

// VideoPath is where the rendered summary video is written.
func (m MeetingInput) VideoPath(dir string) string {
	return filepath.Join(dir, m.Name+"_video_summary.mp4")
}

// SaveText writes content to path, replacing any existing file.
func SaveText(path, content string) error {
	return WriteFileAtomic(path, []byte(content), 0o644)
}

// WriteFileAtomic writes data to a temp file in the target directory and renames it into place.
func WriteFileAtomic(path string, data []byte, mode fs.FileMode) error {
	return CopyAtomic(path, bytes.NewReader(data), mode)
}

// CopyAtomic streams r into path through a temp file, so readers never see a partial file.
func CopyAtomic(path string, r io.Reader, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp_"+filepath.Base(path)+"_*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// ReadBase64 returns the standard base64 encoding of the file at path.
// An empty file is rejected since stored items must carry a payload.
func ReadBase64(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("file %s is empty", path)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
