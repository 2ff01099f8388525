package output

import (
	"bytes"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{4 * time.Second, "4s"},
		{90 * time.Second, "1m30s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
		{1400 * time.Millisecond, "1s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArtifactSkipsEmptyPath(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)

	f.Artifact("Report", "")
	if buf.Len() != 0 {
		t.Errorf("Artifact() wrote %q for empty path", buf.String())
	}

	f.SearchResult(1, "example/m.mp4", 0.25, 0.75)
	if got, want := buf.String(), "  1. example/m.mp4 (distance 0.2500, similarity 0.7500)\n"; got != want {
		t.Errorf("SearchResult() = %q, want %q", got, want)
	}
}
