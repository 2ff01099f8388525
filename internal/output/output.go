package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Prompt(msg string) {
	fmt.Fprint(f.w, msg)
}

func (f *Formatter) MeetingComplete(duration time.Duration) {
	fmt.Fprintf(f.w, "\n✅ Meeting processed in %s\n", formatDuration(duration))
}

func (f *Formatter) Artifact(label, path string) {
	if path == "" {
		return
	}
	fmt.Fprintf(f.w, "  📄 %s: %s\n", label, path)
}

func (f *Formatter) SearchHeader(query string) {
	fmt.Fprintf(f.w, "🔎 Results for %q:\n\n", query)
}

func (f *Formatter) SearchResult(rank int, path string, distance, similarity float64) {
	fmt.Fprintf(f.w, "  %d. %s (distance %.4f, similarity %.4f)\n", rank, path, distance, similarity)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
