package report

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const fontName = "Times New Roman"

// textStyle is the font treatment of one paragraph kind.
type textStyle struct {
	size uint64
	bold bool
}

var (
	titleStyle   = textStyle{size: 16, bold: true}
	headingStyle = textStyle{size: 14, bold: true}
	bodyStyle    = textStyle{size: 13}
)

// Report is the content of a meeting summary document.
type Report struct {
	Title       string
	KeyPoints   []string
	ActionItems []string
	Transcript  string
}

// WriteDocx renders r as a styled .docx document at path.
func WriteDocx(path string, r Report) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	w := docWriter{doc: doc}

	w.line(titleStyle, r.Title)
	w.section("Key Points", bullets(r.KeyPoints))
	w.section("Action Items", bullets(r.ActionItems))
	if lines := transcriptLines(r.Transcript); len(lines) > 0 {
		w.section("Transcript", lines)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

type docWriter struct {
	doc *docx.RootDoc
}

// line appends one paragraph holding a single run in style s.
func (w docWriter) line(s textStyle, text string) {
	run := w.doc.AddParagraph("").AddText(text).Font(fontName).Size(s.size).Color("000000")
	if s.bold {
		run.Bold(true)
	}
}

// section is a blank spacer, a heading, then one body paragraph per line.
func (w docWriter) section(heading string, lines []string) {
	w.doc.AddParagraph("")
	w.line(headingStyle, heading)
	for _, l := range lines {
		w.line(bodyStyle, l)
	}
}

func bullets(items []string) []string {
	if len(items) == 0 {
		return []string{"None."}
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = "• " + item
	}
	return out
}

func transcriptLines(transcript string) []string {
	var out []string
	for _, line := range strings.Split(transcript, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
