package summarizer

import (
	"regexp"
	"strings"
)

var reBullet = regexp.MustCompile(`^(?:[-*•‣–]|\d+[.)])\s+(.+)$`)

// parseStrict accepts only a bare bullet list of at most max items.
// ok=false marks output that should be re-requested.
func parseStrict(text string, max int) (items []string, ok bool) {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		m := reBullet.FindStringSubmatch(trimmed)
		if m == nil {
			return nil, false
		}
		items = append(items, cleanItem(m[1]))
	}
	if max > 0 && len(items) > max {
		return nil, false
	}
	return items, true
}

// parseLenient salvages a list from malformed output: bullet lines win over
// prose lines, and the result is capped at max items.
func parseLenient(text string, max int) []string {
	var bullets, lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			bullets = append(bullets, cleanItem(m[1]))
			continue
		}
		lines = append(lines, cleanItem(trimmed))
	}

	items := bullets
	if len(items) == 0 {
		items = lines
	}
	if max > 0 && len(items) > max {
		items = items[:max]
	}
	return items
}

func cleanItem(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.TrimSpace(s)
}
