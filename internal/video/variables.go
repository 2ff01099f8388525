package video

import (
	"strings"

	"github.com/generative-ai-on-aws/summarize-me/internal/summarizer"
)

const (
	keyPointsIntro   = "Here are the key points discussed in the meeting.\n\n"
	actionItemsIntro = "Here are the top 5 action items from the meeting:\n"
)

// BuildVariables derives the seven template variables for a meeting.
// Scripts longer than scriptLimit runes are cut silently.
func BuildVariables(meetingName string, pair summarizer.SummaryPair, scriptLimit int) Variables {
	return Variables{
		MeetingName: meetingName,
		Title1:      meetingName + " - Key Points",
		Body1:       strings.Join(pair.KeyPoints, "\n"),
		Script1:     truncate(keyPointsIntro+pair.KeyPointsText(), scriptLimit),
		Title2:      meetingName + " - Action Items",
		Body2:       strings.Join(pair.ActionItems, "\n"),
		Script2:     truncate(actionItemsIntro+pair.ActionItemsText(), scriptLimit),
	}
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
