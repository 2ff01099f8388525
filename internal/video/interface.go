package video

import "context"

// Generator renders a summary video from a HeyGen template.
type Generator interface {
	Submit(ctx context.Context, vars Variables) (string, error)
	AwaitCompletion(ctx context.Context, videoID, destPath string) error
	Generate(ctx context.Context, vars Variables, destPath string) error
}

// Variables holds the template variables in submission order.
type Variables struct {
	MeetingName string
	Title1      string
	Body1       string
	Script1     string
	Title2      string
	Body2       string
	Script2     string
}

// Map returns the variables keyed by their template names.
func (v Variables) Map() map[string]string {
	return map[string]string{
		"meeting_name": v.MeetingName,
		"title1":       v.Title1,
		"body1":        v.Body1,
		"script1":      v.Script1,
		"title2":       v.Title2,
		"body2":        v.Body2,
		"script2":      v.Script2,
	}
}
