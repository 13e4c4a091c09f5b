package llm

import "context"

type ctxKey int

const (
	purposeKey ctxKey = iota
	feedbackKey
)

// WithPurpose labels the calls made with ctx, e.g. "second-opinion".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithFeedbackID ties the calls made with ctx to one diagnosis so the event
// log can be searched by it.
func WithFeedbackID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, feedbackKey, id)
}

// FeedbackIDFrom returns the id set by WithFeedbackID, or "".
func FeedbackIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(feedbackKey).(string)
	return id
}
