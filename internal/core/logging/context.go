package logging

import "context"

type contextKey string

const (
	feedbackIDKey contextKey = "feedback_id"
	commentIDKey  contextKey = "comment_id"
	actorIDKey    contextKey = "actor_id"
)

// WithFeedbackID tags the context with the feedback item being worked on.
func WithFeedbackID(ctx context.Context, feedbackID string) context.Context {
	return context.WithValue(ctx, feedbackIDKey, feedbackID)
}

// WithCommentID tags the context with the comment being worked on.
func WithCommentID(ctx context.Context, commentID string) context.Context {
	return context.WithValue(ctx, commentIDKey, commentID)
}

// WithActorID tags the context with the acting user.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey, actorID)
}

// GetFeedbackID returns the feedback ID stored in ctx, or "".
func GetFeedbackID(ctx context.Context) string {
	return stringValue(ctx, feedbackIDKey)
}

// GetCommentID returns the comment ID stored in ctx, or "".
func GetCommentID(ctx context.Context) string {
	return stringValue(ctx, commentIDKey)
}

// GetActorID returns the actor ID stored in ctx, or "".
func GetActorID(ctx context.Context) string {
	return stringValue(ctx, actorIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
