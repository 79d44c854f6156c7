// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within feedboard.
package eventbus

import (
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/notify"
)

// Event names a bus topic.
type Event string

// Keep list sorted A-Z.
const (
	EventCommentAdded          Event = "comment.added"
	EventCommentFailed         Event = "comment.failed"
	EventCommentRemoved        Event = "comment.removed"
	EventCommentUpdated        Event = "comment.updated"
	EventNotificationPublished Event = "notification.published"
	EventTuiStarted            Event = "tui.started"
	EventTuiStopped            Event = "tui.stopped"
)

// Operation names the comment operation an event refers to.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// CommentAddedPayload is emitted after a created comment was appended.
type CommentAddedPayload struct {
	Comment comment.Comment
}

// CommentUpdatedPayload is emitted after an edited comment was replaced.
type CommentUpdatedPayload struct {
	Comment comment.Comment
}

// CommentRemovedPayload is emitted after a deleted comment was removed.
type CommentRemovedPayload struct {
	FeedbackID string
	CommentID  string
}

// CommentFailedPayload is emitted when a comment operation was rejected by
// the gateway. Validation failures are shown inline and are not published.
type CommentFailedPayload struct {
	Op        Operation
	CommentID string
	Err       error
}

// NotificationPublishedPayload carries a user-facing notification.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct {
	FeedbackID string
}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}
