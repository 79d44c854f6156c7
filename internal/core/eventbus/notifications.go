package eventbus

import (
	"fmt"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/notify"
)

var failureFallbacks = map[Operation]string{
	OpCreate: "Failed to add comment. Please try again.",
	OpUpdate: "Failed to update comment. Please try again.",
	OpDelete: "Failed to delete comment. Please try again.",
}

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeCommentAdded(func(CommentAddedPayload) {
		r.notifyf(notify.LevelSuccess, "Comment added successfully!")
	})

	r.bus.SubscribeCommentUpdated(func(CommentUpdatedPayload) {
		r.notifyf(notify.LevelSuccess, "Comment updated successfully!")
	})

	r.bus.SubscribeCommentRemoved(func(CommentRemovedPayload) {
		r.notifyf(notify.LevelSuccess, "Comment deleted successfully!")
	})

	r.bus.SubscribeCommentFailed(func(p CommentFailedPayload) {
		fallback, ok := failureFallbacks[p.Op]
		if !ok {
			fallback = "Something went wrong. Please try again."
		}
		r.notifyf(notify.LevelError, "%s", comment.UserMessage(p.Err, fallback))
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
