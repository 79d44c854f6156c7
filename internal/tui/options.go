package tui

import (
	"errors"
	"time"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/eventbus"
	"github.com/colonyops/feedboard/internal/gateway"
	tuinotify "github.com/colonyops/feedboard/internal/tui/notify"
)

// Options configures the comment TUI.
type Options struct {
	FeedbackID string
	Backend    gateway.Backend
	Actors     comment.ActorSource

	Limits         comment.Limits
	ConfirmMessage string

	// Events receives comment mutations. When nil the TUI creates and runs
	// its own bus. A caller-provided bus must already be started.
	Events *eventbus.EventBus
	// Notify persists notifications before they are shown as toasts.
	Notify *tuinotify.Bus

	PreviewWidth  int
	ToastDuration time.Duration

	Now func() time.Time
}

func (o *Options) validate() error {
	if o.FeedbackID == "" {
		return errors.New("feedback id is required")
	}
	if o.Backend == nil {
		return errors.New("backend is required")
	}
	if o.Actors == nil {
		return errors.New("actor source is required")
	}
	return nil
}

func (o *Options) applyDefaults() {
	if o.PreviewWidth <= 0 {
		o.PreviewWidth = 80
	}
	if o.Notify == nil {
		o.Notify = tuinotify.NewBus(nil)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

func (o Options) sectionOptions() []comment.Option {
	return []comment.Option{
		comment.WithLimits(o.Limits),
		comment.WithConfirmMessage(o.ConfirmMessage),
	}
}
