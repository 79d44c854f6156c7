// Package notify is the TUI side of notifications: it persists each
// notification and hands it to the toast stack.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/rs/zerolog/log"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus dispatches notifications to subscribers inline and persists them to a
// Store. It is meant to be driven from the Bubble Tea Update loop.
type Bus struct {
	store notify.Store

	mu          sync.Mutex
	subscribers []Subscriber
}

// NewBus creates a notification bus backed by store. A nil store keeps
// notifications in memory only.
func NewBus(store notify.Store) *Bus {
	return &Bus{store: store}
}

// Subscribe registers fn for every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish persists n and then dispatches it, so subscribers see the stored ID.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if b.store != nil {
		id, err := b.store.Save(context.Background(), n)
		if err != nil {
			log.Error().Err(err).Str("message", n.Message).Msg("failed to persist notification")
		} else {
			n.ID = id
		}
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

func (b *Bus) publishf(level notify.Level, format string, args ...any) {
	b.Publish(notify.Notification{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (b *Bus) Successf(format string, args ...any) { b.publishf(notify.LevelSuccess, format, args...) }
func (b *Bus) Infof(format string, args ...any)    { b.publishf(notify.LevelInfo, format, args...) }
func (b *Bus) Warnf(format string, args ...any)    { b.publishf(notify.LevelWarning, format, args...) }
func (b *Bus) Errorf(format string, args ...any)   { b.publishf(notify.LevelError, format, args...) }

// History returns persisted notifications, newest first.
func (b *Bus) History(ctx context.Context) ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.List(ctx)
}

// Clear deletes all persisted notifications.
func (b *Bus) Clear(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	return b.store.Clear(ctx)
}
