package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers events asynchronously. Publish never blocks: when the
// buffer is full the event is dropped and the OnDrop hooks fire. Subscribers
// run sequentially on the goroutine that called Start.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) PublishCommentAdded(p CommentAddedPayload) {
	bus.send(EventCommentAdded, p)
}

func (bus *EventBus) SubscribeCommentAdded(fn func(CommentAddedPayload)) {
	bus.subscribe(EventCommentAdded, func(p any) { fn(p.(CommentAddedPayload)) })
}

func (bus *EventBus) PublishCommentFailed(p CommentFailedPayload) {
	bus.send(EventCommentFailed, p)
}

func (bus *EventBus) SubscribeCommentFailed(fn func(CommentFailedPayload)) {
	bus.subscribe(EventCommentFailed, func(p any) { fn(p.(CommentFailedPayload)) })
}

func (bus *EventBus) PublishCommentRemoved(p CommentRemovedPayload) {
	bus.send(EventCommentRemoved, p)
}

func (bus *EventBus) SubscribeCommentRemoved(fn func(CommentRemovedPayload)) {
	bus.subscribe(EventCommentRemoved, func(p any) { fn(p.(CommentRemovedPayload)) })
}

func (bus *EventBus) PublishCommentUpdated(p CommentUpdatedPayload) {
	bus.send(EventCommentUpdated, p)
}

func (bus *EventBus) SubscribeCommentUpdated(fn func(CommentUpdatedPayload)) {
	bus.subscribe(EventCommentUpdated, func(p any) { fn(p.(CommentUpdatedPayload)) })
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}

func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(p any) { fn(p.(TUIStartedPayload)) })
}

func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(p any) { fn(p.(TUIStoppedPayload)) })
}
