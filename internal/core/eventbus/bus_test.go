package eventbus_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/colonyops/feedboard/internal/core/eventbus"
	"github.com/colonyops/feedboard/internal/core/eventbus/testbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_DropsWhenFull(t *testing.T) {
	bus := eventbus.New(1)

	var dropped atomic.Int32
	bus.OnDrop(func(eventbus.Event, any) { dropped.Add(1) })

	// Not started, so the second publish cannot be buffered.
	bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	assert.Equal(t, int32(1), dropped.Load())
}

func TestEventBus_SubscriberPanicIsRecovered(t *testing.T) {
	tb := testbus.New(t)

	var panicked atomic.Bool
	tb.OnPanic(func(eventbus.Event, any, any) { panicked.Store(true) })
	tb.SubscribeTuiStarted(func(eventbus.TUIStartedPayload) { panic("boom") })

	tb.PublishTuiStarted(eventbus.TUIStartedPayload{})
	tb.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	tb.AssertPublished(t, eventbus.EventTuiStopped)
	assert.True(t, panicked.Load())
}

func TestEventBus_OnSubscribe(t *testing.T) {
	bus := eventbus.New(4)

	var got []eventbus.Event
	bus.OnSubscribe(func(e eventbus.Event) { got = append(got, e) })
	bus.SubscribeCommentAdded(func(eventbus.CommentAddedPayload) {})

	assert.Equal(t, []eventbus.Event{eventbus.EventCommentAdded}, got)
}

func TestEventBus_StopsOnCancel(t *testing.T) {
	bus := eventbus.New(4)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		bus.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Start did not return after cancel")
	}
}
