package notify

import (
	"context"
	"testing"

	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/colonyops/feedboard/internal/data/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishLevels(t *testing.T) {
	bus := NewBus(nil)

	var received []notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		received = append(received, n)
	})

	bus.Successf("Comment added successfully!")
	bus.Errorf("Failed to delete comment. %s", "Please try again.")
	bus.Infof("info")
	bus.Warnf("warn")

	require.Len(t, received, 4)
	assert.Equal(t, notify.LevelSuccess, received[0].Level)
	assert.Equal(t, notify.LevelError, received[1].Level)
	assert.Equal(t, "Failed to delete comment. Please try again.", received[1].Message)
	assert.Equal(t, notify.LevelInfo, received[2].Level)
	assert.Equal(t, notify.LevelWarning, received[3].Level)
	assert.False(t, received[0].CreatedAt.IsZero())
}

func TestBus_PersistsBeforeDispatch(t *testing.T) {
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	bus := NewBus(stores.NewNotifyStore(database, stores.DefaultNotificationRetention))

	var ids []int64
	bus.Subscribe(func(n notify.Notification) { ids = append(ids, n.ID) })

	bus.Successf("first")
	bus.Errorf("second")

	require.Len(t, ids, 2)
	assert.NotZero(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])

	ctx := context.Background()
	history, err := bus.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Message)

	require.NoError(t, bus.Clear(ctx))
	history, err = bus.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestBus_NilStore(t *testing.T) {
	bus := NewBus(nil)
	history, err := bus.History(context.Background())
	require.NoError(t, err)
	assert.Nil(t, history)
	assert.NoError(t, bus.Clear(context.Background()))
}
