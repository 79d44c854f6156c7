package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/colonyops/feedboard/internal/data/db"
)

// DefaultNotificationRetention is how many notifications NotifyStore keeps
// when no retention is given.
const DefaultNotificationRetention = 200

// NotifyStore implements notify.Store using SQLite. It keeps the toast
// history shown by `feedboard notifications`.
type NotifyStore struct {
	db        *db.DB
	retention int
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a notification store that keeps the newest
// retention entries. Zero or negative retention uses the default.
func NewNotifyStore(db *db.DB, retention int) *NotifyStore {
	if retention <= 0 {
		retention = DefaultNotificationRetention
	}
	return &NotifyStore{db: db, retention: retention}
}

// Save persists a notification, trims old entries and returns the new ID.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) (int64, error) {
	var id int64
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		var err error
		id, err = q.InsertNotification(ctx, db.InsertNotificationParams{
			Level:     string(n.Level),
			Message:   n.Message,
			CreatedAt: n.CreatedAt.UnixNano(),
		})
		if err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
		if err := q.PruneNotifications(ctx, int64(s.retention)); err != nil {
			return fmt.Errorf("prune notifications: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns stored notifications, newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Notification, error) {
	rows, err := s.db.Queries().ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result := make([]notify.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, notify.Notification{
			ID:        row.ID,
			Level:     notify.Level(row.Level),
			Message:   row.Message,
			CreatedAt: time.Unix(0, row.CreatedAt),
		})
	}
	return result, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	if err := s.db.Queries().DeleteAllNotifications(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the number of stored notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	count, err := s.db.Queries().CountNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}
