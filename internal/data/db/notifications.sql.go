package db

import "context"

const insertNotification = `
INSERT INTO notifications (level, message, created_at) VALUES (?, ?, ?)
`

type InsertNotificationParams struct {
	Level     string
	Message   string
	CreatedAt int64
}

func (q *Queries) InsertNotification(ctx context.Context, arg InsertNotificationParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertNotification, arg.Level, arg.Message, arg.CreatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listNotifications = `
SELECT id, level, message, created_at FROM notifications ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListNotifications(ctx context.Context) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, listNotifications)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (Notification, error) {
		var n Notification
		err := row.Scan(&n.ID, &n.Level, &n.Message, &n.CreatedAt)
		return n, err
	})
}

const deleteAllNotifications = `DELETE FROM notifications`

func (q *Queries) DeleteAllNotifications(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllNotifications)
	return err
}

const countNotifications = `SELECT COUNT(*) FROM notifications`

func (q *Queries) CountNotifications(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countNotifications).Scan(&n)
	return n, err
}

const pruneNotifications = `
DELETE FROM notifications WHERE id NOT IN (
    SELECT id FROM notifications ORDER BY created_at DESC, id DESC LIMIT ?
)
`

// PruneNotifications keeps the newest keep rows.
func (q *Queries) PruneNotifications(ctx context.Context, keep int64) error {
	_, err := q.db.ExecContext(ctx, pruneNotifications, keep)
	return err
}
