package db

import "context"

const createFeedback = `
INSERT INTO feedback (id, user_id, title, description, category, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateFeedbackParams struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    string
	CreatedAt   int64
}

func (q *Queries) CreateFeedback(ctx context.Context, arg CreateFeedbackParams) error {
	_, err := q.db.ExecContext(ctx, createFeedback,
		arg.ID, arg.UserID, arg.Title, arg.Description, arg.Category, arg.CreatedAt, arg.CreatedAt,
	)
	return err
}

const feedbackSelect = `
SELECT f.id, f.user_id, COALESCE(u.name, ''), f.title, f.description, f.category,
       (SELECT COUNT(*) FROM comments c WHERE c.feedback_id = f.id),
       f.created_at, f.updated_at
FROM feedback f
LEFT JOIN users u ON u.id = f.user_id
`

func scanFeedback(row rowScanner) (Feedback, error) {
	var f Feedback
	err := row.Scan(&f.ID, &f.UserID, &f.AuthorName, &f.Title, &f.Description, &f.Category,
		&f.CommentsCount, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const getFeedback = feedbackSelect + `WHERE f.id = ?`

func (q *Queries) GetFeedback(ctx context.Context, id string) (Feedback, error) {
	return scanFeedback(q.db.QueryRowContext(ctx, getFeedback, id))
}

// Empty category or search disables that filter.
const feedbackFilter = `
WHERE (?1 = '' OR f.category = ?1)
  AND (?2 = '' OR f.title LIKE '%' || ?2 || '%' OR f.description LIKE '%' || ?2 || '%')
`

const listFeedback = feedbackSelect + feedbackFilter + `
ORDER BY f.created_at DESC, f.id
LIMIT ?3 OFFSET ?4
`

type ListFeedbackParams struct {
	Category string
	Search   string
	Limit    int64
	Offset   int64
}

func (q *Queries) ListFeedback(ctx context.Context, arg ListFeedbackParams) ([]Feedback, error) {
	rows, err := q.db.QueryContext(ctx, listFeedback, arg.Category, arg.Search, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanFeedback)
}

const countFeedback = `SELECT COUNT(*) FROM feedback f` + feedbackFilter

func (q *Queries) CountFeedback(ctx context.Context, category, search string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countFeedback, category, search).Scan(&n)
	return n, err
}
