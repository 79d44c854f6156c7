package db

import "context"

const createComment = `
INSERT INTO comments (id, feedback_id, user_id, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateCommentParams struct {
	ID         string
	FeedbackID string
	UserID     string
	Content    string
	CreatedAt  int64
}

func (q *Queries) CreateComment(ctx context.Context, arg CreateCommentParams) error {
	_, err := q.db.ExecContext(ctx, createComment,
		arg.ID, arg.FeedbackID, arg.UserID, arg.Content, arg.CreatedAt, arg.CreatedAt,
	)
	return err
}

const commentSelect = `
SELECT c.id, c.feedback_id, c.user_id, COALESCE(u.name, ''), c.content, c.created_at, c.updated_at
FROM comments c
LEFT JOIN users u ON u.id = c.user_id
`

func scanComment(row rowScanner) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.FeedbackID, &c.UserID, &c.AuthorName, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getComment = commentSelect + `WHERE c.id = ?`

func (q *Queries) GetComment(ctx context.Context, id string) (Comment, error) {
	return scanComment(q.db.QueryRowContext(ctx, getComment, id))
}

// Comments are returned in insertion order.
const listCommentsByFeedback = commentSelect + `WHERE c.feedback_id = ? ORDER BY c.seq`

func (q *Queries) ListCommentsByFeedback(ctx context.Context, feedbackID string) ([]Comment, error) {
	rows, err := q.db.QueryContext(ctx, listCommentsByFeedback, feedbackID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanComment)
}

const updateComment = `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`

type UpdateCommentParams struct {
	ID        string
	Content   string
	UpdatedAt int64
}

// UpdateComment returns the number of rows changed.
func (q *Queries) UpdateComment(ctx context.Context, arg UpdateCommentParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateComment, arg.Content, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteComment = `DELETE FROM comments WHERE id = ?`

// DeleteComment returns the number of rows removed.
func (q *Queries) DeleteComment(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteComment, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
