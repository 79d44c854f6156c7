package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/google/uuid"
)

// CommentStore persists comments. Content is stored as raw markup.
type CommentStore struct {
	db  *db.DB
	now func() time.Time
}

// NewCommentStore creates a new SQLite-backed comment store.
func NewCommentStore(db *db.DB) *CommentStore {
	return &CommentStore{db: db, now: time.Now}
}

// Create appends a comment to a feedback item. Returns feedback.ErrNotFound
// when the feedback item does not exist.
func (s *CommentStore) Create(ctx context.Context, feedbackID, userID, content string) (comment.Comment, error) {
	now := s.now()
	c := comment.Comment{
		ID:         uuid.NewString(),
		FeedbackID: feedbackID,
		AuthorID:   userID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.db.Queries().CreateComment(ctx, db.CreateCommentParams{
		ID:         c.ID,
		FeedbackID: c.FeedbackID,
		UserID:     c.AuthorID,
		Content:    c.Content,
		CreatedAt:  now.UnixNano(),
	})
	if IsForeignKeyError(err) {
		return comment.Comment{}, feedback.ErrNotFound
	}
	if err != nil {
		return comment.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	return c, nil
}

// Get returns a comment by ID.
func (s *CommentStore) Get(ctx context.Context, id string) (comment.Comment, error) {
	row, err := s.db.Queries().GetComment(ctx, id)
	if IsNotFoundError(err) {
		return comment.Comment{}, comment.ErrNotFound
	}
	if err != nil {
		return comment.Comment{}, fmt.Errorf("get comment: %w", err)
	}
	return rowToComment(row), nil
}

// ListByFeedback returns the comments of a feedback item in insertion order
// together with the display names of their authors.
func (s *CommentStore) ListByFeedback(ctx context.Context, feedbackID string) ([]comment.Comment, comment.Names, error) {
	rows, err := s.db.Queries().ListCommentsByFeedback(ctx, feedbackID)
	if err != nil {
		return nil, nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]comment.Comment, 0, len(rows))
	names := make(comment.Names, len(rows))
	for _, row := range rows {
		comments = append(comments, rowToComment(row))
		if row.AuthorName != "" {
			names[row.UserID] = row.AuthorName
		}
	}

	return comments, names, nil
}

// Update replaces the content of a comment and bumps its updated time.
func (s *CommentStore) Update(ctx context.Context, id, content string) (comment.Comment, error) {
	n, err := s.db.Queries().UpdateComment(ctx, db.UpdateCommentParams{
		ID:        id,
		Content:   content,
		UpdatedAt: s.now().UnixNano(),
	})
	if err != nil {
		return comment.Comment{}, fmt.Errorf("update comment: %w", err)
	}
	if n == 0 {
		return comment.Comment{}, comment.ErrNotFound
	}

	return s.Get(ctx, id)
}

// Delete removes a comment.
func (s *CommentStore) Delete(ctx context.Context, id string) error {
	n, err := s.db.Queries().DeleteComment(ctx, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n == 0 {
		return comment.ErrNotFound
	}
	return nil
}

func rowToComment(row db.Comment) comment.Comment {
	return comment.Comment{
		ID:         row.ID,
		FeedbackID: row.FeedbackID,
		AuthorID:   row.UserID,
		Content:    row.Content,
		CreatedAt:  time.Unix(0, row.CreatedAt),
		UpdatedAt:  time.Unix(0, row.UpdatedAt),
	}
}
