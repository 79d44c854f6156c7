package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/google/uuid"
)

// FeedbackStore persists feedback items.
type FeedbackStore struct {
	db *db.DB
}

// NewFeedbackStore creates a new SQLite-backed feedback store.
func NewFeedbackStore(db *db.DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Create stores a validated draft authored by userID.
func (s *FeedbackStore) Create(ctx context.Context, userID string, d feedback.Draft) (feedback.Feedback, error) {
	d = d.Normalized()
	id := uuid.NewString()

	err := s.db.Queries().CreateFeedback(ctx, db.CreateFeedbackParams{
		ID:          id,
		UserID:      userID,
		Title:       d.Title,
		Description: d.Description,
		Category:    string(d.Category),
		CreatedAt:   time.Now().UnixNano(),
	})
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}

	return s.Get(ctx, id)
}

// Get returns a feedback item by ID.
func (s *FeedbackStore) Get(ctx context.Context, id string) (feedback.Feedback, error) {
	row, err := s.db.Queries().GetFeedback(ctx, id)
	if IsNotFoundError(err) {
		return feedback.Feedback{}, feedback.ErrNotFound
	}
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("get feedback: %w", err)
	}
	return rowToFeedback(row), nil
}

// List returns one page of feedback, newest first.
func (s *FeedbackStore) List(ctx context.Context, f feedback.Filter) (feedback.Page, error) {
	f = f.Normalize()
	q := s.db.Queries()

	total, err := q.CountFeedback(ctx, string(f.Category), f.Search)
	if err != nil {
		return feedback.Page{}, fmt.Errorf("count feedback: %w", err)
	}

	rows, err := q.ListFeedback(ctx, db.ListFeedbackParams{
		Category: string(f.Category),
		Search:   f.Search,
		Limit:    int64(f.PerPage),
		Offset:   int64(f.Offset()),
	})
	if err != nil {
		return feedback.Page{}, fmt.Errorf("list feedback: %w", err)
	}

	items := make([]feedback.Feedback, 0, len(rows))
	for _, row := range rows {
		items = append(items, rowToFeedback(row))
	}

	return feedback.NewPage(items, f, int(total)), nil
}

func rowToFeedback(row db.Feedback) feedback.Feedback {
	return feedback.Feedback{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Category:    feedback.Category(row.Category),
		AuthorID:    row.UserID,
		AuthorName:  row.AuthorName,
		Comments:    int(row.CommentsCount),
		CreatedAt:   time.Unix(0, row.CreatedAt),
		UpdatedAt:   time.Unix(0, row.UpdatedAt),
	}
}
