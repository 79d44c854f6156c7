package stores

import (
	"context"
	"testing"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seedUser(t *testing.T, store *UserStore, email, name string, role comment.Role) identity.User {
	t.Helper()
	u, err := store.Create(context.Background(), NewUser{
		Email:        email,
		Name:         name,
		PasswordHash: "hash",
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func seedFeedback(t *testing.T, store *FeedbackStore, userID, title string, category feedback.Category) feedback.Feedback {
	t.Helper()
	f, err := store.Create(context.Background(), userID, feedback.Draft{
		Title:       title,
		Description: "A description that is long enough.",
		Category:    category,
	})
	require.NoError(t, err)
	return f
}
