package api

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComment_EmbedsAuthor(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := comment.Comment{ID: "c1", FeedbackID: "f1", AuthorID: "u1", Content: "hi", CreatedAt: ts, UpdatedAt: ts}

	data, err := json.Marshal(NewComment(c, comment.Names{"u1": "Alice"}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "c1", raw["id"])
	assert.Equal(t, "hi", raw["content"])
	assert.Equal(t, map[string]any{"id": "u1", "name": "Alice"}, raw["user"])

	bare := NewComment(c, nil)
	assert.Nil(t, bare.User)
}

func TestFeedbackResponse_Names(t *testing.T) {
	resp := FeedbackResponse{
		Feedback: feedback.Feedback{ID: "f1", AuthorID: "u0", AuthorName: "Owner"},
		Comments: []Comment{
			{Comment: comment.Comment{ID: "c1", AuthorID: "u1"}, User: &Author{ID: "u1", Name: "Alice"}},
			{Comment: comment.Comment{ID: "c2", AuthorID: "u2"}},
		},
	}

	names := resp.Names()
	assert.Equal(t, comment.Names{"u0": "Owner", "u1": "Alice"}, names)

	plain := resp.Plain()
	require.Len(t, plain, 2)
	assert.Equal(t, "c2", plain[1].ID)
}

func TestFieldErrors(t *testing.T) {
	err := criterio.ValidateStruct(
		criterio.Run("title", "", func(string) error { return errors.New("Title is required") }),
		criterio.Run("category", "", func(string) error { return errors.New("Please select a category") }),
	)

	fields, ok := FieldErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Title is required"}, fields["title"])

	resp := ErrorResponse{Message: "The given data was invalid.", Errors: fields}
	assert.Equal(t, "Please select a category", resp.First())

	_, ok = FieldErrors(errors.New("plain"))
	assert.False(t, ok)

	assert.Equal(t, "boom", ErrorResponse{Message: "boom"}.First())
}
