package comment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{name: "seconds", at: now.Add(-30 * time.Second), want: "just now"},
		{name: "future", at: now.Add(time.Minute), want: "just now"},
		{name: "minutes", at: now.Add(-5 * time.Minute), want: "5 minutes ago"},
		{name: "hours", at: now.Add(-3*time.Hour - 10*time.Minute), want: "3 hours ago"},
		{name: "days", at: now.Add(-50 * time.Hour), want: "2 days ago"},
		{name: "six days", at: now.Add(-6*24*time.Hour - time.Hour), want: "6 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ago(now, tt.at))
		})
	}
}

func TestAgo_AbsoluteAfterAWeek(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	at := now.Add(-8 * 24 * time.Hour)

	assert.Equal(t, at.Local().Format("Jan 2, 2006 15:04"), Ago(now, at))
}

func TestAuthorName(t *testing.T) {
	names := Names{"u1": "Alice", "u2": ""}

	assert.Equal(t, "Alice", AuthorName(names, Comment{AuthorID: "u1"}))
	assert.Equal(t, UnknownAuthor, AuthorName(names, Comment{AuthorID: "u2"}))
	assert.Equal(t, UnknownAuthor, AuthorName(names, Comment{AuthorID: "u3"}))
	assert.Equal(t, UnknownAuthor, AuthorName(nil, Comment{AuthorID: "u1"}))
}

func TestInitial(t *testing.T) {
	assert.Equal(t, "A", Initial("alice"))
	assert.Equal(t, "É", Initial("élodie"))
	assert.Equal(t, "?", Initial(""))
	assert.Equal(t, "?", Initial(UnknownAuthor))
}

func TestEdited(t *testing.T) {
	c := seeded("c1", "u", "x")
	assert.False(t, c.Edited())

	c.UpdatedAt = c.CreatedAt.Add(time.Second)
	assert.True(t, c.Edited())
}
