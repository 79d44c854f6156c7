package comment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeGateway is an in-memory Gateway. When gate is set every call signals
// on started and then waits for gate to be closed.
type fakeGateway struct {
	mu       sync.Mutex
	authorID string
	seq      int
	comments map[string]Comment

	createErr error
	updateErr error
	deleteErr error

	creates int
	updates int
	deletes int

	gate    chan struct{}
	started chan struct{}
}

func newFakeGateway(authorID string, existing ...Comment) *fakeGateway {
	g := &fakeGateway{
		authorID: authorID,
		comments: make(map[string]Comment),
	}
	for _, c := range existing {
		g.comments[c.ID] = c
	}
	return g
}

func (g *fakeGateway) wait(ctx context.Context) error {
	if g.gate == nil {
		return nil
	}
	g.started <- struct{}{}
	select {
	case <-g.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *fakeGateway) Create(ctx context.Context, feedbackID, content string) (Comment, error) {
	if err := g.wait(ctx); err != nil {
		return Comment{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.creates++
	if g.createErr != nil {
		return Comment{}, g.createErr
	}

	g.seq++
	c := Comment{
		ID:         fmt.Sprintf("c%d", g.seq),
		FeedbackID: feedbackID,
		AuthorID:   g.authorID,
		Content:    content,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
	g.comments[c.ID] = c
	return c, nil
}

func (g *fakeGateway) Update(ctx context.Context, commentID, content string) (Comment, error) {
	if err := g.wait(ctx); err != nil {
		return Comment{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates++
	if g.updateErr != nil {
		return Comment{}, g.updateErr
	}

	c, ok := g.comments[commentID]
	if !ok {
		return Comment{}, &GatewayError{Op: "update comment", Status: 404, Kind: ErrNotFound}
	}
	c.Content = content
	c.UpdatedAt = c.CreatedAt.Add(time.Minute)
	g.comments[commentID] = c
	return c, nil
}

func (g *fakeGateway) Delete(ctx context.Context, commentID string) error {
	if err := g.wait(ctx); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.deletes++
	if g.deleteErr != nil {
		return g.deleteErr
	}
	if _, ok := g.comments[commentID]; !ok {
		return &GatewayError{Op: "delete comment", Status: 404, Kind: ErrNotFound}
	}
	delete(g.comments, commentID)
	return nil
}

func (g *fakeGateway) counts() (creates, updates, deletes int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.creates, g.updates, g.deletes
}

// recordingConfirmer answers with a fixed value and records the questions.
type recordingConfirmer struct {
	answer    bool
	err       error
	questions []string
}

func (c *recordingConfirmer) Ask(_ context.Context, message string) (bool, error) {
	c.questions = append(c.questions, message)
	return c.answer, c.err
}

func seeded(id, authorID, content string) Comment {
	return Comment{
		ID:         id,
		FeedbackID: "f1",
		AuthorID:   authorID,
		Content:    content,
		CreatedAt:  baseTime,
		UpdatedAt:  baseTime,
	}
}

var (
	alice = StaticActor{ID: "u-alice", DisplayName: "Alice", Role: RoleMember}
	bob   = StaticActor{ID: "u-bob", DisplayName: "Bob", Role: RoleMember}
	admin = StaticActor{ID: "u-admin", DisplayName: "Root", Role: RoleAdmin}
)
