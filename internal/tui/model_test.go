package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/eventbus"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/colonyops/feedboard/internal/gateway"
	"github.com/colonyops/feedboard/pkg/tuitest"
)

var (
	testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	alice   = comment.Actor{ID: "u-alice", DisplayName: "Alice", Role: comment.RoleMember}
	bob     = comment.Actor{ID: "u-bob", DisplayName: "Bob", Role: comment.RoleMember}
)

var errNotSupported = errors.New("not supported in tests")

type fakeBackend struct {
	mu      sync.Mutex
	thread  gateway.Thread
	nextID  int
	created []string
	deleted []string

	createErr error
	updateErr error
	deleteErr error
}

func newFakeBackend() *fakeBackend {
	at := testNow.Add(-2 * time.Hour)
	return &fakeBackend{
		thread: gateway.Thread{
			Feedback: feedback.Feedback{
				ID:          "fb-1",
				Title:       "Dark mode please",
				Description: "The app is too bright at night.",
				Category:    feedback.CategoryFeature,
				AuthorID:    bob.ID,
				CreatedAt:   at,
			},
			Comments: []comment.Comment{
				{ID: "c-1", FeedbackID: "fb-1", AuthorID: alice.ID, Content: "first comment", CreatedAt: at, UpdatedAt: at},
				{ID: "c-2", FeedbackID: "fb-1", AuthorID: bob.ID, Content: "**agreed**", CreatedAt: at, UpdatedAt: at},
			},
			Names: comment.Names{alice.ID: alice.DisplayName, bob.ID: bob.DisplayName},
		},
	}
}

func (f *fakeBackend) Create(_ context.Context, feedbackID, content string) (comment.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return comment.Comment{}, f.createErr
	}
	f.nextID++
	f.created = append(f.created, content)
	return comment.Comment{
		ID:         fmt.Sprintf("new-%d", f.nextID),
		FeedbackID: feedbackID,
		AuthorID:   alice.ID,
		Content:    content,
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}, nil
}

func (f *fakeBackend) Update(_ context.Context, commentID, content string) (comment.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return comment.Comment{}, f.updateErr
	}
	for _, c := range f.thread.Comments {
		if c.ID == commentID {
			c.Content = content
			c.UpdatedAt = testNow
			return c, nil
		}
	}
	return comment.Comment{}, &comment.GatewayError{Op: "update comment", Status: 404, Kind: comment.ErrNotFound}
}

func (f *fakeBackend) Delete(_ context.Context, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, commentID)
	return nil
}

func (f *fakeBackend) Load(context.Context, string) (gateway.Thread, error) {
	return f.thread, nil
}

func (f *fakeBackend) ListFeedback(context.Context, feedback.Filter) (feedback.Page, error) {
	return feedback.Page{}, errNotSupported
}

func (f *fakeBackend) CreateFeedback(context.Context, feedback.Draft) (feedback.Feedback, error) {
	return feedback.Feedback{}, errNotSupported
}

func (f *fakeBackend) CurrentUser(context.Context) (identity.User, error) {
	return identity.User{}, errNotSupported
}

func (f *fakeBackend) Login(context.Context, string, string) (identity.Credentials, error) {
	return identity.Credentials{}, errNotSupported
}

func (f *fakeBackend) Register(context.Context, identity.Registration) (identity.Credentials, error) {
	return identity.Credentials{}, errNotSupported
}

func (f *fakeBackend) Logout(context.Context) error {
	return errNotSupported
}

// newLoadedModel returns a sized model with the fake thread already loaded.
// Events go to an unstarted bus unless the caller provides one.
func newLoadedModel(t *testing.T, backend *fakeBackend, actor comment.Actor, events *eventbus.EventBus) Model {
	t.Helper()

	if events == nil {
		events = eventbus.New(16)
	}
	m, err := New(Options{
		FeedbackID: "fb-1",
		Backend:    backend,
		Actors:     comment.StaticActor(actor),
		Events:     events,
		Now:        func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(m.cancel)

	m, _ = update(t, m, tuitest.WindowSize(100, 40))
	m, _ = update(t, m, threadLoadedMsg{thread: backend.thread})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, msg := range tuitest.Type(s) {
		m, _ = update(t, m, msg)
	}
	return m
}

// runAsync executes cmd and any batched children on their own goroutines,
// delivering every produced message to out. Commands may block, as the
// delete flow does while waiting for confirmation.
func runAsync(cmd tea.Cmd, out chan<- tea.Msg) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				runAsync(c, out)
			}
			return
		}
		if msg != nil {
			out <- msg
		}
	}()
}

func await[T tea.Msg](t *testing.T, ch <-chan tea.Msg) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-ch:
			if v, ok := msg.(T); ok {
				return v
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

// perform runs cmd to completion and feeds the message of type T back into
// the model.
func perform[T tea.Msg](t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	msgs := make(chan tea.Msg, 8)
	runAsync(cmd, msgs)
	m, _ = update(t, m, await[T](t, msgs))
	return m
}

func plain(m Model) string {
	return tuitest.StripANSI(m.render())
}

func TestModel_RendersLoadedThread(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	out := plain(m)
	assert.Contains(t, out, "Dark mode please")
	assert.Contains(t, out, "Comments (2)")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "first comment")
	assert.Contains(t, out, "agreed")
	assert.NotContains(t, out, "**agreed**", "markup is rendered, not shown raw")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "0/500 characters")
}

func TestModel_EmptyThread(t *testing.T) {
	backend := newFakeBackend()
	backend.thread.Comments = nil
	m := newLoadedModel(t, backend, alice, nil)

	out := plain(m)
	assert.Contains(t, out, "Comments (0)")
	assert.Contains(t, out, "No comments yet")

	m, _ = update(t, m, tuitest.KeyTab())
	assert.Equal(t, focusComposer, m.focus, "nothing to focus in an empty list")
}

func TestModel_LoadFailure(t *testing.T) {
	m, err := New(Options{FeedbackID: "missing", Backend: newFakeBackend(), Actors: comment.StaticActor(alice)})
	require.NoError(t, err)
	t.Cleanup(m.cancel)

	m, _ = update(t, m, threadLoadedMsg{err: &comment.GatewayError{
		Op: "load feedback", Status: 404, Message: "Feedback not found.", Kind: comment.ErrNotFound,
	}})

	assert.Contains(t, plain(m), "Feedback not found.")
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, notify.LevelError, m.toasts.Toasts()[0].notification.Level)
}

func TestNew_RequiresBackendAndActors(t *testing.T) {
	_, err := New(Options{FeedbackID: "fb-1"})
	require.Error(t, err)

	_, err = New(Options{Backend: newFakeBackend(), Actors: comment.StaticActor(alice)})
	require.Error(t, err)
}

func TestModel_SubmitComment(t *testing.T) {
	backend := newFakeBackend()
	m := newLoadedModel(t, backend, alice, nil)

	m = typeText(t, m, "hello world")
	assert.Equal(t, "hello world", m.section.Composer().Draft().Text)
	assert.Contains(t, plain(m), "11/500 characters")

	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[submitDoneMsg](t, m, cmd)

	assert.Equal(t, []string{"hello world"}, backend.created)
	assert.Equal(t, 3, m.section.Len())
	assert.Equal(t, "hello world", m.section.Comments()[2].Content, "new comments are appended")
	assert.Empty(t, m.input.Value())
	assert.Equal(t, comment.StateIdle, m.section.Composer().Draft().State)
	assert.Contains(t, plain(m), "Comments (3)")
}

func TestModel_SubmitValidationShowsInline(t *testing.T) {
	backend := newFakeBackend()
	m := newLoadedModel(t, backend, alice, nil)

	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[submitDoneMsg](t, m, cmd)

	assert.Empty(t, backend.created)
	assert.Contains(t, plain(m), "Comment cannot be empty")

	m = typeText(t, m, "x")
	assert.NotContains(t, plain(m), "Comment cannot be empty", "typing clears the error")
}

func TestModel_SubmitFailureKeepsDraft(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = &comment.GatewayError{Op: "create comment", Status: 500, Kind: comment.ErrServer}
	m := newLoadedModel(t, backend, alice, nil)

	m = typeText(t, m, "keep me")
	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[submitDoneMsg](t, m, cmd)

	draft := m.section.Composer().Draft()
	assert.Equal(t, "keep me", draft.Text)
	assert.Equal(t, comment.StateEditing, draft.State)
	assert.Equal(t, "keep me", m.input.Value())
	assert.Equal(t, 2, m.section.Len())
}

func TestModel_ServerValidationShownInline(t *testing.T) {
	backend := newFakeBackend()
	backend.createErr = &comment.GatewayError{
		Op:      "create comment",
		Status:  422,
		Message: "Comment must not exceed 200 characters",
		Kind:    comment.ErrValidation,
	}
	m := newLoadedModel(t, backend, alice, nil)

	m = typeText(t, m, "long enough locally")
	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[submitDoneMsg](t, m, cmd)

	assert.Contains(t, plain(m), "Comment must not exceed 200 characters")
	assert.Equal(t, "long enough locally", m.section.Composer().Draft().Text)
	assert.False(t, m.toasts.HasToasts())
}

func TestModel_FormatInsertsAtCursor(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	m = typeText(t, m, "see ")
	m, _ = update(t, m, tuitest.Ctrl('b'))

	assert.Equal(t, "see **bold text**", m.section.Composer().Draft().Text)
	assert.Equal(t, "see **bold text**", m.input.Value())
	assert.Equal(t, len("see **"), cursorOffset(&m.input))
}

func TestModel_TogglePreview(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	m = typeText(t, m, "**hi**")
	m, _ = update(t, m, tuitest.Ctrl('p'))

	assert.Equal(t, comment.ModePreviewing, m.section.Composer().Draft().Mode)
	out := plain(m)
	assert.Contains(t, out, "Preview")
	assert.NotContains(t, out, "**hi**")

	m = typeText(t, m, "z")
	assert.Equal(t, "**hi**", m.section.Composer().Draft().Text, "preview is read-only")

	m, _ = update(t, m, tuitest.Ctrl('p'))
	assert.Equal(t, comment.ModeEditing, m.section.Composer().Draft().Mode)
	assert.Equal(t, "**hi**", m.input.Value())
}

func TestModel_ListNavigation(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	m, _ = update(t, m, tuitest.KeyTab())
	require.Equal(t, focusList, m.focus)
	assert.Equal(t, 0, m.selected)

	m, _ = update(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, 1, m.selected)
	m, _ = update(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, 1, m.selected, "selection stops at the last comment")
	m, _ = update(t, m, tuitest.KeyPress('k'))
	assert.Equal(t, 0, m.selected)

	m, _ = update(t, m, tuitest.KeyTab())
	assert.Equal(t, focusComposer, m.focus)
}

func TestModel_EditOwnComment(t *testing.T) {
	backend := newFakeBackend()
	m := newLoadedModel(t, backend, alice, nil)

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyPress('e'))
	require.Equal(t, focusEditor, m.focus)
	assert.Equal(t, "c-1", m.editingID)
	assert.Equal(t, "first comment", m.editInput.Value())

	m = typeText(t, m, "!")
	ed, ok := m.section.Editor("c-1")
	require.True(t, ok)
	assert.Equal(t, "first comment!", ed.Session().Working)

	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[saveDoneMsg](t, m, cmd)

	assert.Equal(t, focusList, m.focus)
	assert.Empty(t, m.editingID)
	assert.Equal(t, "first comment!", m.section.Comments()[0].Content)
	assert.Contains(t, plain(m), "first comment!")
}

func TestModel_EditUnchangedLeavesEditing(t *testing.T) {
	backend := newFakeBackend()
	backend.updateErr = errors.New("must not be called")
	m := newLoadedModel(t, backend, alice, nil)

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyPress('e'))
	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[saveDoneMsg](t, m, cmd)

	assert.Equal(t, focusList, m.focus)
	ed, _ := m.section.Editor("c-1")
	assert.Equal(t, comment.PhaseViewing, ed.Session().Phase)
}

func TestModel_EditCancelRestoresOriginal(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyPress('e'))
	m = typeText(t, m, " changed")
	m, _ = update(t, m, tuitest.KeyEsc())

	assert.Equal(t, focusList, m.focus)
	assert.Equal(t, "first comment", m.section.Comments()[0].Content)
	assert.NotContains(t, plain(m), "changed")
}

func TestModel_EditForeignCommentWarns(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	m, _ = update(t, m, tuitest.KeyTab())
	m, _ = update(t, m, tuitest.KeyPress('j'))
	m, _ = update(t, m, tuitest.KeyPress('e'))

	assert.Equal(t, focusList, m.focus)
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, notify.LevelWarning, m.toasts.Toasts()[0].notification.Level)
}

func deleteSelected(t *testing.T, m Model, answer rune) (Model, deleteDoneMsg) {
	t.Helper()
	msgs := make(chan tea.Msg, 8)

	m, cmd := update(t, m, tuitest.KeyPress('d'))
	runAsync(cmd, msgs)
	runAsync(m.confirms.listen(m.ctx), msgs)

	m, _ = update(t, m, await[confirmRequestMsg](t, msgs))
	require.NotNil(t, m.modal)
	assert.Contains(t, tuitest.StripANSI(m.screen()), "Are you sure you want to delete this comment?")

	m, _ = update(t, m, tuitest.KeyPress(answer))
	assert.Nil(t, m.modal)

	done := await[deleteDoneMsg](t, msgs)
	m, _ = update(t, m, done)
	return m, done
}

func TestModel_DeleteConfirmed(t *testing.T) {
	backend := newFakeBackend()
	m := newLoadedModel(t, backend, alice, nil)
	m, _ = update(t, m, tuitest.KeyTab())

	m, done := deleteSelected(t, m, 'y')

	assert.True(t, done.deleted)
	assert.Equal(t, []string{"c-1"}, backend.deleted)
	assert.Equal(t, 1, m.section.Len())
	assert.Contains(t, plain(m), "Comments (1)")
}

func TestModel_DeleteDeclined(t *testing.T) {
	backend := newFakeBackend()
	m := newLoadedModel(t, backend, alice, nil)
	m, _ = update(t, m, tuitest.KeyTab())

	m, done := deleteSelected(t, m, 'n')

	assert.False(t, done.deleted)
	assert.Empty(t, backend.deleted)
	assert.Equal(t, 2, m.section.Len())
}

func TestModel_AdminDeletesForeignComment(t *testing.T) {
	backend := newFakeBackend()
	admin := comment.Actor{ID: "u-admin", DisplayName: "Admin", Role: comment.RoleAdmin}
	m := newLoadedModel(t, backend, admin, nil)
	m, _ = update(t, m, tuitest.KeyTab())

	m, done := deleteSelected(t, m, 'y')

	assert.True(t, done.deleted)
	assert.Equal(t, 1, m.section.Len())
}

func TestModel_DeleteForeignCommentWarns(t *testing.T) {
	backend := newFakeBackend()
	m := newLoadedModel(t, backend, bob, nil)
	m, _ = update(t, m, tuitest.KeyTab())

	m, cmd := update(t, m, tuitest.KeyPress('d'))

	assert.Nil(t, cmd)
	assert.Nil(t, m.modal)
	assert.True(t, m.toasts.HasToasts())
}

func TestModel_MutationsBecomeToasts(t *testing.T) {
	events := eventbus.New(16)
	eventbus.NewNotificationRouter(events).Register()

	backend := newFakeBackend()
	m := newLoadedModel(t, backend, alice, events)
	go events.Start(m.ctx)

	m = typeText(t, m, "ship it")
	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[submitDoneMsg](t, m, cmd)

	m = perform[notificationMsg](t, m, m.waitForNotification())

	require.True(t, m.toasts.HasToasts())
	got := m.toasts.Toasts()[0].notification
	assert.Equal(t, notify.LevelSuccess, got.Level)
	assert.Equal(t, "Comment added successfully!", got.Message)
	assert.Contains(t, tuitest.StripANSI(m.screen()), "Comment added successfully!")
}

func TestModel_FailuresBecomeErrorToasts(t *testing.T) {
	events := eventbus.New(16)
	eventbus.NewNotificationRouter(events).Register()

	backend := newFakeBackend()
	backend.createErr = &comment.GatewayError{Op: "create comment", Status: 500, Kind: comment.ErrServer}
	m := newLoadedModel(t, backend, alice, events)
	go events.Start(m.ctx)

	m = typeText(t, m, "doomed")
	m, cmd := update(t, m, tuitest.Ctrl('s'))
	m = perform[submitDoneMsg](t, m, cmd)
	m = perform[notificationMsg](t, m, m.waitForNotification())

	require.True(t, m.toasts.HasToasts())
	got := m.toasts.Toasts()[0].notification
	assert.Equal(t, notify.LevelError, got.Level)
	assert.Equal(t, "Failed to add comment. Please try again.", got.Message)
}

func TestModel_QuitFromList(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)

	m = typeText(t, m, "q")
	assert.False(t, m.quitting, "q types into the composer")

	m, _ = update(t, m, tuitest.KeyTab())
	m, cmd := update(t, m, tuitest.KeyPress('q'))

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err())
}

func TestModel_HelpDialog(t *testing.T) {
	m := newLoadedModel(t, newFakeBackend(), alice, nil)
	m, _ = update(t, m, tuitest.KeyTab())

	m, _ = update(t, m, tuitest.KeyPress('?'))
	require.NotNil(t, m.help)
	assert.Contains(t, tuitest.StripANSI(m.screen()), "Keyboard shortcuts")

	m, _ = update(t, m, tuitest.KeyPress('j'))
	assert.Equal(t, 0, m.selected, "keys are swallowed while help is open")

	m, _ = update(t, m, tuitest.KeyEsc())
	assert.Nil(t, m.help)
}
