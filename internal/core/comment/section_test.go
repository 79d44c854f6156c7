package comment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mutationLog struct {
	mu  sync.Mutex
	got []Mutation
}

func (m *mutationLog) observe(mut Mutation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, mut)
}

func newTestSection(actor ActorSource, confirm Confirmer) (*Section, *fakeGateway, *mutationLog) {
	initial := []Comment{
		seeded("c-a", alice.ID, "first comment"),
		seeded("c-b", bob.ID, "second comment"),
		seeded("c-c", alice.ID, "third comment"),
	}
	gw := newFakeGateway(alice.ID, initial...)
	s := NewSection("f1", gw, actor, confirm, initial)
	log := &mutationLog{}
	s.Observe(log.observe)
	return s, gw, log
}

func ids(comments []Comment) []string {
	out := make([]string, len(comments))
	for i, c := range comments {
		out[i] = c.ID
	}
	return out
}

func TestSection_SubmitAppends(t *testing.T) {
	s, _, log := newTestSection(alice, nil)
	require.NoError(t, s.Composer().Type("a brand new comment"))

	created, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"c-a", "c-b", "c-c", created.ID}, ids(s.Comments()))
	assert.Equal(t, Draft{}, s.Composer().Draft(), "composer is reset after a confirmed create")

	_, ok := s.Editor(created.ID)
	assert.True(t, ok)

	require.Len(t, log.got, 1)
	assert.Equal(t, MutationAdded, log.got[0].Kind)
	assert.Equal(t, created.ID, log.got[0].CommentID)
}

func TestSection_SubmitDuplicateReplacesInPlace(t *testing.T) {
	initial := []Comment{
		seeded("c1", alice.ID, "already listed"),
		seeded("c-b", bob.ID, "second comment"),
	}
	s := NewSection("f1", newFakeGateway(alice.ID), alice, nil, initial)
	log := &mutationLog{}
	s.Observe(log.observe)

	require.NoError(t, s.Composer().Type("confirmed by the server"))
	created, err := s.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "c1", created.ID)
	assert.Equal(t, []string{"c1", "c-b"}, ids(s.Comments()))
	assert.Equal(t, "confirmed by the server", s.Comments()[0].Content)
	assert.Equal(t, Draft{}, s.Composer().Draft())

	ed, ok := s.Editor("c1")
	require.True(t, ok)
	assert.Equal(t, "confirmed by the server", ed.Comment().Content)

	require.Len(t, log.got, 1)
	assert.Equal(t, MutationUpdated, log.got[0].Kind)
}

func TestSection_SubmitFailureLeavesList(t *testing.T) {
	s, gw, log := newTestSection(alice, nil)
	gw.createErr = &GatewayError{Op: "create comment", Kind: ErrNetwork}
	require.NoError(t, s.Composer().Type("will not land"))

	_, err := s.Submit(context.Background())

	require.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "will not land", s.Composer().Draft().Text)
	assert.Empty(t, log.got)
}

func TestSection_SaveKeepsPosition(t *testing.T) {
	s, _, log := newTestSection(alice, nil)
	ed, ok := s.Editor("c-a")
	require.True(t, ok)
	require.NoError(t, ed.BeginEdit())
	require.NoError(t, ed.SetWorking("first comment, revised"))

	updated, err := s.Save(context.Background(), "c-a")

	require.NoError(t, err)
	comments := s.Comments()
	assert.Equal(t, []string{"c-a", "c-b", "c-c"}, ids(comments))
	assert.Equal(t, "first comment, revised", comments[0].Content)
	assert.True(t, comments[0].Edited())
	assert.Equal(t, updated, comments[0])

	require.Len(t, log.got, 1)
	assert.Equal(t, MutationUpdated, log.got[0].Kind)
}

func TestSection_SaveNotFoundLeavesList(t *testing.T) {
	s, gw, log := newTestSection(alice, nil)
	gw.updateErr = &GatewayError{Op: "update comment", Status: 404, Kind: ErrNotFound}
	ed, _ := s.Editor("c-c")
	require.NoError(t, ed.BeginEdit())
	require.NoError(t, ed.SetWorking("gone already"))

	_, err := s.Save(context.Background(), "c-c")

	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []string{"c-a", "c-b", "c-c"}, ids(s.Comments()))
	assert.Equal(t, "third comment", s.Comments()[2].Content)
	assert.Empty(t, log.got)
}

func TestSection_DeleteRemoves(t *testing.T) {
	s, _, log := newTestSection(alice, &recordingConfirmer{answer: true})

	deleted, err := s.Delete(context.Background(), "c-a")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"c-b", "c-c"}, ids(s.Comments()))

	_, ok := s.Editor("c-a")
	assert.False(t, ok)

	require.Len(t, log.got, 1)
	assert.Equal(t, MutationRemoved, log.got[0].Kind)
	assert.Equal(t, "c-a", log.got[0].CommentID)
}

func TestSection_DeleteDeclinedKeeps(t *testing.T) {
	s, _, log := newTestSection(alice, &recordingConfirmer{answer: false})

	deleted, err := s.Delete(context.Background(), "c-a")

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 3, s.Len())
	assert.Empty(t, log.got)
}

func TestSection_AdminDeletesOthers(t *testing.T) {
	s, _, _ := newTestSection(admin, &recordingConfirmer{answer: true})

	deleted, err := s.Delete(context.Background(), "c-b")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"c-a", "c-c"}, ids(s.Comments()))
}

func TestSection_UnknownComment(t *testing.T) {
	s, _, _ := newTestSection(alice, &recordingConfirmer{answer: true})

	_, err := s.Save(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSection_IndependentMachinesRunConcurrently(t *testing.T) {
	s, gw, _ := newTestSection(alice, &recordingConfirmer{answer: true})
	gw.gate = make(chan struct{})
	gw.started = make(chan struct{}, 2)

	require.NoError(t, s.Composer().Type("concurrent create"))
	ed, _ := s.Editor("c-a")
	require.NoError(t, ed.BeginEdit())
	require.NoError(t, ed.SetWorking("concurrent edit"))

	errs := make(chan error, 2)
	go func() {
		_, err := s.Submit(context.Background())
		errs <- err
	}()
	go func() {
		_, err := s.Save(context.Background(), "c-a")
		errs <- err
	}()

	<-gw.started
	<-gw.started
	close(gw.gate)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	comments := s.Comments()
	assert.Len(t, comments, 4)
	assert.Equal(t, "concurrent edit", comments[0].Content)
}

func TestList(t *testing.T) {
	l := NewList(nil)

	require.NoError(t, l.Add(seeded("1", "u", "one")))
	require.NoError(t, l.Add(seeded("2", "u", "two")))
	assert.Error(t, l.Add(seeded("1", "u", "dup")))

	assert.False(t, l.Upsert(seeded("2", "u", "dos")))
	assert.True(t, l.Upsert(seeded("3", "u", "three")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(l.Comments()))
	require.NoError(t, l.Remove("3"))

	require.NoError(t, l.Replace("1", seeded("1", "u", "uno")))
	got, ok := l.Get("1")
	require.True(t, ok)
	assert.Equal(t, "uno", got.Content)

	assert.ErrorIs(t, l.Replace("9", Comment{}), ErrNotFound)
	assert.ErrorIs(t, l.Remove("9"), ErrNotFound)

	require.NoError(t, l.Remove("1"))
	assert.Equal(t, []string{"2"}, ids(l.Comments()))
}
