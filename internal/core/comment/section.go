package comment

import (
	"context"
	"fmt"
	"sync"
)

// MutationKind identifies a confirmed change to the comment list.
type MutationKind string

const (
	MutationAdded   MutationKind = "added"
	MutationUpdated MutationKind = "updated"
	MutationRemoved MutationKind = "removed"
)

// Mutation describes a change applied to the list. Comment is the zero value
// for removals.
type Mutation struct {
	Kind       MutationKind
	FeedbackID string
	CommentID  string
	Comment    Comment
}

// Observer is notified after a mutation has been applied to the list.
type Observer func(Mutation)

// Section ties the comment list of one feedback item to its composer and to
// one editor per comment. Composer and editors report confirmed results; the
// section is the only place that mutates the list.
type Section struct {
	feedbackID string
	gateway    Gateway
	actors     ActorSource
	confirmer  Confirmer
	opts       []Option

	list     *List
	composer *Composer

	mu        sync.Mutex
	editors   map[string]*Editor
	observers []Observer
}

// NewSection builds a section over the initial comments of feedbackID.
func NewSection(feedbackID string, gw Gateway, actors ActorSource, confirmer Confirmer, initial []Comment, opts ...Option) *Section {
	s := &Section{
		feedbackID: feedbackID,
		gateway:    gw,
		actors:     actors,
		confirmer:  confirmer,
		opts:       opts,
		list:       NewList(initial),
		composer:   NewComposer(feedbackID, gw, opts...),
		editors:    make(map[string]*Editor, len(initial)),
	}

	for _, c := range initial {
		s.editors[c.ID] = s.newEditor(c)
	}

	return s
}

// FeedbackID returns the feedback item the section belongs to.
func (s *Section) FeedbackID() string {
	return s.feedbackID
}

// Comments returns the comments in display order.
func (s *Section) Comments() []Comment {
	return s.list.Comments()
}

// Len returns the number of comments.
func (s *Section) Len() int {
	return s.list.Len()
}

// Composer returns the new-comment composer.
func (s *Section) Composer() *Composer {
	return s.composer
}

// Editor returns the inline editor for the comment with id.
func (s *Section) Editor(id string) (*Editor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ed, ok := s.editors[id]
	return ed, ok
}

// Observe registers fn to be called after every applied mutation.
func (s *Section) Observe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Submit sends the composer's draft. On success the created comment is
// appended to the list and the composer is reset. A confirmed comment whose id
// is already listed replaces that entry in place.
func (s *Section) Submit(ctx context.Context) (Comment, error) {
	created, err := s.composer.Submit(ctx)
	if err != nil {
		return Comment{}, err
	}

	kind := MutationAdded
	if !s.list.Upsert(created) {
		kind = MutationUpdated
	}

	s.mu.Lock()
	// An editor that is mid-edit keeps its session.
	if ed, ok := s.editors[created.ID]; !ok || ed.Session().Phase == PhaseViewing {
		s.editors[created.ID] = s.newEditor(created)
	}
	s.mu.Unlock()

	s.composer.Reset()
	s.notify(Mutation{Kind: kind, FeedbackID: s.feedbackID, CommentID: created.ID, Comment: created})
	return created, nil
}

// Save persists the editor's working text for comment id and replaces the
// comment in place once the gateway confirms.
func (s *Section) Save(ctx context.Context, id string) (Comment, error) {
	ed, ok := s.Editor(id)
	if !ok {
		return Comment{}, fmt.Errorf("save comment %s: %w", id, ErrNotFound)
	}

	updated, err := ed.Save(ctx)
	if err != nil {
		return Comment{}, err
	}

	if err := s.list.Replace(id, updated); err != nil {
		return Comment{}, err
	}

	s.notify(Mutation{Kind: MutationUpdated, FeedbackID: s.feedbackID, CommentID: id, Comment: updated})
	return updated, nil
}

// Delete runs the confirmed delete flow for comment id. It reports whether the
// comment was removed.
func (s *Section) Delete(ctx context.Context, id string) (bool, error) {
	ed, ok := s.Editor(id)
	if !ok {
		return false, fmt.Errorf("delete comment %s: %w", id, ErrNotFound)
	}

	deleted, err := ed.Delete(ctx)
	if err != nil || !deleted {
		return false, err
	}

	if err := s.list.Remove(id); err != nil {
		return false, err
	}

	s.mu.Lock()
	delete(s.editors, id)
	s.mu.Unlock()

	s.notify(Mutation{Kind: MutationRemoved, FeedbackID: s.feedbackID, CommentID: id})
	return true, nil
}

func (s *Section) newEditor(c Comment) *Editor {
	return NewEditor(c, s.gateway, s.actors, s.confirmer, s.opts...)
}

func (s *Section) notify(m Mutation) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(m)
	}
}
