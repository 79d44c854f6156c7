package comment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/colonyops/feedboard/internal/core/markup"
)

// Phase is the lifecycle phase of an inline editor.
type Phase int

const (
	PhaseViewing Phase = iota
	PhaseEditing
	PhaseSaving
	PhaseDeleting
	PhaseDeleted
)

func (p Phase) String() string {
	switch p {
	case PhaseViewing:
		return "viewing"
	case PhaseEditing:
		return "editing"
	case PhaseSaving:
		return "saving"
	case PhaseDeleting:
		return "deleting"
	case PhaseDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// EditSession is a snapshot of an editor's state. Working is only meaningful
// while editing or saving.
type EditSession struct {
	Original string
	Working  string
	Phase    Phase
	Err      error
}

// Editor manages inline editing and deletion of a single comment:
//
//	Viewing -> Editing -> Saving -> Viewing   (success)
//	                             -> Editing   (failure, working text kept)
//	Viewing -> Deleting -> Deleted            (confirmed and removed)
//	                    -> Viewing            (declined or failed)
//
// Authorization is checked against the current actor at the moment of each
// transition.
type Editor struct {
	mu        sync.Mutex
	comment   Comment
	gateway   Gateway
	actors    ActorSource
	confirmer Confirmer
	settings  settings
	log       zerolog.Logger
	session   EditSession
}

// NewEditor returns an editor in the viewing phase for c.
func NewEditor(c Comment, gw Gateway, actors ActorSource, confirmer Confirmer, opts ...Option) *Editor {
	return &Editor{
		comment:   c,
		gateway:   gw,
		actors:    actors,
		confirmer: confirmer,
		settings:  newSettings(opts),
		log:       logging.Component("editor").With().Str("comment_id", c.ID).Logger(),
		session:   EditSession{Original: c.Content},
	}
}

// Comment returns the comment as last confirmed by the gateway.
func (e *Editor) Comment() Comment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.comment
}

// Session returns a snapshot of the edit session.
func (e *Editor) Session() EditSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// CanEdit reports whether the current actor may edit the comment.
func (e *Editor) CanEdit() bool {
	actor, ok := e.actor()
	return ok && CanEdit(actor, e.Comment())
}

// CanDelete reports whether the current actor may delete the comment.
func (e *Editor) CanDelete() bool {
	actor, ok := e.actor()
	return ok && CanDelete(actor, e.Comment())
}

// BeginEdit enters the editing phase with the working text set to the
// original content.
func (e *Editor) BeginEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.busy(); err != nil {
		return err
	}
	if e.session.Phase != PhaseViewing {
		return fmt.Errorf("begin edit while %s: %w", e.session.Phase, ErrInvalidTransition)
	}

	actor, ok := e.actor()
	if !ok || !CanEdit(actor, e.comment) {
		return ErrUnauthorized
	}

	e.session = EditSession{
		Original: e.comment.Content,
		Working:  e.comment.Content,
		Phase:    PhaseEditing,
	}
	e.log.Debug().Msg("edit started")
	return nil
}

// SetWorking replaces the working text and clears any error.
func (e *Editor) SetWorking(text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.busy(); err != nil {
		return err
	}
	if e.session.Phase != PhaseEditing {
		return fmt.Errorf("set working text while %s: %w", e.session.Phase, ErrInvalidTransition)
	}

	e.session.Working = text
	e.session.Err = nil
	return nil
}

// Format applies a toolbar format to the working text.
func (e *Editor) Format(f markup.Format, start, end int) (markup.Edit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.busy(); err != nil {
		return markup.Edit{}, err
	}
	if e.session.Phase != PhaseEditing {
		return markup.Edit{}, fmt.Errorf("format while %s: %w", e.session.Phase, ErrInvalidTransition)
	}

	edit, err := markup.Apply(e.session.Working, start, end, f)
	if err != nil {
		return markup.Edit{}, err
	}
	e.session.Working = edit.Text
	return edit, nil
}

// CanSave reports whether Save would issue a request: the working text must
// be non-blank and differ from the original after trimming.
func (e *Editor) CanSave() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.Phase != PhaseEditing {
		return false
	}
	working := strings.TrimSpace(e.session.Working)
	return working != "" && working != strings.TrimSpace(e.session.Original)
}

// Cancel leaves editing and restores the original content verbatim.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.busy(); err != nil {
		return err
	}
	if e.session.Phase != PhaseEditing {
		return fmt.Errorf("cancel while %s: %w", e.session.Phase, ErrInvalidTransition)
	}

	e.session = EditSession{Original: e.comment.Content}
	e.log.Debug().Msg("edit cancelled")
	return nil
}

// Save validates the working text and sends it to the gateway. On success the
// comment is replaced by the gateway's version and the editor returns to
// viewing. On failure the editor stays in editing with the working text kept.
func (e *Editor) Save(ctx context.Context) (Comment, error) {
	e.mu.Lock()
	if err := e.busy(); err != nil {
		e.mu.Unlock()
		return Comment{}, err
	}
	if e.session.Phase != PhaseEditing {
		e.mu.Unlock()
		return Comment{}, fmt.Errorf("save while %s: %w", e.session.Phase, ErrInvalidTransition)
	}

	working := strings.TrimSpace(e.session.Working)
	if working != "" && working == strings.TrimSpace(e.session.Original) {
		e.mu.Unlock()
		return Comment{}, ErrNoChange
	}

	content, err := e.settings.limits.Validate(working)
	if err != nil {
		e.session.Err = err
		e.mu.Unlock()
		return Comment{}, err
	}

	actor, ok := e.actor()
	if !ok || !CanEdit(actor, e.comment) {
		e.mu.Unlock()
		return Comment{}, ErrUnauthorized
	}

	id := e.comment.ID
	e.session.Phase = PhaseSaving
	e.session.Err = nil
	e.mu.Unlock()

	updated, err := e.gateway.Update(ctx, id, content)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.log.Warn().Err(err).Msg("update comment failed")
		e.session.Phase = PhaseEditing
		e.session.Err = err
		return Comment{}, err
	}

	if updated.ID == "" {
		updated.ID = id
	}
	e.comment = updated
	e.session = EditSession{Original: updated.Content}
	e.log.Debug().Msg("comment updated")
	return updated, nil
}

// Delete asks for confirmation and deletes the comment through the gateway.
// It reports true only when the gateway confirmed the removal. Declining is
// not an error. Failures leave the comment in place; nothing is retried.
func (e *Editor) Delete(ctx context.Context) (bool, error) {
	e.mu.Lock()
	if err := e.busy(); err != nil {
		e.mu.Unlock()
		return false, err
	}
	if e.session.Phase != PhaseViewing {
		e.mu.Unlock()
		return false, fmt.Errorf("delete while %s: %w", e.session.Phase, ErrInvalidTransition)
	}

	actor, ok := e.actor()
	if !ok || !CanDelete(actor, e.comment) {
		e.mu.Unlock()
		return false, ErrUnauthorized
	}
	if e.confirmer == nil {
		e.mu.Unlock()
		return false, errors.New("delete comment: no confirmation prompt configured")
	}

	id := e.comment.ID
	e.session.Phase = PhaseDeleting
	e.session.Err = nil
	e.mu.Unlock()

	confirmed, err := e.confirmer.Ask(ctx, e.settings.confirmMessage)
	if err != nil || !confirmed {
		e.mu.Lock()
		e.session.Phase = PhaseViewing
		e.mu.Unlock()
		if err != nil {
			return false, fmt.Errorf("confirm delete: %w", err)
		}
		e.log.Debug().Msg("delete declined")
		return false, nil
	}

	err = e.gateway.Delete(ctx, id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.log.Warn().Err(err).Msg("delete comment failed")
		e.session.Phase = PhaseViewing
		e.session.Err = err
		return false, err
	}

	e.session.Phase = PhaseDeleted
	e.log.Debug().Msg("comment deleted")
	return true, nil
}

// busy rejects triggers while a request is in flight. Callers hold mu.
func (e *Editor) busy() error {
	switch e.session.Phase {
	case PhaseSaving, PhaseDeleting:
		return ErrBusy
	}
	return nil
}

func (e *Editor) actor() (Actor, bool) {
	if e.actors == nil {
		return Actor{}, false
	}
	return e.actors.Actor()
}
