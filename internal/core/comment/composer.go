package comment

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/colonyops/feedboard/internal/core/markup"
)

// State is the lifecycle state of the composer.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Mode selects between the text input and the rendered preview.
type Mode int

const (
	ModeEditing Mode = iota
	ModePreviewing
)

// Draft is a snapshot of the composer's in-progress comment.
type Draft struct {
	Text  string
	Mode  Mode
	Err   error
	State State
}

// Composer owns the lifecycle of a new comment draft:
//
//	Idle -> Editing -> Submitting -> Idle     (after Reset)
//	                              -> Editing  (gateway failure, draft kept)
//
// At most one create is in flight. After a successful Submit the composer
// stays in Submitting until its owner applies the created comment and calls
// Reset.
type Composer struct {
	mu         sync.Mutex
	feedbackID string
	gateway    Gateway
	limits     Limits
	log        zerolog.Logger
	draft      Draft
}

// NewComposer returns an idle composer that creates comments on feedbackID.
func NewComposer(feedbackID string, gw Gateway, opts ...Option) *Composer {
	s := newSettings(opts)
	return &Composer{
		feedbackID: feedbackID,
		gateway:    gw,
		limits:     s.limits,
		log:        logging.Component("composer").With().Str("feedback_id", feedbackID).Logger(),
	}
}

// Draft returns a snapshot of the current draft.
func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Limits returns the length limits the composer validates against.
func (c *Composer) Limits() Limits {
	return c.limits
}

// Type replaces the draft text and clears any validation error.
func (c *Composer) Type(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.State == StateSubmitting {
		return ErrBusy
	}

	c.draft.Text = text
	c.draft.Err = nil
	c.settle()
	return nil
}

// Format applies a toolbar format to the rune range [start, end) of the draft
// and returns the edit so the host can restore the cursor.
func (c *Composer) Format(f markup.Format, start, end int) (markup.Edit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.State == StateSubmitting {
		return markup.Edit{}, ErrBusy
	}

	edit, err := markup.Apply(c.draft.Text, start, end, f)
	if err != nil {
		return markup.Edit{}, err
	}

	c.draft.Text = edit.Text
	c.settle()
	return edit, nil
}

// TogglePreview flips between editing and previewing. The text is untouched.
func (c *Composer) TogglePreview() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.State == StateSubmitting {
		return ErrBusy
	}

	if c.draft.Mode == ModePreviewing {
		c.draft.Mode = ModeEditing
	} else {
		c.draft.Mode = ModePreviewing
	}
	return nil
}

// Submit validates the draft and creates the comment through the gateway.
// Validation failures are stored on the draft and no request is made. A
// gateway failure returns the composer to Editing with the draft intact.
func (c *Composer) Submit(ctx context.Context) (Comment, error) {
	c.mu.Lock()
	if c.draft.State == StateSubmitting {
		c.mu.Unlock()
		return Comment{}, ErrBusy
	}

	content, err := c.limits.Validate(c.draft.Text)
	if err != nil {
		c.draft.Err = err
		c.mu.Unlock()
		return Comment{}, err
	}

	c.draft.State = StateSubmitting
	c.draft.Err = nil
	c.mu.Unlock()

	c.log.Debug().Msg("submitting comment")

	created, err := c.gateway.Create(ctx, c.feedbackID, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.Warn().Err(err).Msg("create comment failed")
		c.draft.State = StateEditing
		c.draft.Err = err
		return Comment{}, err
	}

	c.log.Debug().Str("comment_id", created.ID).Msg("comment created")
	return created, nil
}

// Reset clears the draft and returns the composer to Idle in editing mode.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = Draft{}
}

// settle derives Idle/Editing from the text. Callers hold mu.
func (c *Composer) settle() {
	if c.draft.Text == "" {
		c.draft.State = StateIdle
	} else {
		c.draft.State = StateEditing
	}
}
