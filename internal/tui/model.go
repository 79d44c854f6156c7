// Package tui implements the terminal front end for a feedback thread: the
// comment list, the composer and inline editing.
package tui

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/eventbus"
	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/colonyops/feedboard/internal/core/markup"
	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/colonyops/feedboard/internal/gateway"
	"github.com/colonyops/feedboard/internal/tui/components"
)

const (
	eventBuffer    = 64
	composerHeight = 4
	// toolbar, borders, counter and help lines around the composer.
	composerChrome = 5
)

type focus int

const (
	focusComposer focus = iota
	focusList
	focusEditor
)

// Model is the Bubble Tea model for one feedback thread.
type Model struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger

	keys      keyMap
	engine    *markup.Engine
	events    *eventbus.EventBus
	ownEvents bool
	confirms  *channelConfirmer
	notes     chan notify.Notification

	thread  gateway.Thread
	section *comment.Section
	loading bool
	loadErr error

	focus     focus
	selected  int
	editingID string
	inflight  int

	input     textarea.Model
	editInput textarea.Model
	viewport  viewport.Model
	spinner   spinner.Model

	modal   *components.ConfirmModal
	pending *confirmRequest
	help    *components.HelpDialog

	toasts    *ToastController
	toastView *ToastView
	cardLines []int

	width    int
	height   int
	quitting bool
}

// New creates the model. The thread is loaded by Init.
func New(opts Options) (Model, error) {
	if err := opts.validate(); err != nil {
		return Model{}, err
	}
	opts.applyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	ctx = logging.WithFeedbackID(ctx, opts.FeedbackID)

	input := newTextarea("Write a comment...")
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.InfoStyle

	m := Model{
		opts:      opts,
		ctx:       ctx,
		cancel:    cancel,
		log:       logging.Component("tui").With().Str("feedback_id", opts.FeedbackID).Logger(),
		keys:      defaultKeyMap(),
		engine:    markup.New(markup.Terminal(styles.MarkupCodeStyle, styles.MarkupMentionStyle)),
		events:    opts.Events,
		confirms:  newChannelConfirmer(),
		notes:     make(chan notify.Notification, eventBuffer),
		loading:   true,
		input:     input,
		editInput: newTextarea(""),
		viewport:  viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
		spinner:   s,
		width:     80,
		height:    24,
	}

	if m.events == nil {
		m.events = eventbus.New(eventBuffer)
		m.ownEvents = true
		eventbus.NewNotificationRouter(m.events).Register()
	}
	notes := m.notes
	m.events.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		select {
		case notes <- notify.Notification{Level: p.Level, Message: p.Message}:
		case <-ctx.Done():
		}
	})

	m.toasts = NewToastController(opts.ToastDuration)
	m.toastView = NewToastView(m.toasts)
	opts.Notify.Subscribe(m.toasts.Push)

	return m, nil
}

func newTextarea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(composerHeight)
	return ta
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.loadThread(),
		m.confirms.listen(m.ctx),
		m.waitForNotification(),
	}
	if m.ownEvents {
		bus, ctx := m.events, m.ctx
		cmds = append(cmds, func() tea.Msg {
			bus.Start(ctx)
			return nil
		})
	}
	m.events.PublishTuiStarted(eventbus.TUIStartedPayload{FeedbackID: m.opts.FeedbackID})
	return tea.Batch(cmds...)
}

func (m Model) loadThread() tea.Cmd {
	backend, ctx, id := m.opts.Backend, m.ctx, m.opts.FeedbackID
	return func() tea.Msg {
		thread, err := backend.Load(ctx, id)
		return threadLoadedMsg{thread: thread, err: err}
	}
}

func (m Model) waitForNotification() tea.Cmd {
	notes, ctx := m.notes, m.ctx
	return func() tea.Msg {
		select {
		case n := <-notes:
			return notificationMsg{notification: n}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) submitCmd() tea.Cmd {
	section, ctx := m.section, m.ctx
	return func() tea.Msg {
		created, err := section.Submit(ctx)
		return submitDoneMsg{comment: created, err: err}
	}
}

func (m Model) saveCmd(id string) tea.Cmd {
	section, ctx := m.section, logging.WithCommentID(m.ctx, id)
	return func() tea.Msg {
		updated, err := section.Save(ctx, id)
		return saveDoneMsg{id: id, comment: updated, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	section, ctx := m.section, logging.WithCommentID(m.ctx, id)
	return func() tea.Msg {
		deleted, err := section.Delete(ctx, id)
		return deleteDoneMsg{id: id, deleted: deleted, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case threadLoadedMsg:
		m.handleThreadLoaded(msg)

	case submitDoneMsg:
		cmd = m.handleSubmitDone(msg)

	case saveDoneMsg:
		cmd = m.handleSaveDone(msg)

	case deleteDoneMsg:
		m.handleDeleteDone(msg)

	case confirmRequestMsg:
		modal := components.NewConfirmModal(msg.req.message)
		m.modal = &modal
		m.pending = &msg.req

	case notificationMsg:
		m.opts.Notify.Publish(msg.notification)
		cmd = m.waitForNotification()

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			cmd = scheduleToastTick()
		} else {
			m.toasts.SetTicking(false)
		}

	case tea.KeyPressMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, cmd
		}

	default:
		cmd = m.forwardToInput(msg)
	}

	m.refresh()
	return m, tea.Batch(cmd, m.startToastTicker())
}

func (m *Model) handleThreadLoaded(msg threadLoadedMsg) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		m.log.Error().Err(msg.err).Msg("load feedback failed")
		m.opts.Notify.Errorf("%s", comment.UserMessage(msg.err, "Failed to load feedback. Please try again."))
		return
	}

	m.thread = msg.thread
	m.section = comment.NewSection(
		m.opts.FeedbackID,
		m.opts.Backend,
		m.opts.Actors,
		m.confirms,
		msg.thread.Comments,
		m.opts.sectionOptions()...,
	)
	m.section.Observe(publishMutations(m.events))
	m.log.Debug().Int("comments", m.section.Len()).Msg("thread loaded")
}

// publishMutations forwards applied list changes to the event bus.
func publishMutations(bus *eventbus.EventBus) comment.Observer {
	return func(mu comment.Mutation) {
		switch mu.Kind {
		case comment.MutationAdded:
			bus.PublishCommentAdded(eventbus.CommentAddedPayload{Comment: mu.Comment})
		case comment.MutationUpdated:
			bus.PublishCommentUpdated(eventbus.CommentUpdatedPayload{Comment: mu.Comment})
		case comment.MutationRemoved:
			bus.PublishCommentRemoved(eventbus.CommentRemovedPayload{
				FeedbackID: mu.FeedbackID,
				CommentID:  mu.CommentID,
			})
		}
	}
}

func (m *Model) publishFailure(op eventbus.Operation, id string, err error) {
	switch {
	case err == nil,
		errors.Is(err, comment.ErrValidation),
		errors.Is(err, comment.ErrBusy),
		errors.Is(err, context.Canceled):
		return
	}
	m.events.PublishCommentFailed(eventbus.CommentFailedPayload{Op: op, CommentID: id, Err: err})
}

func (m *Model) handleSubmitDone(msg submitDoneMsg) tea.Cmd {
	m.inflight--
	if msg.err != nil {
		m.publishFailure(eventbus.OpCreate, "", msg.err)
		return nil
	}

	m.input.Reset()
	m.selected = m.section.Len() - 1
	m.viewport.GotoBottom()
	return nil
}

func (m *Model) handleSaveDone(msg saveDoneMsg) tea.Cmd {
	m.inflight--
	switch {
	case errors.Is(msg.err, comment.ErrNoChange):
		// Nothing to send: leave editing as if cancelled.
		if ed, ok := m.section.Editor(msg.id); ok {
			_ = ed.Cancel()
		}
		m.leaveEditor()
		return nil
	case msg.err != nil:
		m.publishFailure(eventbus.OpUpdate, msg.id, msg.err)
		return nil
	}

	m.leaveEditor()
	return nil
}

func (m *Model) handleDeleteDone(msg deleteDoneMsg) {
	m.inflight--
	if msg.err != nil {
		m.publishFailure(eventbus.OpDelete, msg.id, msg.err)
		return
	}
	if msg.deleted {
		m.selected = min(m.selected, m.section.Len()-1)
		if m.section.Len() == 0 {
			m.selected = 0
			m.focusComposer()
		}
	}
}

func (m *Model) leaveEditor() {
	m.editingID = ""
	m.editInput.Blur()
	m.focus = focusList
}

func (m *Model) focusComposer() tea.Cmd {
	m.focus = focusComposer
	return m.input.Focus()
}

func (m *Model) startToastTicker() tea.Cmd {
	if m.toasts.Ticking() || !m.toasts.HasToasts() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

// startRequest marks a gateway call in flight and wraps it with a spinner
// tick.
func (m *Model) startRequest(cmd tea.Cmd) tea.Cmd {
	m.inflight++
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) busy() bool {
	return m.loading || m.inflight > 0
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.events.PublishTuiStopped(eventbus.TUIStoppedPayload{})
	m.cancel()
	return tea.Quit
}

func (m Model) selectedComment() (comment.Comment, bool) {
	if m.section == nil {
		return comment.Comment{}, false
	}
	comments := m.section.Comments()
	if m.selected < 0 || m.selected >= len(comments) {
		return comment.Comment{}, false
	}
	return comments[m.selected], true
}

// Run starts the TUI and blocks until it exits.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
