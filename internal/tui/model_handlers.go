package tui

import (
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/markup"
	"github.com/colonyops/feedboard/internal/tui/components"
)

// handleKey routes a key press to the modal or the focused area. quit is
// true when the program should exit without further rendering.
func (m *Model) handleKey(msg tea.KeyPressMsg) (cmd tea.Cmd, quit bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit(), true
	}

	if m.modal != nil {
		return m.handleModalKey(msg), false
	}

	if m.help != nil {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.help = nil
		}
		return nil, false
	}

	if m.section == nil {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit(), true
		}
		return nil, false
	}

	switch m.focus {
	case focusList:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit(), true
		}
		return m.handleListKey(msg), false
	case focusEditor:
		return m.handleEditorKey(msg), false
	default:
		return m.handleComposerKey(msg), false
	}
}

func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	modal, _ := m.modal.Update(msg)
	if !modal.Done() {
		m.modal = &modal
		return nil
	}

	m.pending.reply <- modal.Confirmed()
	m.modal = nil
	m.pending = nil
	return m.confirms.listen(m.ctx)
}

func (m *Model) handleComposerKey(msg tea.KeyPressMsg) tea.Cmd {
	composer := m.section.Composer()
	draft := composer.Draft()

	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.section.Len() == 0 {
			return nil
		}
		m.focus = focusList
		m.input.Blur()
		return nil

	case draft.State == comment.StateSubmitting:
		return nil

	case key.Matches(msg, m.keys.Submit):
		return m.startRequest(m.submitCmd())

	case key.Matches(msg, m.keys.Preview):
		if err := composer.TogglePreview(); err != nil {
			m.log.Debug().Err(err).Msg("toggle preview")
		}
		return nil

	case key.Matches(msg, m.keys.Bold):
		m.formatComposer(markup.FormatBold)
		return nil
	case key.Matches(msg, m.keys.Italic):
		m.formatComposer(markup.FormatItalic)
		return nil
	case key.Matches(msg, m.keys.Code):
		m.formatComposer(markup.FormatCode)
		return nil
	}

	if draft.Mode == comment.ModePreviewing {
		return nil
	}
	return m.forwardToInput(msg)
}

func (m *Model) formatComposer(f markup.Format) {
	at := cursorOffset(&m.input)
	edit, err := m.section.Composer().Format(f, at, at)
	if err != nil {
		m.log.Debug().Err(err).Stringer("format", f).Msg("format draft")
		return
	}
	setValueAt(&m.input, edit.Text, edit.Cursor())
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Focus):
		return m.focusComposer()

	case key.Matches(msg, m.keys.Help):
		m.help = components.NewHelpDialog("Keyboard shortcuts", m.keys.helpSections()...)

	case key.Matches(msg, m.keys.Up):
		m.selected = max(m.selected-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.selected = min(m.selected+1, m.section.Len()-1)

	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keys.Delete):
		c, ok := m.selectedComment()
		if !ok {
			return nil
		}
		ed, ok := m.section.Editor(c.ID)
		if !ok || !ed.CanDelete() {
			m.opts.Notify.Warnf("You can only delete your own comments.")
			return nil
		}
		return m.startRequest(m.deleteCmd(c.ID))
	}

	return nil
}

func (m *Model) beginEdit() tea.Cmd {
	c, ok := m.selectedComment()
	if !ok {
		return nil
	}
	ed, ok := m.section.Editor(c.ID)
	if !ok {
		return nil
	}

	if err := ed.BeginEdit(); err != nil {
		if errors.Is(err, comment.ErrUnauthorized) {
			m.opts.Notify.Warnf("You can only edit your own comments.")
		} else {
			m.log.Debug().Err(err).Msg("begin edit")
		}
		return nil
	}

	m.editingID = c.ID
	m.focus = focusEditor
	m.editInput.SetValue(ed.Session().Working)
	return m.editInput.Focus()
}

func (m *Model) handleEditorKey(msg tea.KeyPressMsg) tea.Cmd {
	ed, ok := m.section.Editor(m.editingID)
	if !ok {
		m.leaveEditor()
		return nil
	}
	if ed.Session().Phase == comment.PhaseSaving {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.startRequest(m.saveCmd(m.editingID))

	case key.Matches(msg, m.keys.Cancel):
		if err := ed.Cancel(); err != nil {
			m.log.Debug().Err(err).Msg("cancel edit")
			return nil
		}
		m.leaveEditor()
		return nil

	case key.Matches(msg, m.keys.Bold):
		m.formatEditor(ed, markup.FormatBold)
		return nil
	case key.Matches(msg, m.keys.Italic):
		m.formatEditor(ed, markup.FormatItalic)
		return nil
	case key.Matches(msg, m.keys.Code):
		m.formatEditor(ed, markup.FormatCode)
		return nil
	}

	return m.forwardToInput(msg)
}

func (m *Model) formatEditor(ed *comment.Editor, f markup.Format) {
	at := cursorOffset(&m.editInput)
	edit, err := ed.Format(f, at, at)
	if err != nil {
		m.log.Debug().Err(err).Stringer("format", f).Msg("format edit")
		return
	}
	setValueAt(&m.editInput, edit.Text, edit.Cursor())
}

// forwardToInput passes msg to the focused textarea and mirrors any text
// change into the owning state machine.
func (m *Model) forwardToInput(msg tea.Msg) tea.Cmd {
	if m.section == nil {
		return nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusComposer:
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if after := m.input.Value(); after != before {
			if err := m.section.Composer().Type(after); err != nil {
				m.input.SetValue(before)
			}
		}

	case focusEditor:
		ed, ok := m.section.Editor(m.editingID)
		if !ok {
			return nil
		}
		before := m.editInput.Value()
		m.editInput, cmd = m.editInput.Update(msg)
		if after := m.editInput.Value(); after != before {
			if err := ed.SetWorking(after); err != nil {
				m.editInput.SetValue(before)
			}
		}
	}

	return cmd
}
