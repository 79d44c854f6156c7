package tui

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/styles"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	v := tea.NewView(m.screen())
	v.AltScreen = true
	return v
}

// screen composes the thread with the confirm modal and toasts.
func (m Model) screen() string {
	if m.quitting {
		return ""
	}

	content := m.render()
	if m.help != nil {
		content = m.help.Overlay(content, m.width, m.height)
	}
	if m.modal != nil {
		content = overlayCenter(content, m.modal.View(), m.width, m.height)
	}
	return m.toastView.Overlay(content, m.width, m.height)
}

func (m Model) render() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading feedback..."
	case m.loadErr != nil:
		msg := comment.UserMessage(m.loadErr, "Failed to load feedback.")
		return styles.ErrorTextStyle.Render(msg) + "\n\n" + styles.HelpStyle.Render(helpLine(m.keys.Quit))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.renderComposer(),
		styles.HelpStyle.Render(m.helpText()),
	)
}

func (m Model) helpText() string {
	k := m.keys
	switch m.focus {
	case focusList:
		return helpLine(k.Down, k.Up, k.Edit, k.Delete, k.Focus, k.Help, k.Quit)
	case focusEditor:
		return helpLine(k.Submit, k.Cancel, k.Bold, k.Italic, k.Code)
	default:
		return helpLine(k.Submit, k.Preview, k.Focus)
	}
}

func (m *Model) resize() {
	width := max(m.width-2, 20)
	m.input.SetWidth(width)
	m.editInput.SetWidth(max(width-4, 16))
	m.viewport.SetWidth(m.width)
	m.viewport.SetHeight(max(m.height-composerHeight-composerChrome, 3))
}

// refresh re-renders the scrollable thread and keeps the selected card
// visible.
func (m *Model) refresh() {
	if m.section == nil {
		return
	}

	content, cardLines := m.renderThread()
	m.cardLines = cardLines
	m.viewport.SetContent(content)

	if m.focus == focusComposer || m.selected >= len(cardLines) {
		return
	}
	top := cardLines[m.selected]
	bottom := m.viewport.TotalLineCount()
	if m.selected+1 < len(cardLines) {
		bottom = cardLines[m.selected+1]
	}
	switch {
	case top < m.viewport.YOffset():
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset()+m.viewport.VisibleLineCount():
		m.viewport.SetYOffset(max(bottom-m.viewport.VisibleLineCount(), top))
	}
}

// renderThread renders the header and comment cards. cardLines holds the
// first line of each card.
func (m Model) renderThread() (string, []int) {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(styles.SectionTitleStyle.Render(fmt.Sprintf("Comments (%d)", m.section.Len())))
	b.WriteString("\n\n")

	comments := m.section.Comments()
	if len(comments) == 0 {
		b.WriteString(styles.EmptyTitleStyle.Render("No comments yet"))
		b.WriteString("\n")
		b.WriteString(styles.EmptyHintStyle.Render("Be the first to share your thoughts!"))
		return b.String(), nil
	}

	cardLines := make([]int, 0, len(comments))
	for i, c := range comments {
		cardLines = append(cardLines, strings.Count(b.String(), "\n"))
		b.WriteString(m.renderCard(i, c))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n"), cardLines
}

func (m Model) renderHeader() string {
	fb := m.thread.Feedback
	width := min(max(m.width-2, 20), m.opts.PreviewWidth)

	author := fb.AuthorName
	if author == "" {
		author = comment.AuthorName(m.thread.Names, comment.Comment{AuthorID: fb.AuthorID})
	}

	meta := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.CategoryBadgeStyle.Render(string(fb.Category)),
		styles.FeedbackMetaStyle.Render(fmt.Sprintf(" by %s · %s", author, comment.Ago(m.opts.Now(), fb.CreatedAt))),
	)

	return strings.Join([]string{
		styles.FeedbackTitleStyle.Render(fb.Title),
		meta,
		renderMarkdown(fb.Description, width),
	}, "\n")
}

// renderMarkdown renders a feedback description. Descriptions are plain text
// in practice, so a renderer failure falls back to the raw text.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m Model) renderCard(i int, c comment.Comment) string {
	name := comment.AuthorName(m.thread.Names, c)

	header := styles.AvatarStyle.Render(comment.Initial(name)) + " " +
		styles.CommentAuthorStyle.Render(name) +
		styles.CommentTimeStyle.Render(" · "+comment.Ago(m.opts.Now(), c.CreatedAt))
	if c.Edited() {
		header += styles.CommentEditedStyle.Render(" (edited)")
	}

	bodyWidth := max(m.width-4, 16)
	var body string
	ed, _ := m.section.Editor(c.ID)
	if c.ID == m.editingID && ed != nil {
		body = m.renderEditBox(ed)
	} else {
		body = styles.CommentBodyStyle.Width(bodyWidth).Render(m.engine.Render(c.Content))
	}
	if ed != nil {
		switch ed.Session().Phase {
		case comment.PhaseDeleting:
			body += "\n" + m.spinner.View() + styles.HelpStyle.Render(" Deleting...")
		case comment.PhaseSaving:
			body += "\n" + m.spinner.View() + styles.HelpStyle.Render(" Saving...")
		}
	}

	card := styles.CommentCardStyle
	if i == m.selected && m.focus != focusComposer {
		card = styles.CommentCardSelected
	}
	return card.Render(header + "\n" + body)
}

func (m Model) renderEditBox(ed *comment.Editor) string {
	session := ed.Session()
	lines := []string{
		styles.EditorFocusedStyle.Render(m.editInput.View()),
		m.renderCounter(session.Working),
	}
	if msg := validationMessage(session.Err); msg != "" {
		lines = append(lines, styles.ErrorTextStyle.Render(msg))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderComposer() string {
	draft := m.section.Composer().Draft()

	toolbar := styles.ToolbarStyle.Render(helpLine(m.keys.Bold, m.keys.Italic, m.keys.Code))
	if draft.Mode == comment.ModePreviewing {
		toolbar = styles.PreviewLabelStyle.Render("Preview") + "  " + toolbar
	}

	frame := styles.EditorStyle
	if m.focus == focusComposer {
		frame = styles.EditorFocusedStyle
	}

	var box string
	if draft.Mode == comment.ModePreviewing {
		preview := styles.PlaceholderStyle.Render("Nothing to preview")
		if strings.TrimSpace(draft.Text) != "" {
			preview = m.engine.RenderPreview(draft.Text)
		}
		box = frame.Width(m.input.Width() + 2).Height(composerHeight).Render(preview)
	} else {
		box = frame.Render(m.input.View())
	}

	status := m.renderCounter(draft.Text)
	switch {
	case draft.State == comment.StateSubmitting:
		status += "  " + m.spinner.View() + styles.HelpStyle.Render(" Posting...")
	case validationMessage(draft.Err) != "":
		status += "  " + styles.ErrorTextStyle.Render(validationMessage(draft.Err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, toolbar, box, status)
}

func (m Model) renderCounter(text string) string {
	limits := m.section.Composer().Limits()
	n := utf8.RuneCountInString(text)
	label := fmt.Sprintf("%d/%d characters", n, limits.Max)
	if n > limits.Max {
		return styles.CounterWarnStyle.Render(label)
	}
	return styles.CounterStyle.Render(label)
}

// validationMessage returns the inline text for validation failures, whether
// caught locally or rejected by the server. Other gateway failures are
// reported as toasts instead.
func validationMessage(err error) string {
	if !errors.Is(err, comment.ErrValidation) {
		return ""
	}
	return comment.UserMessage(err, "Comment is invalid")
}

func overlayCenter(background, fg string, width, height int) string {
	x := max((width-lipgloss.Width(fg))/2, 0)
	y := max((height-lipgloss.Height(fg))/2, 0)

	layer := lipgloss.NewLayer(fg)
	layer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
