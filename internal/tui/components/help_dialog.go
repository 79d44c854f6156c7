// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/feedboard/internal/core/styles"
)

const helpKeyWidth = 12

// HelpDialogSection groups related bindings under a title.
type HelpDialogSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists the key bindings of every focus area.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a help dialog with the given sections.
func NewHelpDialog(title string, sections ...HelpDialogSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the dialog framed by the modal style.
func (h *HelpDialog) View() string {
	keyStyle := styles.CommentAuthorStyle.Width(helpKeyWidth)
	separator := styles.DividerStyle.Render(strings.Repeat("─", 25))

	var lines []string
	for i, section := range h.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.SectionTitleStyle.UnsetMarginTop().Render(section.Title), separator)

		for _, b := range section.Bindings {
			if !b.Enabled() || b.Help().Key == "" {
				continue
			}
			lines = append(lines, keyStyle.Render(b.Help().Key)+styles.CommentBodyStyle.Render(b.Help().Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.ModalHelpStyle.Render("esc/? close"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay renders the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	modal := h.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	centerX := max((width-lipgloss.Width(modal))/2, 0)
	centerY := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(centerX).Y(centerY).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
