package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/feedboard/internal/core/styles"
)

// ConfirmModal is a simple yes/no confirmation dialog.
type ConfirmModal struct {
	message   string
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a new confirmation modal.
func NewConfirmModal(message string) ConfirmModal {
	return ConfirmModal{message: message}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc":
		m.cancelled = true
	}

	return m, nil
}

// View renders the dialog framed by the modal style.
func (m ConfirmModal) View() string {
	title := styles.ModalTitleStyle.Render(m.message)
	help := styles.ModalHelpStyle.Render("[y] delete   [n] keep")

	return styles.ModalStyle.Render(title + "\n" + help)
}

// Confirmed returns true if user confirmed.
func (m ConfirmModal) Confirmed() bool {
	return m.confirmed
}

// Cancelled returns true if user cancelled.
func (m ConfirmModal) Cancelled() bool {
	return m.cancelled
}

// Done reports whether the user answered.
func (m ConfirmModal) Done() bool {
	return m.confirmed || m.cancelled
}
