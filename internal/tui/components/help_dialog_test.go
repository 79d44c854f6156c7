package components

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestHelpDialog_View(t *testing.T) {
	d := NewHelpDialog("Keyboard shortcuts",
		HelpDialogSection{
			Title: "Composer",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
				key.NewBinding(key.WithKeys("ctrl+c")),
			},
		},
		HelpDialogSection{
			Title: "Comments",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
			},
		},
	)

	out := ansi.Strip(d.View())
	assert.Contains(t, out, "Keyboard shortcuts")
	assert.Contains(t, out, "Composer")
	assert.Contains(t, out, "send")
	assert.Contains(t, out, "edit")
	assert.NotContains(t, out, "ctrl+c", "bindings without help are hidden")
	assert.Less(t, strings.Index(out, "Composer"), strings.Index(out, "Comments"))
}
