package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/colonyops/feedboard/internal/tui/components"
)

type keyMap struct {
	Bold    key.Binding
	Italic  key.Binding
	Code    key.Binding
	Preview key.Binding
	Submit  key.Binding
	Focus   key.Binding

	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Cancel key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Bold:    key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "italic")),
		Code:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "code")),
		Preview: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "preview")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch focus")),

		Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) helpSections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{Title: "Composer", Bindings: []key.Binding{k.Bold, k.Italic, k.Code, k.Preview, k.Submit, k.Focus}},
		{Title: "Comments", Bindings: []key.Binding{k.Down, k.Up, k.Edit, k.Delete, k.Focus, k.Help, k.Quit}},
		{Title: "Editing", Bindings: []key.Binding{k.Submit, k.Cancel, k.Bold, k.Italic, k.Code}},
	}
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
