package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func keyPress(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Code: r, Text: s})
}

func TestConfirmModal_Answers(t *testing.T) {
	tests := []struct {
		key       string
		confirmed bool
		cancelled bool
	}{
		{key: "y", confirmed: true},
		{key: "n", cancelled: true},
		{key: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewConfirmModal("Delete?")
			m, _ = m.Update(keyPress(tt.key))

			assert.Equal(t, tt.confirmed, m.Confirmed())
			assert.Equal(t, tt.cancelled, m.Cancelled())
			assert.Equal(t, tt.confirmed || tt.cancelled, m.Done())
		})
	}
}
