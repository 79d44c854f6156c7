package tui

import (
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
)

// cursorOffset returns the rune offset of the cursor within ta's value.
func cursorOffset(ta *textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	row := min(max(ta.Line(), 0), len(lines)-1)

	offset := 0
	for _, l := range lines[:row] {
		offset += utf8.RuneCountInString(l) + 1
	}

	info := ta.LineInfo()
	col := min(info.StartColumn+info.ColumnOffset, utf8.RuneCountInString(lines[row]))
	return offset + col
}

// rowCol converts a rune offset into a logical line and column.
func rowCol(text string, offset int) (row, col int) {
	for i, r := range []rune(text) {
		if i >= offset {
			break
		}
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

// setValueAt replaces ta's value and puts the cursor at the rune offset.
func setValueAt(ta *textarea.Model, text string, offset int) {
	ta.SetValue(text)

	row, col := rowCol(text, offset)
	for guard := utf8.RuneCountInString(text) + 1; ta.Line() > row && guard > 0; guard-- {
		ta.CursorUp()
	}
	ta.SetCursorColumn(col)
}
