package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end int
		format     Format
		wantText   string
		wantCursor int
	}{
		{
			name: "bold wraps selection", text: "hello world", start: 6, end: 11, format: FormatBold,
			wantText: "hello **world**", wantCursor: 15,
		},
		{
			name: "italic wraps selection", text: "hello world", start: 0, end: 5, format: FormatItalic,
			wantText: "*hello* world", wantCursor: 7,
		},
		{
			name: "code wraps selection", text: "run make now", start: 4, end: 8, format: FormatCode,
			wantText: "run `make` now", wantCursor: 10,
		},
		{
			name: "bold inserts placeholder", text: "ab", start: 1, end: 1, format: FormatBold,
			wantText: "a**bold text**b", wantCursor: 3,
		},
		{
			name: "italic inserts placeholder", text: "", start: 0, end: 0, format: FormatItalic,
			wantText: "*italic text*", wantCursor: 1,
		},
		{
			name: "code inserts placeholder at end", text: "x", start: 1, end: 1, format: FormatCode,
			wantText: "x`code`", wantCursor: 2,
		},
		{
			name: "inverted selection is normalized", text: "hello world", start: 11, end: 6, format: FormatBold,
			wantText: "hello **world**", wantCursor: 15,
		},
		{
			name: "out of range selection is clamped", text: "abc", start: -4, end: 99, format: FormatItalic,
			wantText: "*abc*", wantCursor: 5,
		},
		{
			name: "offsets count runes", text: "héllo wörld", start: 6, end: 11, format: FormatBold,
			wantText: "héllo **wörld**", wantCursor: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(tt.text, tt.start, tt.end, tt.format)
			require.NoError(t, err)

			assert.Equal(t, tt.wantText, got.Text)
			assert.Equal(t, tt.wantCursor, got.Cursor())
			assert.Equal(t, got.SelectionStart, got.SelectionEnd)
		})
	}
}

func TestApply_UnknownFormat(t *testing.T) {
	_, err := Apply("text", 0, 0, Format(42))
	require.Error(t, err)
}

func TestApply_RendersAsFormat(t *testing.T) {
	engine := New(HTML())

	edit, err := Apply("make this loud", 10, 14, FormatBold)
	require.NoError(t, err)

	assert.Equal(t, "make this <strong>loud</strong>", engine.Render(edit.Text))
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatBold, FormatItalic, FormatCode} {
		got, err := ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("underline")
	require.Error(t, err)
}
