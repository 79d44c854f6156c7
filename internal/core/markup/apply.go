package markup

import (
	"fmt"
	"strings"
)

// Format is a toolbar formatting action.
type Format int

const (
	FormatBold Format = iota + 1
	FormatItalic
	FormatCode
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "bold":
		return FormatBold, nil
	case "italic":
		return FormatItalic, nil
	case "code":
		return FormatCode, nil
	default:
		return 0, fmt.Errorf("unknown format %q", name)
	}
}

func (f Format) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatCode:
		return "code"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Marker returns the delimiter written on both sides of the formatted text.
func (f Format) Marker() string {
	switch f {
	case FormatBold:
		return "**"
	case FormatItalic:
		return "*"
	case FormatCode:
		return "`"
	default:
		return ""
	}
}

// Placeholder is inserted between the markers when nothing is selected.
func (f Format) Placeholder() string {
	switch f {
	case FormatBold:
		return "bold text"
	case FormatItalic:
		return "italic text"
	case FormatCode:
		return "code"
	default:
		return ""
	}
}

// Edit is the result of applying a format to a text buffer. Selection offsets
// are rune offsets into Text. Applying a format always collapses the
// selection, so SelectionStart == SelectionEnd.
type Edit struct {
	Text           string
	SelectionStart int
	SelectionEnd   int
}

// Cursor returns the collapsed cursor position.
func (e Edit) Cursor() int {
	return e.SelectionEnd
}

// Apply wraps the rune range [start, end) of text in the markers of f.
//
// With a non-empty selection the selected text is wrapped in place and the
// cursor lands after the closing marker. With an empty selection the marker,
// the placeholder and the marker are inserted at the cursor, and the cursor
// lands right after the opening marker. Out-of-range offsets are clamped and
// an inverted range is normalized.
func Apply(text string, start, end int, f Format) (Edit, error) {
	marker := f.Marker()
	if marker == "" {
		return Edit{}, fmt.Errorf("apply format: unknown format %d", int(f))
	}

	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if start > end {
		start, end = end, start
	}

	markerLen := len([]rune(marker))

	var (
		inner  string
		cursor int
	)
	if start == end {
		inner = f.Placeholder()
		cursor = start + markerLen
	} else {
		inner = string(runes[start:end])
		cursor = end + 2*markerLen
	}

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(marker)
	b.WriteString(inner)
	b.WriteString(marker)
	b.WriteString(string(runes[end:]))

	return Edit{
		Text:           b.String(),
		SelectionStart: cursor,
		SelectionEnd:   cursor,
	}, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
