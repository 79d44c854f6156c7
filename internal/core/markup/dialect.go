package markup

import (
	"html"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Dialect describes how the pipeline escapes raw input and what it emits for
// each construct. Bold and italic are emitted as open/close pairs so that
// later rules can still format the enclosed text. Code and mentions receive
// their enclosed text and wrap it as a whole.
type Dialect struct {
	Name string

	// Escape neutralizes characters that are significant to the output format.
	// It always runs before any formatting rule.
	Escape func(string) string

	BoldOpen, BoldClose     string
	ItalicOpen, ItalicClose string

	Code    func(text string) string
	Mention func(handle string) string

	LineBreak string
}

// HTML is the default dialect. Output is safe to embed in an HTML document.
func HTML() Dialect {
	return Dialect{
		Name:        "html",
		Escape:      html.EscapeString,
		BoldOpen:    "<strong>",
		BoldClose:   "</strong>",
		ItalicOpen:  "<em>",
		ItalicClose: "</em>",
		Code: func(text string) string {
			return `<code class="inline-code">` + text + "</code>"
		},
		Mention: func(handle string) string {
			return `<span class="mention">` + handle + "</span>"
		},
		LineBreak: "<br>",
	}
}

// Terminal renders for an ANSI terminal. Escape sequences in the raw input
// are stripped so comment text cannot restyle the screen. Bold and italic use
// SGR attributes that reset only themselves, which keeps nesting intact.
func Terminal(code, mention lipgloss.Style) Dialect {
	return Dialect{
		Name:        "terminal",
		Escape:      ansi.Strip,
		BoldOpen:    "\x1b[1m",
		BoldClose:   "\x1b[22m",
		ItalicOpen:  "\x1b[3m",
		ItalicClose: "\x1b[23m",
		Code:        func(text string) string { return code.Render(text) },
		Mention:     func(handle string) string { return mention.Render(handle) },
		LineBreak:   "\n",
	}
}
