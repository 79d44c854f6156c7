// Package markup implements the lightweight comment markup: **bold**, *italic*,
// `code`, @mentions and line breaks. Rendering is a fixed, ordered pipeline of
// substitutions over escaped input; the toolbar helpers in apply.go produce the
// same syntax.
package markup

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	boldRe    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe  = regexp.MustCompile(`\*(.*?)\*`)
	codeRe    = regexp.MustCompile("`(.*?)`")
	mentionRe = regexp.MustCompile(`@(\w+)`)
	tokenRe   = regexp.MustCompile(`\x{E000}(\d+)\x{E001}`)
)

const (
	tokenOpen  = "\uE000"
	tokenClose = "\uE001"
)

// reserved replaces the private-use runes used as token delimiters so raw input
// can never forge a reference to emitted markup.
var reserved = strings.NewReplacer(tokenOpen, "\uFFFD", tokenClose, "\uFFFD")

// Engine renders raw comment source into a dialect. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	dialect Dialect
}

// New returns an engine for the given dialect.
func New(d Dialect) *Engine {
	return &Engine{dialect: d}
}

// Dialect returns the dialect the engine renders into.
func (e *Engine) Dialect() Dialect {
	return e.dialect
}

// Render converts raw markup into the engine's dialect. The order is fixed:
// escape, bold, italic, code, mention, line breaks. Emitted markup is replaced
// by opaque tokens while the pipeline runs, so later rules never match inside
// tags produced by earlier ones, and the contents of a code span are frozen
// once the span is emitted. A later span that would cut through an emitted
// open/close pair is left as literal text.
func (e *Engine) Render(raw string) string {
	d := e.dialect
	t := &tokens{}

	s := d.Escape(reserved.Replace(raw))

	s = boldRe.ReplaceAllStringFunc(s, func(m string) string {
		open, closing := t.pair(d.BoldOpen, d.BoldClose)
		return open + m[2:len(m)-2] + closing
	})

	s = italicRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		if !t.balanced(inner) {
			return m
		}
		open, closing := t.pair(d.ItalicOpen, d.ItalicClose)
		return open + inner + closing
	})

	s = codeRe.ReplaceAllStringFunc(s, func(m string) string {
		inner := m[1 : len(m)-1]
		if !t.balanced(inner) {
			return m
		}
		return t.put(d.Code(t.expand(inner)))
	})

	s = mentionRe.ReplaceAllStringFunc(s, func(m string) string {
		return t.put(d.Mention(m))
	})

	s = strings.ReplaceAll(s, "\n", d.LineBreak)

	return t.expand(s)
}

// RenderPreview renders a draft for the live preview. It runs the identical
// pipeline, so a preview always matches the persisted rendering byte for byte.
func (e *Engine) RenderPreview(raw string) string {
	return e.Render(raw)
}

type tokenKind int

const (
	tokenAtom tokenKind = iota
	tokenOpenTag
	tokenCloseTag
)

type token struct {
	value string
	kind  tokenKind
	// partner is the index of the matching tag of a pair.
	partner int
}

type tokens struct {
	values []token
}

func (t *tokens) add(tok token) string {
	t.values = append(t.values, tok)
	return tokenOpen + strconv.Itoa(len(t.values)-1) + tokenClose
}

// put stores self-contained markup.
func (t *tokens) put(v string) string {
	return t.add(token{value: v, kind: tokenAtom})
}

// pair stores an opening and closing tag that must stay together.
func (t *tokens) pair(open, closing string) (string, string) {
	n := len(t.values)
	return t.add(token{value: open, kind: tokenOpenTag, partner: n + 1}),
		t.add(token{value: closing, kind: tokenCloseTag, partner: n})
}

// balanced reports whether every tag pair referenced in s is fully inside s
// and properly nested.
func (t *tokens) balanced(s string) bool {
	var stack []int
	for _, m := range tokenRe.FindAllStringSubmatch(s, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx >= len(t.values) {
			return false
		}
		switch tok := t.values[idx]; tok.kind {
		case tokenOpenTag:
			stack = append(stack, idx)
		case tokenCloseTag:
			if len(stack) == 0 || stack[len(stack)-1] != tok.partner {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

func (t *tokens) expand(s string) string {
	return tokenRe.ReplaceAllStringFunc(s, func(m string) string {
		idx, err := strconv.Atoi(m[len(tokenOpen) : len(m)-len(tokenClose)])
		if err != nil || idx >= len(t.values) {
			return ""
		}
		return t.expand(t.values[idx].value)
	})
}
