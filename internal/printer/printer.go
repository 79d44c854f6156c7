// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/feedboard/internal/core/styles"
)

type ctxKey struct{}

// Printer renders status messages. Status lines go to the writer given at
// construction, normally stderr, so command output on stdout stays clean.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = lipgloss.Fprintln(p.w, s)
}

func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render(styles.IconNotifySuccess+" ") + fmt.Sprintf(format, args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.InfoStyle.Render(styles.IconNotifyInfo+" ") + fmt.Sprintf(format, args...))
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarnStyle.Render(styles.IconNotifyWarning+" ") + fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(styles.IconNotifyError+" ") + fmt.Sprintf(format, args...))
}

// Success prints a title with a muted detail line beneath it.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		p.line("  " + styles.DividerStyle.Render(detail))
	}
}

// Section prints a heading.
func (p *Printer) Section(title string) {
	p.line(styles.CommandHeaderStyle.Render(title))
}
