package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Section("Comments")
	p.Successf("added %s", "c-1")
	p.Errorf("failed: %d", 422)
	p.Success("Logged in", "alice@example.com")

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "Comments\n")
	assert.Contains(t, out, "added c-1")
	assert.Contains(t, out, "failed: 422")
	assert.Contains(t, out, "  alice@example.com")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()), "falls back to stderr")
}
