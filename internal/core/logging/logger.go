// Package logging holds small helpers around the global zerolog logger.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns a child of the global logger tagged with "cmp".
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// WithContextFields installs ContextHook on l so events logged with
// .Ctx(ctx) carry the IDs stored in ctx.
func WithContextFields(l zerolog.Logger) zerolog.Logger {
	return l.Hook(ContextHook{})
}
