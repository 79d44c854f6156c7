package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the feedback, comment and actor IDs stored in the event's
// context onto the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	for _, key := range []contextKey{feedbackIDKey, commentIDKey, actorIDKey} {
		if v := stringValue(ctx, key); v != "" {
			e.Str(string(key), v)
		}
	}
}
