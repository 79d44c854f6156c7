// Package sweep periodically removes revocation records of tokens that can
// no longer be presented.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Purger drops expired token revocations and reports how many were removed.
type Purger interface {
	PurgeRevokedTokens(ctx context.Context) (int64, error)
}

// Start purges once immediately and then on every interval tick. It blocks
// until the context is cancelled.
func Start(ctx context.Context, p Purger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		purge(ctx, p)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func purge(ctx context.Context, p Purger) {
	n, err := p.PurgeRevokedTokens(ctx)
	switch {
	case err != nil:
		if ctx.Err() == nil {
			log.Debug().Err(err).Msg("token sweep failed")
		}
	case n > 0:
		log.Debug().Int64("removed", n).Msg("purged revoked tokens")
	}
}
