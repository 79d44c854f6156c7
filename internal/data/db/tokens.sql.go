package db

import "context"

const revokeToken = `
INSERT OR IGNORE INTO revoked_tokens (token_id, expires_at) VALUES (?, ?)
`

func (q *Queries) RevokeToken(ctx context.Context, tokenID string, expiresAt int64) error {
	_, err := q.db.ExecContext(ctx, revokeToken, tokenID, expiresAt)
	return err
}

const isTokenRevoked = `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE token_id = ?)`

func (q *Queries) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	err := q.db.QueryRowContext(ctx, isTokenRevoked, tokenID).Scan(&revoked)
	return revoked, err
}

const purgeRevokedTokens = `DELETE FROM revoked_tokens WHERE expires_at < ?`

// PurgeRevokedTokens drops entries whose token would have expired anyway.
func (q *Queries) PurgeRevokedTokens(ctx context.Context, before int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, purgeRevokedTokens, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
