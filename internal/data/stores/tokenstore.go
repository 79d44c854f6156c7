package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/feedboard/internal/data/db"
)

// TokenStore tracks revoked API tokens by their token id.
type TokenStore struct {
	db *db.DB
}

// NewTokenStore creates a new SQLite-backed revocation list.
func NewTokenStore(db *db.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Revoke marks a token id as revoked until expiresAt.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := s.db.Queries().RevokeToken(ctx, tokenID, expiresAt.UnixNano()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id was revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.db.Queries().IsTokenRevoked(ctx, tokenID)
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return revoked, nil
}

// Purge removes revocations for tokens that expired before now.
func (s *TokenStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.db.Queries().PurgeRevokedTokens(ctx, now.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return n, nil
}
