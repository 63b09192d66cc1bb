package database

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo tracks outstanding refresh tokens by JTI so that individual
// tokens, or all of a user's tokens, can be revoked before they expire.
type TokenRepo struct {
	db *sql.DB
}

// RefreshTokenRecord is the persisted state of one refresh token.
type RefreshTokenRecord struct {
	JTI       string
	UserID    int
	ExpiresAt time.Time
	Revoked   bool
}

// Save records a newly issued refresh token.
func (r *TokenRepo) Save(ctx context.Context, jti string, userID int, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (jti, user_id, expires_at) VALUES (?, ?, ?)`,
		jti, userID, expiresAt.UTC(),
	)
	return err
}

// Get retrieves a refresh token record by JTI.
// Returns sql.ErrNoRows for tokens that were never issued.
func (r *TokenRepo) Get(ctx context.Context, jti string) (*RefreshTokenRecord, error) {
	rec := &RefreshTokenRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT jti, user_id, expires_at, revoked FROM refresh_tokens WHERE jti = ?`,
		jti,
	).Scan(&rec.JTI, &rec.UserID, &rec.ExpiresAt, &rec.Revoked)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Revoke blacklists a single refresh token. Revoking an already revoked
// or unknown token is a no-op.
func (r *TokenRepo) Revoke(ctx context.Context, jti string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE jti = ?`, jti)
	return err
}

// RevokeAllForUser blacklists every outstanding refresh token a user
// holds, e.g. after a password change.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1 WHERE user_id = ?`, userID)
	return err
}

// DeleteExpired prunes tokens whose lifetime has passed. Safe to run at
// any time; revocation state for live tokens is preserved.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, now.UTC())
	return err
}
