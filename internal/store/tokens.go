package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Revocation marks a session token as logged out before it expires.
type Revocation struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
}

// RevokeToken records a logout. Revoking the same token again keeps the
// first record.
func RevokeToken(ctx context.Context, db *sql.DB, r Revocation) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (jti) DO NOTHING`,
		r.JTI, r.UserID, r.ExpiresAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("revoking session %s: %w", r.JTI, err)
	}
	return nil
}

// IsTokenRevoked reports whether the session token with jti was logged out.
func IsTokenRevoked(ctx context.Context, db *sql.DB, jti string) (bool, error) {
	var revoked bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = ?)`, jti,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("checking session revocation: %w", err)
	}
	return revoked, nil
}

// PurgeRevocations drops records of tokens that expired before now and
// returns how many were removed. Such tokens fail signature validation on
// their own.
func PurgeRevocations(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging revocations: %w", err)
	}
	return result.RowsAffected()
}
