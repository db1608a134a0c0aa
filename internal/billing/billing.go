// Package billing exposes the one fact the task layer needs from the
// subscription system: whether an owner is on the premium tier. Checkout and
// webhook handling live outside this codebase; the premium flag is flipped
// out-of-band.
package billing

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Checker reports an owner's subscription tier.
type Checker interface {
	IsPremium(ctx context.Context, owner string) (bool, error)
}

// DB reads the premium flag from the users table.
type DB struct {
	db *sql.DB
}

// NewDB creates a database-backed checker.
func NewDB(db *sql.DB) *DB {
	return &DB{db: db}
}

// IsPremium returns true if the owner has an active premium subscription.
// A set expiry in the past downgrades the account even if the flag is still
// on.
func (c *DB) IsPremium(ctx context.Context, owner string) (bool, error) {
	var premium bool
	var expiresAt sql.NullTime
	err := c.db.QueryRowContext(ctx, `
		SELECT is_premium, premium_expires_at FROM users WHERE id = $1`,
		owner,
	).Scan(&premium, &expiresAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read premium status: %w", err)
	}
	if premium && expiresAt.Valid && expiresAt.Time.Before(time.Now()) {
		return false, nil
	}
	return premium, nil
}

// Static is a fixed-answer checker for tests and guest sessions.
type Static bool

func (s Static) IsPremium(ctx context.Context, owner string) (bool, error) {
	return bool(s), nil
}
