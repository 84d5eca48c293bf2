package model

import (
	"time"
)

// PasswordResetToken is a single-use credential for the forgot-password flow.
// At most one live token exists per email; issuing a new one deletes older
// tokens for the same address.
type PasswordResetToken struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Email     string    `db:"email"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
