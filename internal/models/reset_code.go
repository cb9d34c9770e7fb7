package models

import (
	"time"
)

// PasswordResetCode is a one-time code tied to a single user. It is read on
// verification and deleted on the password change that consumes it; the
// background reaper removes abandoned rows after expiry.
type PasswordResetCode struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Code      string    `json:"-"` // never expose the code
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the code's expiry has passed.
func (c *PasswordResetCode) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
