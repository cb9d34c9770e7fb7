package models

import (
	"time"
)

// User is an identity record. The email is the unique login key and is
// matched exactly as stored (case-sensitive). Role is either "client" or
// "admin" and is never mutable through the public API.
type User struct {
	ID               int64
	Name             string
	Email            string
	PasswordHash     string
	Role             string // "client" or "admin"
	PreferredCuisine []string
	ExcludedCuisine  []string
	Diet             []string
	Intolerances     []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
