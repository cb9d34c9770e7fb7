package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// ErrInvalidOrExpiredCode covers both a wrong reset code and an expired
	// one; callers are deliberately unable to distinguish the two.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired reset code")
)
