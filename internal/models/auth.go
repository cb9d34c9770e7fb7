package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set embedded in the session cookie. Validity is
// determined purely by signature and expiry; no session state is kept
// server-side.
type SessionClaims struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	UserID int64  `json:"userId"`
	jwt.RegisteredClaims
}
