package auth

import (
	"context"
	"net/http"

	"github.com/yusup-rd/gourmet-gleam/internal/models"
	pkghttp "github.com/yusup-rd/gourmet-gleam/pkg/http"
)

// contextKey is a custom type for context keys
type contextKey string

const (
	// UserContextKey is the key for storing session claims in context
	UserContextKey contextKey = "user"
)

// RequireSession validates the session cookie and injects the claim set
// into the request context. A missing cookie and an invalid or expired one
// are distinct conditions: the latter also instructs the client to clear
// the stale cookie. Both halt the request with 401.
func RequireSession(tm *TokenManager, cookieConfig CookieConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := GetSessionCookie(r)
			if err != nil || tokenString == "" {
				pkghttp.WriteUnauthorized(w, "You are not authorized")
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				ClearSessionCookie(w, cookieConfig)
				pkghttp.WriteUnauthorized(w, "Token has an issue or expired")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole enforces role-based access control. Must be used after
// RequireSession.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r)
			if claims == nil {
				pkghttp.WriteUnauthorized(w, "You are not authorized")
				return
			}

			if claims.Role != role {
				pkghttp.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts session claims from request context
func GetUserFromContext(r *http.Request) *models.SessionClaims {
	claims, ok := r.Context().Value(UserContextKey).(*models.SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
