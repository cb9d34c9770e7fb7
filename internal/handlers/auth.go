package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/services"
	pkgauth "github.com/yusup-rd/gourmet-gleam/pkg/auth"
	pkghttp "github.com/yusup-rd/gourmet-gleam/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error)
	Register(ctx context.Context, name, email, password string) (*services.LoginResult, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

// AuthHandler handles login, registration, logout and session introspection.
type AuthHandler struct {
	service      AuthServiceInterface
	tm           *auth.TokenManager
	cookieConfig auth.CookieConfig
	ipConfig     *pkghttp.IPConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, tm *auth.TokenManager, cookieConfig auth.CookieConfig, ipConfig *pkghttp.IPConfig) *AuthHandler {
	return &AuthHandler{
		service:      service,
		tm:           tm,
		cookieConfig: cookieConfig,
		ipConfig:     ipConfig,
	}
}

// Request DTOs

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents the request body for an authenticated
// password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Login authenticates a user and delivers the session cookie. An unknown
// email is a 404 and a wrong password a 401; the statuses are deliberately
// distinct.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	ipAddress := pkghttp.ExtractClientIP(r, h.ipConfig)

	result, err := h.service.Login(r.Context(), req.Email, req.Password, ipAddress)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "Invalid credentials")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	auth.SetSessionCookie(w, result.Token, h.tm.Expiry(), h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"role":    result.User.Role,
	})
}

// Register creates a new client account and signs the user in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		var vErr *pkgauth.PasswordValidationError
		switch {
		case errors.As(err, &vErr):
			pkghttp.WriteBadRequest(w, vErr.Error())
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Email already registered")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	auth.SetSessionCookie(w, result.Token, h.tm.Expiry(), h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Registration successful",
	})
}

// Logout clears the session cookie. Tokens are stateless, so this is purely
// a client-side clear.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}

// ChangePassword changes the authenticated user's password after verifying
// the current one.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		var vErr *pkgauth.PasswordValidationError
		switch {
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "Invalid current password")
		case errors.As(err, &vErr):
			pkghttp.WriteBadRequest(w, vErr.Error())
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password changed successfully",
	})
}

// Session returns the authenticated claim set.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"email":  claims.Email,
		"role":   claims.Role,
		"userId": claims.UserID,
	})
}

// UserRole returns the authenticated user's role.
func (h *AuthHandler) UserRole(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"role": claims.Role,
	})
}

// UserID returns the authenticated user's id.
func (h *AuthHandler) UserID(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]int64{
		"userId": claims.UserID,
	})
}
