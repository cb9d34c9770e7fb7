package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yusup-rd/gourmet-gleam/internal/models"
	pkgauth "github.com/yusup-rd/gourmet-gleam/pkg/auth"
	pkghttp "github.com/yusup-rd/gourmet-gleam/pkg/http"
)

// PasswordResetServiceInterface defines the interface for the reset flow
type PasswordResetServiceInterface interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
	ConfirmNewPassword(ctx context.Context, email, code, newPassword string) error
}

// PasswordResetHandler handles the three-step password reset flow.
type PasswordResetHandler struct {
	service PasswordResetServiceInterface
}

func NewPasswordResetHandler(service PasswordResetServiceInterface) *PasswordResetHandler {
	return &PasswordResetHandler{service: service}
}

// RequestCodeRequest represents the request body for requesting a reset code
type RequestCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyCodeRequest represents the request body for verifying a reset code
type VerifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// ConfirmPasswordRequest represents the request body for confirming a new
// password
type ConfirmPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// RequestCode issues a reset code and emails it to the account address.
func (h *PasswordResetHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.RequestCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent to your email",
	})
}

// VerifyCode checks a reset code without consuming it.
func (h *PasswordResetHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.VerifyCode(r.Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, models.ErrInvalidOrExpiredCode) {
			pkghttp.WriteBadRequest(w, "Invalid OTP or OTP expired")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "OTP verified",
	})
}

// ConfirmPassword consumes the code and sets the new password.
func (h *PasswordResetHandler) ConfirmPassword(w http.ResponseWriter, r *http.Request) {
	var req ConfirmPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.ConfirmNewPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		var vErr *pkgauth.PasswordValidationError
		switch {
		case errors.Is(err, models.ErrInvalidOrExpiredCode):
			pkghttp.WriteBadRequest(w, "Invalid OTP or OTP expired")
		case errors.As(err, &vErr):
			pkghttp.WriteBadRequest(w, vErr.Error())
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password changed successfully",
	})
}
