package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/services"
	pkghttp "github.com/yusup-rd/gourmet-gleam/pkg/http"
)

// UserServiceInterface defines the interface for profile and admin user
// management
type UserServiceInterface interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update services.ProfileUpdate) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int64) error
	ListClients(ctx context.Context, search string) ([]*models.User, error)
}

// UserHandler handles profile routes and the admin user-management routes.
type UserHandler struct {
	service      UserServiceInterface
	cookieConfig auth.CookieConfig
}

func NewUserHandler(service UserServiceInterface, cookieConfig auth.CookieConfig) *UserHandler {
	return &UserHandler{service: service, cookieConfig: cookieConfig}
}

// UserResponse represents a user in HTTP responses. The password hash never
// leaves the server.
type UserResponse struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	PreferredCuisine []string `json:"preferredCuisine"`
	ExcludedCuisine  []string `json:"excludedCuisine"`
	Diet             []string `json:"diet"`
	Intolerances     []string `json:"intolerances"`
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	Name             string   `json:"name" validate:"required,min=1"`
	Email            string   `json:"email" validate:"required,email"`
	PreferredCuisine []string `json:"preferredCuisine"`
	ExcludedCuisine  []string `json:"excludedCuisine"`
	Diet             []string `json:"diet"`
	Intolerances     []string `json:"intolerances"`
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		PreferredCuisine: user.PreferredCuisine,
		ExcludedCuisine:  user.ExcludedCuisine,
		Diet:             user.Diet,
		Intolerances:     user.Intolerances,
	}
}

// GetProfile returns the authenticated user's profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	user, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfile updates the authenticated user's profile and preferences.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), claims.UserID, services.ProfileUpdate{
		Name:             req.Name,
		Email:            req.Email,
		PreferredCuisine: req.PreferredCuisine,
		ExcludedCuisine:  req.ExcludedCuisine,
		Diet:             req.Diet,
		Intolerances:     req.Intolerances,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Email already registered")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// DeleteAccount removes the authenticated user's account and clears the
// session cookie. Favourites and reset codes cascade in the database.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	auth.ClearSessionCookie(w, h.cookieConfig)
	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Account deleted",
	})
}

// Preferences returns the authenticated user's stored dietary preferences.
func (h *UserHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	user, err := h.service.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string][]string{
		"preferredCuisine": user.PreferredCuisine,
		"excludedCuisine":  user.ExcludedCuisine,
		"diet":             user.Diet,
		"intolerances":     user.Intolerances,
	})
}

// ListClients returns client accounts for the admin view, optionally
// filtered by ?search=.
func (h *UserHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListClients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	responses := make([]*UserResponse, len(users))
	for i, user := range users {
		responses[i] = toUserResponse(user)
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": responses,
	})
}

// AdminUpdateUser updates a client account on behalf of an admin.
func (h *UserHandler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user id")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, services.ProfileUpdate{
		Name:             req.Name,
		Email:            req.Email,
		PreferredCuisine: req.PreferredCuisine,
		ExcludedCuisine:  req.ExcludedCuisine,
		Diet:             req.Diet,
		Intolerances:     req.Intolerances,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Email already registered")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// AdminDeleteUser deletes a client account on behalf of an admin.
func (h *UserHandler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		pkghttp.WriteBadRequest(w, "Invalid user id")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User deleted",
	})
}
