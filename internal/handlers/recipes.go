package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	pkghttp "github.com/yusup-rd/gourmet-gleam/pkg/http"
)

// RecipeServiceInterface defines the interface for recipe lookups and
// favourites
type RecipeServiceInterface interface {
	Search(ctx context.Context, searchTerm string, page int) (json.RawMessage, error)
	SearchByIngredients(ctx context.Context, ingredients []string, page int) (json.RawMessage, error)
	SearchPreferred(ctx context.Context, userID int64, page int) (json.RawMessage, error)
	Summary(ctx context.Context, recipeID int64) (json.RawMessage, error)
	Instructions(ctx context.Context, recipeID int64) (json.RawMessage, error)
	Ingredients(ctx context.Context, recipeID int64) (json.RawMessage, error)
	AddFavourite(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error)
	RemoveFavourite(ctx context.Context, userID, recipeID int64) error
	ListFavouriteIDs(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error)
	ListFavouriteRecipes(ctx context.Context, userID int64) (json.RawMessage, error)
}

// RecipeHandler proxies recipe lookups and manages favourites.
type RecipeHandler struct {
	service RecipeServiceInterface
}

func NewRecipeHandler(service RecipeServiceInterface) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// FavouriteRequest represents the request body for adding or removing a
// favourite
type FavouriteRequest struct {
	RecipeID int64 `json:"recipeId" validate:"required,gte=1"`
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func writeRaw(w http.ResponseWriter, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// Search proxies a term search: GET /api/recipes/search?searchTerm=&page=
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	searchTerm := r.URL.Query().Get("searchTerm")
	if searchTerm == "" {
		pkghttp.WriteBadRequest(w, "searchTerm is required")
		return
	}

	payload, err := h.service.Search(r.Context(), searchTerm, pageParam(r))
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch recipes")
		return
	}

	writeRaw(w, payload)
}

// SearchByIngredients proxies an ingredient search:
// GET /api/recipes/by-ingredients?ingredients=a,b&page=
func (h *RecipeHandler) SearchByIngredients(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ingredients")
	if raw == "" {
		pkghttp.WriteBadRequest(w, "ingredients is required")
		return
	}

	ingredients := strings.Split(raw, ",")
	payload, err := h.service.SearchByIngredients(r.Context(), ingredients, pageParam(r))
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch recipes")
		return
	}

	writeRaw(w, payload)
}

// Recommendations proxies a search filtered by the authenticated user's
// stored preferences.
func (h *RecipeHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	payload, err := h.service.SearchPreferred(r.Context(), claims.UserID, pageParam(r))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to fetch recipes")
		return
	}

	writeRaw(w, payload)
}

func recipeIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("recipeId"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Summary proxies GET /api/recipes/summary?recipeId=
func (h *RecipeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDParam(r)
	if !ok {
		pkghttp.WriteBadRequest(w, "recipeId is required")
		return
	}

	payload, err := h.service.Summary(r.Context(), recipeID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch recipe summary")
		return
	}

	writeRaw(w, payload)
}

// Instructions proxies GET /api/recipes/instructions?recipeId=
func (h *RecipeHandler) Instructions(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDParam(r)
	if !ok {
		pkghttp.WriteBadRequest(w, "recipeId is required")
		return
	}

	payload, err := h.service.Instructions(r.Context(), recipeID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch recipe instructions")
		return
	}

	writeRaw(w, payload)
}

// Ingredients proxies GET /api/recipes/ingredients?recipeId=
func (h *RecipeHandler) Ingredients(w http.ResponseWriter, r *http.Request) {
	recipeID, ok := recipeIDParam(r)
	if !ok {
		pkghttp.WriteBadRequest(w, "recipeId is required")
		return
	}

	payload, err := h.service.Ingredients(r.Context(), recipeID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch recipe ingredients")
		return
	}

	writeRaw(w, payload)
}

// AddFavourite records a favourite for the authenticated user.
func (h *RecipeHandler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	var req FavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	fav, err := h.service.AddFavourite(r.Context(), claims.UserID, req.RecipeID)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			pkghttp.WriteConflict(w, "Recipe already in favourites")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, fav)
}

// ListFavourites returns the authenticated user's favourites joined with
// full recipe information.
func (h *RecipeHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	payload, err := h.service.ListFavouriteRecipes(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch favourites")
		return
	}

	writeRaw(w, payload)
}

// FavouriteIDs returns the recipe IDs the authenticated user has favourited,
// without touching the upstream API.
func (h *RecipeHandler) FavouriteIDs(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	favs, err := h.service.ListFavouriteIDs(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to fetch favourites")
		return
	}

	ids := make([]int64, len(favs))
	for i, fav := range favs {
		ids[i] = fav.RecipeID
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string][]int64{
		"recipeIds": ids,
	})
}

// RemoveFavourite removes a favourite for the authenticated user.
func (h *RecipeHandler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "You are not authorized")
		return
	}

	var req FavouriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	if err := h.service.RemoveFavourite(r.Context(), claims.UserID, req.RecipeID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Favourite not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Favourite removed",
	})
}
