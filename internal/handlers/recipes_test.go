package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

func TestRecipeSearch_RequiresSearchTerm(t *testing.T) {
	h := NewRecipeHandler(&MockRecipeService{})
	rec := doJSON(h.Search, "GET", "/api/recipes/search", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecipeSearch_DefaultsToPageOne(t *testing.T) {
	var gotTerm string
	var gotPage int
	service := &MockRecipeService{
		SearchFunc: func(ctx context.Context, searchTerm string, page int) (json.RawMessage, error) {
			gotTerm = searchTerm
			gotPage = page
			return json.RawMessage(`{"results":[{"id":1}]}`), nil
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.Search, "GET", "/api/recipes/search?searchTerm=pasta", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pasta", gotTerm)
	assert.Equal(t, 1, gotPage)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"results":[{"id":1}]}`, rec.Body.String())
}

func TestSearchByIngredients_SplitsList(t *testing.T) {
	var gotIngredients []string
	var gotPage int
	service := &MockRecipeService{
		SearchByIngredientsFunc: func(ctx context.Context, ingredients []string, page int) (json.RawMessage, error) {
			gotIngredients = ingredients
			gotPage = page
			return json.RawMessage(`[]`), nil
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.SearchByIngredients, "GET", "/api/recipes/by-ingredients?ingredients=egg,flour&page=2", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"egg", "flour"}, gotIngredients)
	assert.Equal(t, 2, gotPage)
}

func TestRecipeDetailHandlers_RequireRecipeID(t *testing.T) {
	h := NewRecipeHandler(&MockRecipeService{})

	for _, handler := range []http.HandlerFunc{h.Summary, h.Instructions, h.Ingredients} {
		rec := doJSON(handler, "GET", "/api/recipes/summary", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(handler, "GET", "/api/recipes/summary?recipeId=716429", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRecommendations_UsesClaimUserID(t *testing.T) {
	var gotUserID int64
	service := &MockRecipeService{
		SearchPreferredFunc: func(ctx context.Context, userID int64, page int) (json.RawMessage, error) {
			gotUserID = userID
			return json.RawMessage(`{"results":[]}`), nil
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.Recommendations, "GET", "/recommendations/recipes", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
}

func TestAddFavourite_Success(t *testing.T) {
	var gotRecipeID int64
	service := &MockRecipeService{
		AddFavouriteFunc: func(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error) {
			gotRecipeID = recipeID
			return &models.FavouriteRecipe{ID: "row-id", UserID: userID, RecipeID: recipeID}, nil
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.AddFavourite, "POST", "/api/recipes/favourite", `{"recipeId":716429}`, testClaims())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(716429), gotRecipeID)
}

func TestAddFavourite_DuplicateIs409(t *testing.T) {
	service := &MockRecipeService{
		AddFavouriteFunc: func(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error) {
			return nil, models.ErrConflict
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.AddFavourite, "POST", "/api/recipes/favourite", `{"recipeId":716429}`, testClaims())

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListFavourites_ProxiesJoinedPayload(t *testing.T) {
	service := &MockRecipeService{
		ListFavouriteRecipesFunc: func(ctx context.Context, userID int64) (json.RawMessage, error) {
			return json.RawMessage(`{"results":[{"id":1}]}`), nil
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.ListFavourites, "GET", "/api/recipes/favourite", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"results":[{"id":1}]}`, rec.Body.String())
}

func TestFavouriteIDs_ReturnsStoredRecipeIDs(t *testing.T) {
	service := &MockRecipeService{
		ListFavouriteIDsFunc: func(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error) {
			return []*models.FavouriteRecipe{
				{ID: "row-1", UserID: userID, RecipeID: 716429},
				{ID: "row-2", UserID: userID, RecipeID: 715538},
			}, nil
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.FavouriteIDs, "GET", "/recommendations/favourites", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recipeIds":[716429,715538]}`, rec.Body.String())
}

func TestRemoveFavourite_MissingIs404(t *testing.T) {
	service := &MockRecipeService{
		RemoveFavouriteFunc: func(ctx context.Context, userID, recipeID int64) error {
			return models.ErrNotFound
		},
	}

	h := NewRecipeHandler(service)
	rec := doJSON(h.RemoveFavourite, "DELETE", "/api/recipes/favourite", `{"recipeId":716429}`, testClaims())

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
