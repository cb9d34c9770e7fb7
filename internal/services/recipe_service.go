package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/recipes"
)

// RecipeAPI is the slice of the Spoonacular client the service needs.
type RecipeAPI interface {
	Search(ctx context.Context, searchTerm string, page int) (json.RawMessage, error)
	SearchByIngredients(ctx context.Context, ingredients []string, page int) (json.RawMessage, error)
	SearchPreferred(ctx context.Context, filters recipes.PreferenceFilters, page int) (json.RawMessage, error)
	Summary(ctx context.Context, recipeID int64) (json.RawMessage, error)
	Instructions(ctx context.Context, recipeID int64) (json.RawMessage, error)
	Ingredients(ctx context.Context, recipeID int64) (json.RawMessage, error)
	InformationBulk(ctx context.Context, ids []int64) (json.RawMessage, error)
}

// FavouriteRepository defines favourite persistence operations.
type FavouriteRepository interface {
	Create(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error)
	Delete(ctx context.Context, userID, recipeID int64) error
}

// RecipeService proxies recipe lookups and manages favourites.
type RecipeService struct {
	api      RecipeAPI
	favRepo  FavouriteRepository
	userRepo UserRepository
	logger   *slog.Logger
}

func NewRecipeService(api RecipeAPI, favRepo FavouriteRepository, userRepo UserRepository, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		api:      api,
		favRepo:  favRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *RecipeService) Search(ctx context.Context, searchTerm string, page int) (json.RawMessage, error) {
	return s.api.Search(ctx, searchTerm, page)
}

func (s *RecipeService) SearchByIngredients(ctx context.Context, ingredients []string, page int) (json.RawMessage, error) {
	return s.api.SearchByIngredients(ctx, ingredients, page)
}

func (s *RecipeService) Summary(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	return s.api.Summary(ctx, recipeID)
}

func (s *RecipeService) Instructions(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	return s.api.Instructions(ctx, recipeID)
}

func (s *RecipeService) Ingredients(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	return s.api.Ingredients(ctx, recipeID)
}

// SearchPreferred runs a search constrained by the user's stored dietary
// preferences. Multi-valued preferences are comma-joined for the upstream
// API.
func (s *RecipeService) SearchPreferred(ctx context.Context, userID int64, page int) (json.RawMessage, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	filters := recipes.PreferenceFilters{
		Cuisine:        strings.Join(user.PreferredCuisine, ","),
		ExcludeCuisine: strings.Join(user.ExcludedCuisine, ","),
		Diet:           strings.Join(user.Diet, ","),
		Intolerances:   strings.Join(user.Intolerances, ","),
	}

	return s.api.SearchPreferred(ctx, filters, page)
}

// AddFavourite records a favourite. A duplicate pair surfaces as
// ErrConflict.
func (s *RecipeService) AddFavourite(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error) {
	fav, err := s.favRepo.Create(ctx, userID, recipeID)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to add favourite", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return fav, nil
}

func (s *RecipeService) RemoveFavourite(ctx context.Context, userID, recipeID int64) error {
	if err := s.favRepo.Delete(ctx, userID, recipeID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to remove favourite", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// ListFavouriteIDs returns the user's stored favourite rows without touching
// the upstream API.
func (s *RecipeService) ListFavouriteIDs(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error) {
	favs, err := s.favRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favourites", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return favs, nil
}

// ListFavouriteRecipes joins the user's stored favourite IDs with full
// recipe information from the upstream API. The bulk payload is wrapped
// under "results" to match the search response shape.
func (s *RecipeService) ListFavouriteRecipes(ctx context.Context, userID int64) (json.RawMessage, error) {
	favs, err := s.favRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list favourites", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if len(favs) == 0 {
		return json.RawMessage(`{"results":[]}`), nil
	}

	ids := make([]int64, len(favs))
	for i, fav := range favs {
		ids[i] = fav.RecipeID
	}

	bulk, err := s.api.InformationBulk(ctx, ids)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"results":`)
	buf.Write(bulk)
	buf.WriteString(`}`)

	return json.RawMessage(buf.Bytes()), nil
}
