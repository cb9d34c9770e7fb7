package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yusup-rd/gourmet-gleam/internal/database"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

type FavouriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavouriteRepository(db *database.DB) *FavouriteRepository {
	return &FavouriteRepository{pool: db.Pool}
}

// Create records a favourite. A duplicate (user, recipe) pair surfaces as
// models.ErrConflict via the unique constraint.
func (r *FavouriteRepository) Create(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error) {
	fav := &models.FavouriteRecipe{
		ID:        uuid.New().String(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO favourite_recipes (id, user_id, recipe_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, fav.ID, fav.UserID, fav.RecipeID, fav.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return fav, nil
}

func (r *FavouriteRepository) ListByUser(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error) {
	query := `
		SELECT id, user_id, recipe_id, created_at
		FROM favourite_recipes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favourites: %w", err)
	}
	defer rows.Close()

	favourites := make([]*models.FavouriteRecipe, 0)

	for rows.Next() {
		var fav models.FavouriteRecipe
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.RecipeID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favourite: %w", err)
		}
		favourites = append(favourites, &fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return favourites, nil
}

// Delete removes the user's favourite for the given recipe.
func (r *FavouriteRepository) Delete(ctx context.Context, userID, recipeID int64) error {
	query := `DELETE FROM favourite_recipes WHERE user_id = $1 AND recipe_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
