package models

import (
	"time"
)

// FavouriteRecipe links a user to a recipe in the external provider's
// catalogue. Only the provider's recipe ID is stored.
type FavouriteRecipe struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	RecipeID  int64     `json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}
