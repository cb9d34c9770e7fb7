package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/handlers"
	"github.com/yusup-rd/gourmet-gleam/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	resetHandler *handlers.PasswordResetHandler,
	userHandler *handlers.UserHandler,
	recipeHandler *handlers.RecipeHandler,
	tokenManager *auth.TokenManager,
	cookieConfig auth.CookieConfig,
) {
	loginLimit := middleware.DefaultLoginRateLimit()
	resetLimit := middleware.DefaultPasswordResetRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(loginLimit)).Post("/login", authHandler.Login)
	router.Post("/register", authHandler.Register)
	router.Get("/logout", authHandler.Logout)

	router.With(middleware.RateLimitByIP(resetLimit)).Post("/password-reset", resetHandler.RequestCode)
	router.Post("/password-reset/verify-otp", resetHandler.VerifyCode)
	router.Post("/password-reset/confirm-password", resetHandler.ConfirmPassword)

	// Recipe lookups are proxied without authentication, matching the
	// public browse experience.
	router.Get("/api/recipes/search", recipeHandler.Search)
	router.Get("/api/recipes/by-ingredients", recipeHandler.SearchByIngredients)
	router.Get("/api/recipes/summary", recipeHandler.Summary)
	router.Get("/api/recipes/instructions", recipeHandler.Instructions)
	router.Get("/api/recipes/ingredients", recipeHandler.Ingredients)

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(tokenManager, cookieConfig))

		r.Get("/", authHandler.Session)
		r.Get("/user-role", authHandler.UserRole)
		r.Get("/user-id", authHandler.UserID)

		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Post("/profile/change-password", authHandler.ChangePassword)
		r.Delete("/profile/delete", userHandler.DeleteAccount)

		r.Post("/api/recipes/favourite", recipeHandler.AddFavourite)
		r.Get("/api/recipes/favourite", recipeHandler.ListFavourites)
		r.Delete("/api/recipes/favourite", recipeHandler.RemoveFavourite)

		r.Get("/recommendations", userHandler.Preferences)
		r.Get("/recommendations/recipes", recipeHandler.Recommendations)
		r.Get("/recommendations/favourites", recipeHandler.FavouriteIDs)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole("admin"))
			r.Get("/admin/users", userHandler.ListClients)
			r.Put("/admin/users/{userId}", userHandler.AdminUpdateUser)
			r.Delete("/admin/users/{userId}", userHandler.AdminDeleteUser)
		})
	})
}
