package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/background"
	"github.com/yusup-rd/gourmet-gleam/internal/config"
	"github.com/yusup-rd/gourmet-gleam/internal/database"
	"github.com/yusup-rd/gourmet-gleam/internal/email"
	"github.com/yusup-rd/gourmet-gleam/internal/handlers"
	middlewareCustom "github.com/yusup-rd/gourmet-gleam/internal/middleware"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/recipes"
	"github.com/yusup-rd/gourmet-gleam/internal/repositories"
	"github.com/yusup-rd/gourmet-gleam/internal/routes"
	"github.com/yusup-rd/gourmet-gleam/internal/services"
	"github.com/yusup-rd/gourmet-gleam/migrations"
	pkgauth "github.com/yusup-rd/gourmet-gleam/pkg/auth"
	pkghttp "github.com/yusup-rd/gourmet-gleam/pkg/http"
	pkglogger "github.com/yusup-rd/gourmet-gleam/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Run database migrations
	if err := database.Migrate(&cfg.Database, migrations.FS, logger); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewResetCodeRepository(db)
	favRepo := repositories.NewFavouriteRepository(db)

	// Initialize reaper for expired reset codes
	reaper := background.NewReaper(codeRepo, logger, cfg.Auth.ReapInterval)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTokenExpiry)

	cookieConfig := auth.CookieConfig{Secure: cfg.Auth.CookieSecure}

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Outbound mail transport
	var mailer email.Mailer
	switch cfg.Email.Provider {
	case "ses":
		mailer, err = email.NewSESMailer(cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
		if err != nil {
			logger.Error("failed to initialize SES mailer", slog.Any("error", err))
			os.Exit(1)
		}
	default:
		mailer = email.NewSMTPMailer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPass,
			cfg.Email.FromAddress,
			logger,
		)
	}

	// Spoonacular client
	recipeClient := recipes.NewClient(cfg.Recipes.BaseURL, cfg.Recipes.APIKey, logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenManager, logger, auditLogger)
	resetService := services.NewPasswordResetService(
		userRepo, userRepo, codeRepo, db, mailer,
		logger, auditLogger, cfg.Auth.ResetCodeExpiry,
	)
	userService := services.NewUserService(userRepo, logger)
	recipeService := services.NewRecipeService(recipeClient, favRepo, userRepo, logger)

	// Initialize handlers
	ipConfig := &pkghttp.IPConfig{TrustedProxies: cfg.Server.TrustedProxies}
	authHandler := handlers.NewAuthHandler(authService, tokenManager, cookieConfig, ipConfig)
	resetHandler := handlers.NewPasswordResetHandler(resetService)
	userHandler := handlers.NewUserHandler(userService, cookieConfig)
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// Bootstrap first admin user if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureAdminUser(ctx, userRepo, logger); err != nil {
		logger.Error("failed to ensure admin user", slog.Any("error", err))
	}
	cancel()

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders())
	router.Use(middlewareCustom.CORS(middlewareCustom.NewCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, authHandler, resetHandler, userHandler, recipeHandler, tokenManager, cookieConfig)

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start reaper
	reaperCtx, reaperCancel := context.WithCancel(context.Background())
	defer reaperCancel()

	go reaper.Start(reaperCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	reaperCancel()
	reaper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// ensureAdminUser creates the first admin user if ADMIN_EMAIL and
// ADMIN_PASSWORD are set
func ensureAdminUser(ctx context.Context, userRepo *repositories.UserRepository, logger *slog.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Info("no ADMIN_EMAIL or ADMIN_PASSWORD set, skipping admin user creation")
		return nil
	}

	_, err := userRepo.GetByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("admin user already exists")
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	hashedPassword, err := pkgauth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = userRepo.Create(ctx, &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Name:         "Admin",
		Role:         "admin",
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("admin user created successfully")
	return nil
}
