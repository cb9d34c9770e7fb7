package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	pkgauth "github.com/yusup-rd/gourmet-gleam/pkg/auth"
	pkglogger "github.com/yusup-rd/gourmet-gleam/pkg/logger"
)

// UserRepository defines the user persistence operations the services need.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	ListClients(ctx context.Context, search string) ([]*models.User, error)
}

// AuthService handles login, registration and password changes.
type AuthService struct {
	repo        UserRepository
	tm          *auth.TokenManager
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

func NewAuthService(repo UserRepository, tm *auth.TokenManager, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		repo:        repo,
		tm:          tm,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// LoginResult carries the signed session token plus the fields the client
// renders after login.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login authenticates a user and issues a session token. An unknown email
// surfaces as ErrNotFound and a wrong password as ErrUnauthorized; the two
// are distinct statuses on the wire. The client IP is recorded on audit
// events only.
func (s *AuthService) Login(ctx context.Context, email, password, ipAddress string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				Email:         email,
				IPAddress:     ipAddress,
				FailureReason: "unknown_user",
				Success:       false,
			})
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			UserID:        user.ID,
			Email:         user.Email,
			IPAddress:     ipAddress,
			FailureReason: "invalid_credentials",
			Success:       false,
		})
		return nil, models.ErrUnauthorized
	}

	token, err := s.tm.GenerateSessionToken(user)
	if err != nil {
		s.logger.Error("failed to generate session token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		UserID:    user.ID,
		IPAddress: ipAddress,
		Success:   true,
	})

	return &LoginResult{Token: token, User: user}, nil
}

// Register creates a new client account and signs the user in. A taken email
// surfaces as ErrConflict from the unique constraint.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user, err := s.repo.Create(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         "client",
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.tm.GenerateSessionToken(user)
	if err != nil {
		s.logger.Error("failed to generate session token", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "registration_success",
		UserID:    user.ID,
		Success:   true,
	})

	return &LoginResult{Token: token, User: user}, nil
}

// ChangePassword verifies the current password before writing the new one.
// A wrong current password surfaces as ErrUnauthorized.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		s.auditLogger.LogPasswordEvent(pkglogger.AuditEvent{
			EventType:     "password_change_failed",
			UserID:        user.ID,
			FailureReason: "invalid_current_password",
			Success:       false,
		})
		return models.ErrUnauthorized
	}

	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		s.logger.Error("failed to update password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogPasswordEvent(pkglogger.AuditEvent{
		EventType: "password_changed",
		UserID:    user.ID,
		Success:   true,
	})

	return nil
}
