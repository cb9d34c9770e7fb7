package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Name             string
	Email            string
	PreferredCuisine []string
	ExcludedCuisine  []string
	Diet             []string
	Intolerances     []string
}

// UserService handles profile reads/writes, account deletion and the admin
// user-management operations.
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*models.User, error) {
	updated, err := s.repo.Update(ctx, userID, &models.User{
		Name:             update.Name,
		Email:            update.Email,
		PreferredCuisine: update.PreferredCuisine,
		ExcludedCuisine:  update.ExcludedCuisine,
		Diet:             update.Diet,
		Intolerances:     update.Intolerances,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			return nil, models.ErrNotFound
		case errors.Is(err, models.ErrConflict):
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return updated, nil
}

// DeleteAccount removes the user row. Favourites and reset codes cascade.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// ListClients returns client accounts for the admin view, optionally
// filtered by a name/email substring.
func (s *UserService) ListClients(ctx context.Context, search string) ([]*models.User, error) {
	users, err := s.repo.ListClients(ctx, search)
	if err != nil {
		s.logger.Error("failed to list clients", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return users, nil
}
