package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
)

func TestGetProfile_ReturnsUser(t *testing.T) {
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			assert.Equal(t, int64(42), id)
			return &models.User{ID: 42, Name: "Alice", Email: "a@x.com"}, nil
		},
	}

	svc := NewUserService(repo, testLogger())

	user, err := svc.GetProfile(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}

func TestUpdateProfile_WritesPreferenceFields(t *testing.T) {
	var written *models.User
	repo := &MockUserRepository{
		UpdateFunc: func(ctx context.Context, id int64, user *models.User) (*models.User, error) {
			written = user
			user.ID = id
			return user, nil
		},
	}

	svc := NewUserService(repo, testLogger())

	updated, err := svc.UpdateProfile(context.Background(), 42, ProfileUpdate{
		Name:             "Alice",
		Email:            "a@x.com",
		PreferredCuisine: []string{"italian"},
		Diet:             []string{"vegetarian"},
		Intolerances:     []string{"gluten"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), updated.ID)
	assert.Equal(t, []string{"italian"}, written.PreferredCuisine)
	assert.Equal(t, []string{"vegetarian"}, written.Diet)
}

func TestUpdateProfile_EmailTakenIsConflict(t *testing.T) {
	repo := &MockUserRepository{
		UpdateFunc: func(ctx context.Context, id int64, user *models.User) (*models.User, error) {
			return nil, models.ErrConflict
		},
	}

	svc := NewUserService(repo, testLogger())

	_, err := svc.UpdateProfile(context.Background(), 42, ProfileUpdate{Email: "taken@x.com"})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestDeleteAccount(t *testing.T) {
	var deleted int64
	repo := &MockUserRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}

	svc := NewUserService(repo, testLogger())

	require.NoError(t, svc.DeleteAccount(context.Background(), 42))
	assert.Equal(t, int64(42), deleted)

	repo.DeleteFunc = func(ctx context.Context, id int64) error {
		return models.ErrNotFound
	}
	assert.ErrorIs(t, svc.DeleteAccount(context.Background(), 42), models.ErrNotFound)
}

func TestListClients_PassesSearchThrough(t *testing.T) {
	var gotSearch string
	repo := &MockUserRepository{
		ListClientsFunc: func(ctx context.Context, search string) ([]*models.User, error) {
			gotSearch = search
			return []*models.User{{ID: 1, Role: "client"}}, nil
		},
	}

	svc := NewUserService(repo, testLogger())

	users, err := svc.ListClients(context.Background(), "ali")
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "ali", gotSearch)
}
