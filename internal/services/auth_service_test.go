package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	pkgauth "github.com/yusup-rd/gourmet-gleam/pkg/auth"
)

const testJWTSecret = "test-secret-32-characters-long!!"

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(testJWTSecret, 24*time.Hour)
}

func hashedUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := pkgauth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           42,
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: hash,
		Role:         "client",
	}
}

func TestLogin_Success(t *testing.T) {
	user := hashedUser(t, "correct-horse-battery")
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			assert.Equal(t, "a@x.com", email)
			return user, nil
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	result, err := svc.Login(context.Background(), "a@x.com", "correct-horse-battery", "203.0.113.9")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(42), result.User.ID)

	claims, err := testTokenManager().ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, int64(42), claims.UserID)
}

func TestLogin_UnknownEmailIsNotFound(t *testing.T) {
	repo := &MockUserRepository{} // default GetByEmail returns ErrNotFound

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	_, err := svc.Login(context.Background(), "nobody@x.com", "whatever", "203.0.113.9")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLogin_WrongPasswordIsUnauthorized(t *testing.T) {
	user := hashedUser(t, "correct-horse-battery")
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	_, err := svc.Login(context.Background(), "a@x.com", "wrong-password", "203.0.113.9")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestLogin_EmailMatchIsExact(t *testing.T) {
	// The repository is queried with the address exactly as submitted;
	// no case folding happens on the lookup path.
	var queried string
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			queried = email
			return nil, models.ErrNotFound
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	_, err := svc.Login(context.Background(), "A@X.com", "whatever", "203.0.113.9")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "A@X.com", queried)
}

func TestRegister_CreatesClientAndIssuesToken(t *testing.T) {
	var created *models.User
	repo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			created = user
			user.ID = 7
			return user, nil
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	result, err := svc.Register(context.Background(), "Bob", "b@x.com", "sturdy-password-1")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "client", created.Role)
	assert.NotEqual(t, "sturdy-password-1", created.PasswordHash)
	assert.NoError(t, pkgauth.ComparePassword(created.PasswordHash, "sturdy-password-1"))
	assert.NotEmpty(t, result.Token)
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	repo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, user *models.User) (*models.User, error) {
			return nil, models.ErrConflict
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	_, err := svc.Register(context.Background(), "Bob", "a@x.com", "sturdy-password-1")
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	svc := NewAuthService(&MockUserRepository{}, testTokenManager(), testLogger(), testAuditLogger())

	_, err := svc.Register(context.Background(), "Bob", "b@x.com", "short")
	var vErr *pkgauth.PasswordValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestChangePassword_Success(t *testing.T) {
	user := hashedUser(t, "old-password-123")
	var newHash string
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id int64, passwordHash string) error {
			newHash = passwordHash
			return nil
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	err := svc.ChangePassword(context.Background(), 42, "old-password-123", "new-password-456")
	require.NoError(t, err)
	assert.NoError(t, pkgauth.ComparePassword(newHash, "new-password-456"))
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	user := hashedUser(t, "old-password-123")
	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
			return user, nil
		},
		UpdatePasswordFunc: func(ctx context.Context, id int64, passwordHash string) error {
			t.Fatal("password must not be updated when the current password is wrong")
			return nil
		},
	}

	svc := NewAuthService(repo, testTokenManager(), testLogger(), testAuditLogger())

	err := svc.ChangePassword(context.Background(), 42, "not-the-password", "new-password-456")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
