package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/recipes"
	pkglogger "github.com/yusup-rd/gourmet-gleam/pkg/logger"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc        func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*models.User, error)
	CreateFunc         func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc         func(ctx context.Context, id int64, user *models.User) (*models.User, error)
	UpdatePasswordFunc func(ctx context.Context, id int64, passwordHash string) error
	DeleteFunc         func(ctx context.Context, id int64) error
	ListClientsFunc    func(ctx context.Context, search string) ([]*models.User, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) ListClients(ctx context.Context, search string) ([]*models.User, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx, search)
	}
	return []*models.User{}, nil
}

// MockTxUserRepository implements TxUserRepository for testing
type MockTxUserRepository struct {
	UpdatePasswordTxFunc func(ctx context.Context, tx pgx.Tx, id int64, passwordHash string) error
}

func (m *MockTxUserRepository) UpdatePasswordTx(ctx context.Context, tx pgx.Tx, id int64, passwordHash string) error {
	if m.UpdatePasswordTxFunc != nil {
		return m.UpdatePasswordTxFunc(ctx, tx, id, passwordHash)
	}
	return nil
}

// MockResetCodeRepository implements ResetCodeRepository for testing
type MockResetCodeRepository struct {
	CreateFunc         func(ctx context.Context, userID int64, code string, expiresAt time.Time) (*models.PasswordResetCode, error)
	DeleteByUserIDFunc func(ctx context.Context, userID int64) error
	GetValidFunc       func(ctx context.Context, email, code string) (*models.PasswordResetCode, error)
	ClaimTxFunc        func(ctx context.Context, tx pgx.Tx, email, code string) (int64, error)
}

func (m *MockResetCodeRepository) Create(ctx context.Context, userID int64, code string, expiresAt time.Time) (*models.PasswordResetCode, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, code, expiresAt)
	}
	return &models.PasswordResetCode{UserID: userID, Code: code, ExpiresAt: expiresAt}, nil
}

func (m *MockResetCodeRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if m.DeleteByUserIDFunc != nil {
		return m.DeleteByUserIDFunc(ctx, userID)
	}
	return nil
}

func (m *MockResetCodeRepository) GetValid(ctx context.Context, email, code string) (*models.PasswordResetCode, error) {
	if m.GetValidFunc != nil {
		return m.GetValidFunc(ctx, email, code)
	}
	return nil, models.ErrNotFound
}

func (m *MockResetCodeRepository) ClaimTx(ctx context.Context, tx pgx.Tx, email, code string) (int64, error) {
	if m.ClaimTxFunc != nil {
		return m.ClaimTxFunc(ctx, tx, email, code)
	}
	return 0, models.ErrInvalidOrExpiredCode
}

// MockTxRunner implements TxRunner for testing. The callback receives a nil
// pgx.Tx; mocked repositories ignore it.
type MockTxRunner struct {
	WithTransactionFunc func(ctx context.Context, fn func(pgx.Tx) error) error
}

func (m *MockTxRunner) WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(nil)
}

// MockMailer implements email.Mailer for testing
type MockMailer struct {
	SendResetCodeFunc func(ctx context.Context, toAddress, name, code string, expiresAt time.Time) error
}

func (m *MockMailer) SendResetCode(ctx context.Context, toAddress, name, code string, expiresAt time.Time) error {
	if m.SendResetCodeFunc != nil {
		return m.SendResetCodeFunc(ctx, toAddress, name, code, expiresAt)
	}
	return nil
}

// MockFavouriteRepository implements FavouriteRepository for testing
type MockFavouriteRepository struct {
	CreateFunc     func(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error)
	ListByUserFunc func(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error)
	DeleteFunc     func(ctx context.Context, userID, recipeID int64) error
}

func (m *MockFavouriteRepository) Create(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, recipeID)
	}
	return &models.FavouriteRecipe{UserID: userID, RecipeID: recipeID}, nil
}

func (m *MockFavouriteRepository) ListByUser(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []*models.FavouriteRecipe{}, nil
}

func (m *MockFavouriteRepository) Delete(ctx context.Context, userID, recipeID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, recipeID)
	}
	return nil
}

// MockRecipeAPI implements RecipeAPI for testing
type MockRecipeAPI struct {
	SearchFunc              func(ctx context.Context, searchTerm string, page int) (json.RawMessage, error)
	SearchByIngredientsFunc func(ctx context.Context, ingredients []string, page int) (json.RawMessage, error)
	SearchPreferredFunc     func(ctx context.Context, filters recipes.PreferenceFilters, page int) (json.RawMessage, error)
	SummaryFunc             func(ctx context.Context, recipeID int64) (json.RawMessage, error)
	InstructionsFunc        func(ctx context.Context, recipeID int64) (json.RawMessage, error)
	IngredientsFunc         func(ctx context.Context, recipeID int64) (json.RawMessage, error)
	InformationBulkFunc     func(ctx context.Context, ids []int64) (json.RawMessage, error)
}

func (m *MockRecipeAPI) Search(ctx context.Context, searchTerm string, page int) (json.RawMessage, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, searchTerm, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

func (m *MockRecipeAPI) SearchByIngredients(ctx context.Context, ingredients []string, page int) (json.RawMessage, error) {
	if m.SearchByIngredientsFunc != nil {
		return m.SearchByIngredientsFunc(ctx, ingredients, page)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockRecipeAPI) SearchPreferred(ctx context.Context, filters recipes.PreferenceFilters, page int) (json.RawMessage, error) {
	if m.SearchPreferredFunc != nil {
		return m.SearchPreferredFunc(ctx, filters, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

func (m *MockRecipeAPI) Summary(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, recipeID)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockRecipeAPI) Instructions(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	if m.InstructionsFunc != nil {
		return m.InstructionsFunc(ctx, recipeID)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockRecipeAPI) Ingredients(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	if m.IngredientsFunc != nil {
		return m.IngredientsFunc(ctx, recipeID)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockRecipeAPI) InformationBulk(ctx context.Context, ids []int64) (json.RawMessage, error) {
	if m.InformationBulkFunc != nil {
		return m.InformationBulkFunc(ctx, ids)
	}
	return json.RawMessage(`[]`), nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discardWriter{}, nil))
}

func testAuditLogger() *pkglogger.AuditLogger {
	return pkglogger.NewAuditLogger(testLogger())
}
