package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/services"
)

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error)
	RegisterFunc       func(ctx context.Context, name, email, password string) (*services.LoginResult, error)
	ChangePasswordFunc func(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ipAddress string) (*services.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, ipAddress)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*services.LoginResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, currentPassword, newPassword)
	}
	return nil
}

// MockPasswordResetService implements PasswordResetServiceInterface for testing
type MockPasswordResetService struct {
	RequestCodeFunc        func(ctx context.Context, email string) error
	VerifyCodeFunc         func(ctx context.Context, email, code string) error
	ConfirmNewPasswordFunc func(ctx context.Context, email, code, newPassword string) error
}

func (m *MockPasswordResetService) RequestCode(ctx context.Context, email string) error {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, email)
	}
	return nil
}

func (m *MockPasswordResetService) VerifyCode(ctx context.Context, email, code string) error {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, email, code)
	}
	return nil
}

func (m *MockPasswordResetService) ConfirmNewPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ConfirmNewPasswordFunc != nil {
		return m.ConfirmNewPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetProfileFunc    func(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, userID int64, update services.ProfileUpdate) (*models.User, error)
	DeleteAccountFunc func(ctx context.Context, userID int64) error
	ListClientsFunc   func(ctx context.Context, search string) ([]*models.User, error)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int64, update services.ProfileUpdate) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, update)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserService) DeleteAccount(ctx context.Context, userID int64) error {
	if m.DeleteAccountFunc != nil {
		return m.DeleteAccountFunc(ctx, userID)
	}
	return nil
}

func (m *MockUserService) ListClients(ctx context.Context, search string) ([]*models.User, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx, search)
	}
	return []*models.User{}, nil
}

// MockRecipeService implements RecipeServiceInterface for testing
type MockRecipeService struct {
	SearchFunc               func(ctx context.Context, searchTerm string, page int) (json.RawMessage, error)
	SearchByIngredientsFunc  func(ctx context.Context, ingredients []string, page int) (json.RawMessage, error)
	SearchPreferredFunc      func(ctx context.Context, userID int64, page int) (json.RawMessage, error)
	SummaryFunc              func(ctx context.Context, recipeID int64) (json.RawMessage, error)
	InstructionsFunc         func(ctx context.Context, recipeID int64) (json.RawMessage, error)
	IngredientsFunc          func(ctx context.Context, recipeID int64) (json.RawMessage, error)
	AddFavouriteFunc         func(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error)
	RemoveFavouriteFunc      func(ctx context.Context, userID, recipeID int64) error
	ListFavouriteIDsFunc     func(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error)
	ListFavouriteRecipesFunc func(ctx context.Context, userID int64) (json.RawMessage, error)
}

func (m *MockRecipeService) Search(ctx context.Context, searchTerm string, page int) (json.RawMessage, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, searchTerm, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

func (m *MockRecipeService) SearchByIngredients(ctx context.Context, ingredients []string, page int) (json.RawMessage, error) {
	if m.SearchByIngredientsFunc != nil {
		return m.SearchByIngredientsFunc(ctx, ingredients, page)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockRecipeService) SearchPreferred(ctx context.Context, userID int64, page int) (json.RawMessage, error) {
	if m.SearchPreferredFunc != nil {
		return m.SearchPreferredFunc(ctx, userID, page)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

func (m *MockRecipeService) Summary(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, recipeID)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockRecipeService) Instructions(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	if m.InstructionsFunc != nil {
		return m.InstructionsFunc(ctx, recipeID)
	}
	return json.RawMessage(`[]`), nil
}

func (m *MockRecipeService) Ingredients(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	if m.IngredientsFunc != nil {
		return m.IngredientsFunc(ctx, recipeID)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockRecipeService) AddFavourite(ctx context.Context, userID, recipeID int64) (*models.FavouriteRecipe, error) {
	if m.AddFavouriteFunc != nil {
		return m.AddFavouriteFunc(ctx, userID, recipeID)
	}
	return &models.FavouriteRecipe{UserID: userID, RecipeID: recipeID}, nil
}

func (m *MockRecipeService) RemoveFavourite(ctx context.Context, userID, recipeID int64) error {
	if m.RemoveFavouriteFunc != nil {
		return m.RemoveFavouriteFunc(ctx, userID, recipeID)
	}
	return nil
}

func (m *MockRecipeService) ListFavouriteIDs(ctx context.Context, userID int64) ([]*models.FavouriteRecipe, error) {
	if m.ListFavouriteIDsFunc != nil {
		return m.ListFavouriteIDsFunc(ctx, userID)
	}
	return []*models.FavouriteRecipe{}, nil
}

func (m *MockRecipeService) ListFavouriteRecipes(ctx context.Context, userID int64) (json.RawMessage, error) {
	if m.ListFavouriteRecipesFunc != nil {
		return m.ListFavouriteRecipesFunc(ctx, userID)
	}
	return json.RawMessage(`{"results":[]}`), nil
}

// withClaims attaches session claims to a request, standing in for the
// session middleware in handler tests.
func withClaims(r *http.Request, claims *models.SessionClaims) *http.Request {
	ctx := context.WithValue(r.Context(), auth.UserContextKey, claims)
	return r.WithContext(ctx)
}

func testClaims() *models.SessionClaims {
	return &models.SessionClaims{Email: "a@x.com", Role: "client", UserID: 42}
}

func doJSON(handler http.HandlerFunc, method, target, body string, claims *models.SessionClaims) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if claims != nil {
		req = withClaims(req, claims)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
