package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusup-rd/gourmet-gleam/internal/auth"
	"github.com/yusup-rd/gourmet-gleam/internal/models"
	"github.com/yusup-rd/gourmet-gleam/internal/services"
)

func TestGetProfile_ReturnsUserWithoutHash(t *testing.T) {
	service := &MockUserService{
		GetProfileFunc: func(ctx context.Context, userID int64) (*models.User, error) {
			return &models.User{
				ID:           42,
				Name:         "Alice",
				Email:        "a@x.com",
				PasswordHash: "$2a$12$secret",
				Role:         "client",
			}, nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	rec := doJSON(h.GetProfile, "GET", "/profile", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestUpdateProfile_PassesPreferences(t *testing.T) {
	var gotUpdate services.ProfileUpdate
	service := &MockUserService{
		UpdateProfileFunc: func(ctx context.Context, userID int64, update services.ProfileUpdate) (*models.User, error) {
			gotUpdate = update
			return &models.User{ID: userID, Name: update.Name, Email: update.Email}, nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	rec := doJSON(h.UpdateProfile, "PUT", "/profile",
		`{"name":"Alice","email":"a@x.com","preferredCuisine":["italian"],"diet":["vegan"]}`, testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"italian"}, gotUpdate.PreferredCuisine)
	assert.Equal(t, []string{"vegan"}, gotUpdate.Diet)
}

func TestDeleteAccount_ClearsCookie(t *testing.T) {
	var deleted int64
	service := &MockUserService{
		DeleteAccountFunc: func(ctx context.Context, userID int64) error {
			deleted = userID
			return nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	rec := doJSON(h.DeleteAccount, "DELETE", "/profile/delete", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), deleted)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestPreferences_ReturnsStoredArrays(t *testing.T) {
	service := &MockUserService{
		GetProfileFunc: func(ctx context.Context, userID int64) (*models.User, error) {
			return &models.User{
				ID:               42,
				PreferredCuisine: []string{"italian"},
				ExcludedCuisine:  []string{},
				Diet:             []string{"vegan"},
				Intolerances:     []string{"gluten"},
			}, nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	rec := doJSON(h.Preferences, "GET", "/recommendations", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"preferredCuisine":["italian"],"excludedCuisine":[],"diet":["vegan"],"intolerances":["gluten"]}`,
		rec.Body.String())
}

func TestListClients_PassesSearchQuery(t *testing.T) {
	var gotSearch string
	service := &MockUserService{
		ListClientsFunc: func(ctx context.Context, search string) ([]*models.User, error) {
			gotSearch = search
			return []*models.User{{ID: 1, Name: "Alice", Role: "client"}}, nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	rec := doJSON(h.ListClients, "GET", "/admin/users?search=ali", "", testClaims())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ali", gotSearch)
	assert.Contains(t, rec.Body.String(), `"users"`)
}

func adminRequest(t *testing.T, method, target, body, userID string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminUpdateUser_ParsesURLParam(t *testing.T) {
	var gotID int64
	service := &MockUserService{
		UpdateProfileFunc: func(ctx context.Context, userID int64, update services.ProfileUpdate) (*models.User, error) {
			gotID = userID
			return &models.User{ID: userID, Name: update.Name, Email: update.Email}, nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	req := adminRequest(t, "PUT", "/admin/users/7", `{"name":"Bob","email":"b@x.com"}`, "7")
	rec := httptest.NewRecorder()
	h.AdminUpdateUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestAdminUpdateUser_BadIDIs400(t *testing.T) {
	h := NewUserHandler(&MockUserService{}, auth.CookieConfig{})
	req := adminRequest(t, "PUT", "/admin/users/abc", `{"name":"Bob","email":"b@x.com"}`, "abc")
	rec := httptest.NewRecorder()
	h.AdminUpdateUser(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDeleteUser(t *testing.T) {
	var deleted int64
	service := &MockUserService{
		DeleteAccountFunc: func(ctx context.Context, userID int64) error {
			deleted = userID
			return nil
		},
	}

	h := NewUserHandler(service, auth.CookieConfig{})
	req := adminRequest(t, "DELETE", "/admin/users/7", "", "7")
	rec := httptest.NewRecorder()
	h.AdminDeleteUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), deleted)

	service.DeleteAccountFunc = func(ctx context.Context, userID int64) error {
		return models.ErrNotFound
	}
	req = adminRequest(t, "DELETE", "/admin/users/8", "", "8")
	rec = httptest.NewRecorder()
	h.AdminDeleteUser(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
