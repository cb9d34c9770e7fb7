package recipes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&discardWriter{}, nil))
}

type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", testLogger())
}

func TestSearch_PagesByOffset(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/complexSearch", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":[{"id":1}],"totalResults":1}`))
	})

	raw, err := c.Search(context.Background(), "pasta", 3)
	require.NoError(t, err)

	assert.Equal(t, "pasta", gotQuery["query"][0])
	assert.Equal(t, "10", gotQuery["number"][0])
	assert.Equal(t, "20", gotQuery["offset"][0])
	assert.Equal(t, "test-key", gotQuery["apiKey"][0])

	var payload struct {
		TotalResults int `json:"totalResults"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, 1, payload.TotalResults)
}

func TestSearchByIngredients_GrowsWindow(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/findByIngredients", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	_, err := c.SearchByIngredients(context.Background(), []string{"egg", "flour"}, 2)
	require.NoError(t, err)

	assert.Equal(t, "egg,+flour", gotQuery["ingredients"][0])
	assert.Equal(t, "20", gotQuery["number"][0])
}

func TestSearchPreferred_OmitsEmptyFilters(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":[]}`))
	})

	filters := PreferenceFilters{Cuisine: "italian", Intolerances: "gluten"}
	_, err := c.SearchPreferred(context.Background(), filters, 1)
	require.NoError(t, err)

	assert.Equal(t, "italian", gotQuery["cuisine"][0])
	assert.Equal(t, "gluten", gotQuery["intolerances"][0])
	assert.NotContains(t, gotQuery, "excludeCuisine")
	assert.NotContains(t, gotQuery, "diet")
	assert.Equal(t, "0", gotQuery["offset"][0])
}

func TestRecipeDetailEndpoints(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	_, err := c.Summary(context.Background(), 716429)
	require.NoError(t, err)
	assert.Equal(t, "/recipes/716429/summary", gotPath)

	_, err = c.Instructions(context.Background(), 716429)
	require.NoError(t, err)
	assert.Equal(t, "/recipes/716429/analyzedInstructions", gotPath)

	_, err = c.Ingredients(context.Background(), 716429)
	require.NoError(t, err)
	assert.Equal(t, "/recipes/716429/ingredientWidget.json", gotPath)
}

func TestInformationBulk_JoinsIDs(t *testing.T) {
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/informationBulk", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id":1},{"id":2}]`))
	})

	_, err := c.InformationBulk(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "1,2", gotQuery["ids"][0])
}

func TestGet_NonOKStatusIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	})

	_, err := c.Search(context.Background(), "pasta", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}
