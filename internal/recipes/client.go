// Package recipes wraps the Spoonacular REST API. Responses are passed
// through to callers as raw JSON; this service proxies rather than remodels
// the upstream payloads.
package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the production Spoonacular endpoint.
	DefaultBaseURL = "https://api.spoonacular.com"

	recipesPerPage = 10
)

// PreferenceFilters narrows a search to the user's stored dietary profile.
// Empty fields are omitted from the upstream query.
type PreferenceFilters struct {
	Cuisine        string
	ExcludeCuisine string
	Diet           string
	Intolerances   string
}

// Client calls the Spoonacular API with a fixed key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Search runs a complexSearch for the term, ten results per page.
func (c *Client) Search(ctx context.Context, searchTerm string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("query", searchTerm)
	params.Set("number", strconv.Itoa(recipesPerPage))
	params.Set("offset", strconv.Itoa((page-1)*recipesPerPage))

	return c.get(ctx, "/recipes/complexSearch", params)
}

// SearchByIngredients finds recipes using the given ingredients. Paging here
// grows the result window rather than offsetting it; that matches the
// upstream findByIngredients endpoint, which has no offset parameter.
func (c *Client) SearchByIngredients(ctx context.Context, ingredients []string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ",+"))
	params.Set("number", strconv.Itoa(page*recipesPerPage))

	return c.get(ctx, "/recipes/findByIngredients", params)
}

// SearchPreferred runs a complexSearch constrained by the user's stored
// preferences.
func (c *Client) SearchPreferred(ctx context.Context, filters PreferenceFilters, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(recipesPerPage))
	params.Set("offset", strconv.Itoa((page-1)*recipesPerPage))

	if filters.Cuisine != "" {
		params.Set("cuisine", filters.Cuisine)
	}
	if filters.ExcludeCuisine != "" {
		params.Set("excludeCuisine", filters.ExcludeCuisine)
	}
	if filters.Diet != "" {
		params.Set("diet", filters.Diet)
	}
	if filters.Intolerances != "" {
		params.Set("intolerances", filters.Intolerances)
	}

	return c.get(ctx, "/recipes/complexSearch", params)
}

// Summary fetches the short HTML summary for a recipe.
func (c *Client) Summary(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/recipes/%d/summary", recipeID), url.Values{})
}

// Instructions fetches the analyzed step-by-step instructions for a recipe.
func (c *Client) Instructions(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/recipes/%d/analyzedInstructions", recipeID), url.Values{})
}

// Ingredients fetches the ingredient widget payload for a recipe.
func (c *Client) Ingredients(ctx context.Context, recipeID int64) (json.RawMessage, error) {
	return c.get(ctx, fmt.Sprintf("/recipes/%d/ingredientWidget.json", recipeID), url.Values{})
}

// InformationBulk fetches full information for a set of recipe IDs. The
// upstream returns a bare array; callers typically wrap it under "results"
// to match the search response shape.
func (c *Client) InformationBulk(ctx context.Context, ids []int64) (json.RawMessage, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.FormatInt(id, 10)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(strIDs, ","))

	return c.get(ctx, "/recipes/informationBulk", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipes: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("recipe API request failed",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("failed to fetch recipes: status %d", resp.StatusCode)
	}

	return json.RawMessage(body), nil
}
