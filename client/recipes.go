package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/service"
)

const recipesPath = "/api/v1/recipes"

// RecipeListOptions are the supported listing filters; zero values are omitted.
type RecipeListOptions struct {
	Difficulty  string
	Cuisine     string
	Search      string
	CookingTime int
}

func (o *RecipeListOptions) encode() string {
	if o == nil {
		return ""
	}
	params := url.Values{}
	if o.Difficulty != "" {
		params.Set("difficulty", o.Difficulty)
	}
	if o.Cuisine != "" {
		params.Set("cuisine", o.Cuisine)
	}
	if o.Search != "" {
		params.Set("search", o.Search)
	}
	if o.CookingTime > 0 {
		params.Set("cookingTime", strconv.Itoa(o.CookingTime))
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// ListRecipes returns public recipes matching the filters. Cached.
func (c *Client) ListRecipes(ctx context.Context, opts *RecipeListOptions) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := c.query(ctx, recipesPath+opts.encode(), &recipes)
	return recipes, err
}

// MyRecipes returns the authenticated user's recipes. Cached.
func (c *Client) MyRecipes(ctx context.Context, opts *RecipeListOptions) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := c.query(ctx, recipesPath+"/my-recipes"+opts.encode(), &recipes)
	return recipes, err
}

// GetRecipe returns one recipe with ingredients, steps and tags. Cached.
func (c *Client) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.query(ctx, recipesPath+"/"+id.String(), &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// SearchByIngredients returns recipes containing all named ingredients. Cached.
func (c *Client) SearchByIngredients(ctx context.Context, names []string) ([]models.Recipe, error) {
	var recipes []models.Recipe
	path := recipesPath + "/search-by-ingredients?ingredients=" + url.QueryEscape(strings.Join(names, ","))
	err := c.query(ctx, path, &recipes)
	return recipes, err
}

// Suggestions returns recipes ranked against the user's fridge. Cached.
func (c *Client) Suggestions(ctx context.Context) ([]service.RecipeSuggestion, error) {
	var suggestions []service.RecipeSuggestion
	err := c.query(ctx, recipesPath+"/suggestions", &suggestions)
	return suggestions, err
}

// CreateRecipe creates a recipe and drops all cached recipe queries.
func (c *Client) CreateRecipe(ctx context.Context, input *service.RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe
	err := c.mutate(ctx, http.MethodPost, recipesPath, input, &recipe, recipesPath)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe patches a recipe and drops all cached recipe queries.
func (c *Client) UpdateRecipe(ctx context.Context, id uuid.UUID, patch *service.RecipeUpdate) (*models.Recipe, error) {
	var recipe models.Recipe
	err := c.mutate(ctx, http.MethodPatch, recipesPath+"/"+id.String(), patch, &recipe, recipesPath)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe and drops all cached recipe queries.
func (c *Client) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, recipesPath+"/"+id.String(), nil, nil, recipesPath)
}

// ViewRecipe records a view; the cached detail goes stale until refetched.
func (c *Client) ViewRecipe(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodPost, recipesPath+"/"+id.String()+"/view", nil, nil, recipesPath+"/"+id.String())
}

// LikeRecipe records a like; the cached detail goes stale until refetched.
func (c *Client) LikeRecipe(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodPost, recipesPath+"/"+id.String()+"/like", nil, nil, recipesPath+"/"+id.String())
}
