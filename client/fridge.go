package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/service"
)

const fridgePath = "/api/v1/fridge-ingredients"

// Fridge writes also drop cached suggestions, which depend on the
// fridge contents.
var fridgeInvalidates = []string{fridgePath, recipesPath + "/suggestions"}

// ListFridgeIngredients returns the user's fridge contents. Cached.
func (c *Client) ListFridgeIngredients(ctx context.Context) ([]models.FridgeIngredient, error) {
	var ingredients []models.FridgeIngredient
	err := c.query(ctx, fridgePath, &ingredients)
	return ingredients, err
}

// ExpiredFridgeIngredients returns items past their expiry date that are
// not yet flagged. Cached.
func (c *Client) ExpiredFridgeIngredients(ctx context.Context) ([]models.FridgeIngredient, error) {
	var ingredients []models.FridgeIngredient
	err := c.query(ctx, fridgePath+"/expired", &ingredients)
	return ingredients, err
}

// GetFridgeIngredient returns one fridge item. Cached.
func (c *Client) GetFridgeIngredient(ctx context.Context, id uuid.UUID) (*models.FridgeIngredient, error) {
	var ingredient models.FridgeIngredient
	if err := c.query(ctx, fridgePath+"/"+id.String(), &ingredient); err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// AddFridgeIngredient adds one item to the fridge.
func (c *Client) AddFridgeIngredient(ctx context.Context, input *service.FridgeIngredientInput) (*models.FridgeIngredient, error) {
	var ingredient models.FridgeIngredient
	err := c.mutate(ctx, http.MethodPost, fridgePath, input, &ingredient, fridgeInvalidates...)
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// AddFridgeIngredients bulk-adds fridge items.
func (c *Client) AddFridgeIngredients(ctx context.Context, inputs []service.FridgeIngredientInput) ([]models.FridgeIngredient, error) {
	var ingredients []models.FridgeIngredient
	err := c.mutate(ctx, http.MethodPost, fridgePath+"/multiple", inputs, &ingredients, fridgeInvalidates...)
	return ingredients, err
}

// UpdateFridgeIngredient patches a fridge item.
func (c *Client) UpdateFridgeIngredient(ctx context.Context, id uuid.UUID, patch *service.FridgeIngredientUpdate) (*models.FridgeIngredient, error) {
	var ingredient models.FridgeIngredient
	err := c.mutate(ctx, http.MethodPatch, fridgePath+"/"+id.String(), patch, &ingredient, fridgeInvalidates...)
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// MarkFridgeIngredientExpired flags a fridge item as expired.
func (c *Client) MarkFridgeIngredientExpired(ctx context.Context, id uuid.UUID) (*models.FridgeIngredient, error) {
	var ingredient models.FridgeIngredient
	err := c.mutate(ctx, http.MethodPatch, fridgePath+"/"+id.String()+"/expire", nil, &ingredient, fridgeInvalidates...)
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// DeleteFridgeIngredient removes a fridge item.
func (c *Client) DeleteFridgeIngredient(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, fridgePath+"/"+id.String(), nil, nil, fridgeInvalidates...)
}
