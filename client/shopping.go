package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/service"
)

const shoppingPath = "/api/v1/shopping-lists"

// ListShoppingLists returns the user's lists with items. Cached.
func (c *Client) ListShoppingLists(ctx context.Context) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := c.query(ctx, shoppingPath, &lists)
	return lists, err
}

// GetShoppingList returns one list with items. Cached.
func (c *Client) GetShoppingList(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	if err := c.query(ctx, shoppingPath+"/"+id.String(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateShoppingList creates a list, optionally seeded with items.
func (c *Client) CreateShoppingList(ctx context.Context, input *service.ShoppingListInput) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := c.mutate(ctx, http.MethodPost, shoppingPath, input, &list, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// GenerateShoppingList builds a list from a recipe's ingredients.
func (c *Client) GenerateShoppingList(ctx context.Context, recipeID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := c.mutate(ctx, http.MethodPost, shoppingPath+"/from-recipe/"+recipeID.String(), nil, &list, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateShoppingList renames a list.
func (c *Client) UpdateShoppingList(ctx context.Context, id uuid.UUID, patch *service.ShoppingListUpdate) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := c.mutate(ctx, http.MethodPatch, shoppingPath+"/"+id.String(), patch, &list, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// CompleteShoppingList marks a whole list completed.
func (c *Client) CompleteShoppingList(ctx context.Context, id uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := c.mutate(ctx, http.MethodPatch, shoppingPath+"/"+id.String()+"/complete", nil, &list, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteShoppingList removes a list and its items.
func (c *Client) DeleteShoppingList(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, shoppingPath+"/"+id.String(), nil, nil, shoppingPath)
}

// AddShoppingItem appends an item to a list.
func (c *Client) AddShoppingItem(ctx context.Context, listID uuid.UUID, input *service.ShoppingItemInput) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := c.mutate(ctx, http.MethodPost, shoppingPath+"/"+listID.String()+"/items", input, &item, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateShoppingItem patches an item.
func (c *Client) UpdateShoppingItem(ctx context.Context, listID, itemID uuid.UUID, patch *service.ShoppingItemUpdate) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := c.mutate(ctx, http.MethodPatch, shoppingPath+"/"+listID.String()+"/items/"+itemID.String(), patch, &item, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ToggleShoppingItem flips an item's completion flag.
func (c *Client) ToggleShoppingItem(ctx context.Context, listID, itemID uuid.UUID) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := c.mutate(ctx, http.MethodPatch, shoppingPath+"/"+listID.String()+"/items/"+itemID.String()+"/toggle", nil, &item, shoppingPath)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveShoppingItem deletes an item from a list.
func (c *Client) RemoveShoppingItem(ctx context.Context, listID, itemID uuid.UUID) error {
	return c.mutate(ctx, http.MethodDelete, shoppingPath+"/"+listID.String()+"/items/"+itemID.String(), nil, nil, shoppingPath)
}
