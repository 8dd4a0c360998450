package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
)

// ShoppingItemInput is the payload for adding an item to a list.
type ShoppingItemInput struct {
	Name     string     `json:"name"`
	Quantity float64    `json:"quantity"`
	Unit     string     `json:"unit"`
	RecipeID *uuid.UUID `json:"recipe_id"`
}

// ShoppingItemUpdate is a partial item update; nil pointers leave fields unchanged.
type ShoppingItemUpdate struct {
	Name        *string  `json:"name"`
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	IsCompleted *bool    `json:"is_completed"`
}

// ShoppingListInput creates a list, optionally seeded with items.
type ShoppingListInput struct {
	Name  string              `json:"name"`
	Items []ShoppingItemInput `json:"items"`
}

// ShoppingListUpdate renames a list.
type ShoppingListUpdate struct {
	Name *string `json:"name"`
}

// ShoppingService handles shopping lists and their items.
type ShoppingService struct {
	db *gorm.DB
}

func NewShoppingService(db *gorm.DB) *ShoppingService {
	return &ShoppingService{db: db}
}

// Create persists a list and, when items are given, its initial items.
func (s *ShoppingService) Create(ctx context.Context, input *ShoppingListInput, userID uuid.UUID) (*models.ShoppingList, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, validationError("name is required")
	}

	list := models.ShoppingList{
		Name:   input.Name,
		UserID: userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&list).Error; err != nil {
			return err
		}
		return insertItems(tx, list.ID, input.Items)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, list.ID, userID)
}

func insertItems(tx *gorm.DB, listID uuid.UUID, inputs []ShoppingItemInput) error {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.ShoppingListItem, len(inputs))
	for i, in := range inputs {
		rows[i] = models.ShoppingListItem{
			Name:           in.Name,
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			RecipeID:       in.RecipeID,
			ShoppingListID: listID,
		}
	}
	return tx.Create(&rows).Error
}

// List returns the user's shopping lists with items, newest first.
func (s *ShoppingService) List(ctx context.Context, userID uuid.UUID) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// Get returns one list with items, scoped to the owner.
func (s *ShoppingService) Get(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// Update renames an owned list.
func (s *ShoppingService) Update(ctx context.Context, id uuid.UUID, patch *ShoppingListUpdate, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationError("name is required")
		}
		list.Name = *patch.Name
	}
	if err := s.db.WithContext(ctx).Omit("Items").Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes an owned list; its items go via the foreign-key cascade.
func (s *ShoppingService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	list, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.ShoppingList{}, "id = ?", list.ID).Error
}

// AddItem appends one item to an owned list.
func (s *ShoppingService) AddItem(ctx context.Context, listID uuid.UUID, input *ShoppingItemInput, userID uuid.UUID) (*models.ShoppingListItem, error) {
	if _, err := s.Get(ctx, listID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, validationError("name is required")
	}

	item := models.ShoppingListItem{
		Name:           input.Name,
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		RecipeID:       input.RecipeID,
		ShoppingListID: listID,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ShoppingService) getItem(ctx context.Context, listID, itemID, userID uuid.UUID) (*models.ShoppingListItem, error) {
	if _, err := s.Get(ctx, listID, userID); err != nil {
		return nil, err
	}
	var item models.ShoppingListItem
	err := s.db.WithContext(ctx).
		Where("id = ? AND shopping_list_id = ?", itemID, listID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateItem merges the patch onto an item of an owned list.
func (s *ShoppingService) UpdateItem(ctx context.Context, listID, itemID uuid.UUID, patch *ShoppingItemUpdate, userID uuid.UUID) (*models.ShoppingListItem, error) {
	item, err := s.getItem(ctx, listID, itemID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationError("name is required")
		}
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.IsCompleted != nil {
		item.IsCompleted = *patch.IsCompleted
	}

	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes an item of an owned list.
func (s *ShoppingService) RemoveItem(ctx context.Context, listID, itemID, userID uuid.UUID) error {
	item, err := s.getItem(ctx, listID, itemID, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

// ToggleItem flips an item's completion flag. This is a read-modify-write,
// so concurrent toggles of the same item can race (last write wins).
func (s *ShoppingService) ToggleItem(ctx context.Context, listID, itemID, userID uuid.UUID) (*models.ShoppingListItem, error) {
	item, err := s.getItem(ctx, listID, itemID, userID)
	if err != nil {
		return nil, err
	}
	item.IsCompleted = !item.IsCompleted
	if err := s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// MarkAsCompleted completes a whole list and stamps the completion time.
func (s *ShoppingService) MarkAsCompleted(ctx context.Context, id, userID uuid.UUID) (*models.ShoppingList, error) {
	list, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	list.IsCompleted = true
	list.CompletedAt = &now
	if err := s.db.WithContext(ctx).Omit("Items").Save(list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// GenerateFromRecipe copies a recipe's ingredients into a new shopping
// list, carrying name, quantity and unit and recording the recipe as the
// items' provenance. List and items are inserted in one transaction.
func (s *ShoppingService) GenerateFromRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*models.ShoppingList, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	list := models.ShoppingList{
		Name:   "Shopping List for " + recipe.Title,
		UserID: userID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&list).Error; err != nil {
			return err
		}
		if len(recipe.Ingredients) == 0 {
			return nil
		}
		items := make([]models.ShoppingListItem, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			recipeRef := recipe.ID
			items[i] = models.ShoppingListItem{
				Name:           ing.Name,
				Quantity:       ing.Quantity,
				Unit:           ing.Unit,
				RecipeID:       &recipeRef,
				ShoppingListID: list.ID,
			}
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, list.ID, userID)
}
