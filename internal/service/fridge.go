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

// FridgeIngredientInput is the payload for adding or updating a fridge item.
type FridgeIngredientInput struct {
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// FridgeIngredientUpdate is a partial update; nil pointers leave fields unchanged.
type FridgeIngredientUpdate struct {
	Name       *string    `json:"name"`
	Quantity   *float64   `json:"quantity"`
	Unit       *string    `json:"unit"`
	ExpiryDate *time.Time `json:"expiry_date"`
	IsExpired  *bool      `json:"is_expired"`
}

// FridgeService handles a user's fridge inventory.
type FridgeService struct {
	db *gorm.DB
}

func NewFridgeService(db *gorm.DB) *FridgeService {
	return &FridgeService{db: db}
}

func (in *FridgeIngredientInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("name is required")
	}
	if in.Quantity < 0 {
		return validationError("quantity must not be negative")
	}
	return nil
}

// Create adds one ingredient to the user's fridge.
func (s *FridgeService) Create(ctx context.Context, input *FridgeIngredientInput, userID uuid.UUID) (*models.FridgeIngredient, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	ingredient := models.FridgeIngredient{
		Name:       input.Name,
		Quantity:   input.Quantity,
		Unit:       input.Unit,
		ExpiryDate: input.ExpiryDate,
		UserID:     userID,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// AddMultiple bulk-inserts fridge ingredients. Duplicate names are allowed
// to accumulate; there is no merge against existing rows.
func (s *FridgeService) AddMultiple(ctx context.Context, inputs []FridgeIngredientInput, userID uuid.UUID) ([]models.FridgeIngredient, error) {
	if len(inputs) == 0 {
		return nil, validationError("at least one ingredient is required")
	}
	rows := make([]models.FridgeIngredient, len(inputs))
	for i, in := range inputs {
		if err := in.validate(); err != nil {
			return nil, err
		}
		rows[i] = models.FridgeIngredient{
			Name:       in.Name,
			Quantity:   in.Quantity,
			Unit:       in.Unit,
			ExpiryDate: in.ExpiryDate,
			UserID:     userID,
		}
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns the user's fridge contents, newest first.
func (s *FridgeService) List(ctx context.Context, userID uuid.UUID) ([]models.FridgeIngredient, error) {
	var ingredients []models.FridgeIngredient
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Get returns one ingredient scoped to the user.
func (s *FridgeService) Get(ctx context.Context, id, userID uuid.UUID) (*models.FridgeIngredient, error) {
	var ingredient models.FridgeIngredient
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// Update merges the patch onto an owned ingredient.
func (s *FridgeService) Update(ctx context.Context, id uuid.UUID, patch *FridgeIngredientUpdate, userID uuid.UUID) (*models.FridgeIngredient, error) {
	ingredient, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, validationError("name is required")
		}
		ingredient.Name = *patch.Name
	}
	if patch.Quantity != nil {
		if *patch.Quantity < 0 {
			return nil, validationError("quantity must not be negative")
		}
		ingredient.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		ingredient.Unit = *patch.Unit
	}
	if patch.ExpiryDate != nil {
		ingredient.ExpiryDate = patch.ExpiryDate
	}
	if patch.IsExpired != nil {
		ingredient.IsExpired = *patch.IsExpired
	}

	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Delete removes an owned ingredient.
func (s *FridgeService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	ingredient, err := s.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(ingredient).Error
}

// CheckExpired returns ingredients that are logically expired but not yet
// flagged: expiry_date <= now AND is_expired = false. The flag itself only
// changes through MarkAsExpired; there is no background job.
func (s *FridgeService) CheckExpired(ctx context.Context, userID uuid.UUID) ([]models.FridgeIngredient, error) {
	var ingredients []models.FridgeIngredient
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date <= ? AND is_expired = ?", userID, time.Now(), false).
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// MarkAsExpired sets the expired flag on an owned ingredient.
func (s *FridgeService) MarkAsExpired(ctx context.Context, id, userID uuid.UUID) (*models.FridgeIngredient, error) {
	ingredient, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	ingredient.IsExpired = true
	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}
