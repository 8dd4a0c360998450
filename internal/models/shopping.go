package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShoppingList struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Items []ShoppingListItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type ShoppingListItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Quantity    float64   `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit        string    `gorm:"size:50;not null" json:"unit"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	// RecipeID records provenance when the item was generated from a recipe.
	RecipeID       *uuid.UUID `gorm:"type:uuid" json:"recipe_id,omitempty"`
	ShoppingListID uuid.UUID  `gorm:"type:uuid;not null;index" json:"shopping_list_id"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
