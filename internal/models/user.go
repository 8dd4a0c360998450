package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Email              string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string      `gorm:"not null" json:"-"`
	Name               string      `gorm:"not null" json:"name"`
	Avatar             string      `gorm:"size:255" json:"avatar,omitempty"`
	Role               string      `gorm:"size:20;not null;default:'user'" json:"role"`
	RecipesCount       int         `gorm:"not null;default:0" json:"recipes_count"`
	FavoritesCount     int         `gorm:"not null;default:0" json:"favorites_count"`
	ShoppingListsCount int         `gorm:"not null;default:0" json:"shopping_lists_count"`
	DaysStreak         int         `gorm:"not null;default:0" json:"days_streak"`
	Preferences        Preferences `gorm:"type:jsonb" json:"preferences"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	Recipes           []Recipe           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FridgeIngredients []FridgeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ShoppingLists     []ShoppingList     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
