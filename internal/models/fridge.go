package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FridgeIngredient tracks one item in a user's fridge. IsExpired lags
// ExpiryDate: it is only set by an explicit mark-expired call, never by a
// background job.
type FridgeIngredient struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Quantity   float64    `gorm:"type:decimal(10,2)" json:"quantity,omitempty"`
	Unit       string     `gorm:"size:50" json:"unit,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	IsExpired  bool       `gorm:"not null;default:false" json:"is_expired"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (f *FridgeIngredient) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
