package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Tag types mirror the dimensions a recipe can be browsed by.
const (
	TagTypeCuisine    = "cuisine"
	TagTypeTaste      = "taste"
	TagTypeDifficulty = "difficulty"
	TagTypeOccasion   = "occasion"
	TagTypeMood       = "mood"
	TagTypeSeason     = "season"
)

type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Image       string           `gorm:"size:255" json:"image,omitempty"`
	CookingTime int              `gorm:"not null" json:"cooking_time"`
	Difficulty  string           `gorm:"size:20;not null" json:"difficulty"`
	Servings    int              `gorm:"not null;default:1" json:"servings"`
	Cuisine     string           `gorm:"size:100" json:"cuisine,omitempty"`
	Occasion    JSONBStringArray `gorm:"type:jsonb" json:"occasion,omitempty"`
	Mood        JSONBStringArray `gorm:"type:jsonb" json:"mood,omitempty"`
	Season      JSONBStringArray `gorm:"type:jsonb" json:"season,omitempty"`
	Views       int              `gorm:"not null;default:0" json:"views"`
	Likes       int              `gorm:"not null;default:0" json:"likes"`
	IsPublic    bool             `gorm:"not null;default:false" json:"is_public"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps       []RecipeStep       `gorm:"constraint:OnDelete:CASCADE" json:"steps"`
	Tags        []RecipeTag        `gorm:"many2many:recipe_recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Quantity float64   `gorm:"type:decimal(10,2);not null" json:"quantity"`
	Unit     string    `gorm:"size:50;not null" json:"unit"`
	Notes    string    `gorm:"type:text" json:"notes,omitempty"`
	// Position defines the display/use sequence; exposed as "order" on the wire.
	Position int       `gorm:"not null" json:"order"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
}

func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Position    int       `gorm:"not null" json:"order"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       string    `gorm:"size:255" json:"image,omitempty"`
	Time        int       `json:"time,omitempty"`
	RecipeID    uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// RecipeTag is shared across recipes through the recipe_recipe_tags join table.
type RecipeTag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Icon        string    `gorm:"size:100" json:"icon,omitempty"`
	UsageCount  int       `gorm:"not null;default:0" json:"usage_count"`
}

func (t *RecipeTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
