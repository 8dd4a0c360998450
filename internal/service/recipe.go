package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
)

// IngredientInput is one ingredient row in a create or update request.
// Order is optional; when omitted it defaults to the slice index.
type IngredientInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
	Order    *int    `json:"order"`
}

// StepInput is one preparation step in a create or update request.
type StepInput struct {
	Order       *int   `json:"order"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image"`
	Time        int    `json:"time"`
}

// RecipeInput is the payload for creating a recipe together with its
// ingredients, steps and tag associations.
type RecipeInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	CookingTime int               `json:"cooking_time"`
	Difficulty  string            `json:"difficulty"`
	Servings    int               `json:"servings"`
	Cuisine     string            `json:"cuisine"`
	Occasion    []string          `json:"occasion"`
	Mood        []string          `json:"mood"`
	Season      []string          `json:"season"`
	IsPublic    bool              `json:"is_public"`
	TagIDs      []uuid.UUID       `json:"tag_ids"`
	Ingredients []IngredientInput `json:"ingredients"`
	Steps       []StepInput       `json:"steps"`
}

// RecipeUpdate is a partial update. Nil scalar pointers leave the field
// unchanged. For the child collections the convention is: nil slice =
// leave unchanged, empty non-nil slice = clear (full replace either way,
// never a merge).
type RecipeUpdate struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Image       *string           `json:"image"`
	CookingTime *int              `json:"cooking_time"`
	Difficulty  *string           `json:"difficulty"`
	Servings    *int              `json:"servings"`
	Cuisine     *string           `json:"cuisine"`
	Occasion    []string          `json:"occasion"`
	Mood        []string          `json:"mood"`
	Season      []string          `json:"season"`
	IsPublic    *bool             `json:"is_public"`
	TagIDs      *[]uuid.UUID      `json:"tag_ids"`
	Ingredients []IngredientInput `json:"ingredients"`
	Steps       []StepInput       `json:"steps"`
}

// RecipeFilters are AND-combined listing filters; zero values are ignored.
type RecipeFilters struct {
	Difficulty  string
	CookingTime int
	Cuisine     string
	Search      string
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func validDifficulty(d string) bool {
	switch d {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
		return true
	}
	return false
}

func (in *RecipeInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return validationError("title is required")
	}
	if in.CookingTime < 1 {
		return validationError("cooking_time must be at least 1")
	}
	if !validDifficulty(in.Difficulty) {
		return validationError("difficulty must be one of easy, medium, hard")
	}
	if in.Servings < 1 {
		return validationError("servings must be at least 1")
	}
	if len(in.Ingredients) == 0 {
		return validationError("at least one ingredient is required")
	}
	if len(in.Steps) == 0 {
		return validationError("at least one step is required")
	}
	if err := validateIngredients(in.Ingredients); err != nil {
		return err
	}
	return validateSteps(in.Steps)
}

func validateIngredients(ingredients []IngredientInput) error {
	for _, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return validationError("ingredient name is required")
		}
		if ing.Quantity < 0 {
			return validationError("ingredient quantity must not be negative")
		}
	}
	return nil
}

func validateSteps(steps []StepInput) error {
	for _, step := range steps {
		if strings.TrimSpace(step.Description) == "" {
			return validationError("step description is required")
		}
		if step.Time < 0 {
			return validationError("step time must not be negative")
		}
	}
	return nil
}

// withChildren preloads ingredients and steps in display order plus tags.
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Tags")
}

// Create persists a recipe with its ingredients, steps and tag links in a
// single transaction; any failure rolls everything back.
func (s *RecipeService) Create(ctx context.Context, input *RecipeInput, ownerID uuid.UUID) (*models.Recipe, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		CookingTime: input.CookingTime,
		Difficulty:  input.Difficulty,
		Servings:    input.Servings,
		Cuisine:     input.Cuisine,
		Occasion:    input.Occasion,
		Mood:        input.Mood,
		Season:      input.Season,
		IsPublic:    input.IsPublic,
		UserID:      ownerID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients", "Steps", "Tags").Create(&recipe).Error; err != nil {
			return err
		}
		if err := insertIngredients(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}
		if err := insertSteps(tx, recipe.ID, input.Steps); err != nil {
			return err
		}
		if len(input.TagIDs) > 0 {
			return replaceTags(tx, &recipe, input.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, inputs []IngredientInput) error {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.RecipeIngredient, len(inputs))
	for i, in := range inputs {
		position := i
		if in.Order != nil {
			position = *in.Order
		}
		rows[i] = models.RecipeIngredient{
			Name:     in.Name,
			Quantity: in.Quantity,
			Unit:     in.Unit,
			Notes:    in.Notes,
			Position: position,
			RecipeID: recipeID,
		}
	}
	return tx.Create(&rows).Error
}

func insertSteps(tx *gorm.DB, recipeID uuid.UUID, inputs []StepInput) error {
	if len(inputs) == 0 {
		return nil
	}
	rows := make([]models.RecipeStep, len(inputs))
	for i, in := range inputs {
		position := i
		if in.Order != nil {
			position = *in.Order
		}
		rows[i] = models.RecipeStep{
			Position:    position,
			Description: in.Description,
			Image:       in.Image,
			Time:        in.Time,
			RecipeID:    recipeID,
		}
	}
	return tx.Create(&rows).Error
}

// replaceTags resolves tag ids to existing tags and swaps the association.
// Unknown ids are skipped rather than rejected.
func replaceTags(tx *gorm.DB, recipe *models.Recipe, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return tx.Model(recipe).Association("Tags").Clear()
	}
	var tags []models.RecipeTag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return err
	}
	return tx.Model(recipe).Association("Tags").Replace(tags)
}

// Get returns one recipe with ingredients and steps ordered ascending and
// tags attached.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := withChildren(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// getOwned loads a recipe and reports an owner mismatch as not-found so
// existence is never confirmed to a non-owner.
func (s *RecipeService) getOwned(ctx context.Context, id, ownerID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != ownerID {
		return nil, ErrNotFound
	}
	return recipe, nil
}

// Update applies a partial update. Scalars merge field-by-field; non-nil
// child collections are fully replaced (delete-then-reinsert).
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, patch *RecipeUpdate, ownerID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Difficulty != nil && !validDifficulty(*patch.Difficulty) {
		return nil, validationError("difficulty must be one of easy, medium, hard")
	}
	if patch.CookingTime != nil && *patch.CookingTime < 1 {
		return nil, validationError("cooking_time must be at least 1")
	}
	if patch.Servings != nil && *patch.Servings < 1 {
		return nil, validationError("servings must be at least 1")
	}
	if err := validateIngredients(patch.Ingredients); err != nil {
		return nil, err
	}
	if err := validateSteps(patch.Steps); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := scalarUpdates(patch)
		if len(updates) > 0 {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}

		if patch.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredients(tx, id, patch.Ingredients); err != nil {
				return err
			}
		}

		if patch.Steps != nil {
			if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeStep{}).Error; err != nil {
				return err
			}
			if err := insertSteps(tx, id, patch.Steps); err != nil {
				return err
			}
		}

		if patch.TagIDs != nil {
			return replaceTags(tx, recipe, *patch.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func scalarUpdates(patch *RecipeUpdate) map[string]interface{} {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.CookingTime != nil {
		updates["cooking_time"] = *patch.CookingTime
	}
	if patch.Difficulty != nil {
		updates["difficulty"] = *patch.Difficulty
	}
	if patch.Servings != nil {
		updates["servings"] = *patch.Servings
	}
	if patch.Cuisine != nil {
		updates["cuisine"] = *patch.Cuisine
	}
	if patch.Occasion != nil {
		updates["occasion"] = models.JSONBStringArray(patch.Occasion)
	}
	if patch.Mood != nil {
		updates["mood"] = models.JSONBStringArray(patch.Mood)
	}
	if patch.Season != nil {
		updates["season"] = models.JSONBStringArray(patch.Season)
	}
	if patch.IsPublic != nil {
		updates["is_public"] = *patch.IsPublic
	}
	return updates
}

// Delete removes an owned recipe. Ingredient and step rows go with it via
// the foreign-key cascade; the tag rows survive, only the links are cut.
func (s *RecipeService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	recipe, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// List returns recipes, optionally scoped to one owner, matching the
// AND-combined filters.
func (s *RecipeService) List(ctx context.Context, ownerID *uuid.UUID, filters RecipeFilters) ([]models.Recipe, error) {
	query := withChildren(s.db.WithContext(ctx))

	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.CookingTime > 0 {
		query = query.Where("cooking_time <= ?", filters.CookingTime)
	}
	if filters.Cuisine != "" {
		query = query.Where("cuisine = ?", filters.Cuisine)
	}
	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindByIngredients returns recipes where every query term matches at
// least one ingredient name as a case-insensitive substring. This is a
// coarse heuristic, not a ranked search.
func (s *RecipeService) FindByIngredients(ctx context.Context, names []string) ([]models.Recipe, error) {
	query := withChildren(s.db.WithContext(ctx)).Model(&models.Recipe{})

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		like := "%" + strings.ToLower(name) + "%"
		query = query.Where(
			"EXISTS (SELECT 1 FROM recipe_ingredients WHERE recipe_ingredients.recipe_id = recipes.id AND LOWER(recipe_ingredients.name) LIKE ?)",
			like,
		)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// IncrementViews bumps the view counter in a single atomic update.
func (s *RecipeService) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return s.increment(ctx, id, "views")
}

// IncrementLikes bumps the like counter in a single atomic update.
func (s *RecipeService) IncrementLikes(ctx context.Context, id uuid.UUID) error {
	return s.increment(ctx, id, "likes")
}

func (s *RecipeService) increment(ctx context.Context, id uuid.UUID, column string) error {
	result := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
