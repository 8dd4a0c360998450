package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
)

// ProfileUpdate is a partial profile update; nil pointers leave fields unchanged.
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// PreferencesUpdate merges field-wise onto the stored preferences.
type PreferencesUpdate struct {
	Cuisine             []string `json:"cuisine"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CookingSkill        *string  `json:"cooking_skill"`
	FavoriteIngredients []string `json:"favorite_ingredients"`
}

// UserService handles profile operations.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges the patch onto the user, re-hashing a changed
// password and rejecting an email already held by another account.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, patch *ProfileUpdate) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		var existing models.User
		err := s.db.WithContext(ctx).Where("email = ?", *patch.Email).First(&existing).Error
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *patch.Email
	}

	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			return nil, validationError("password must be at least 6 characters long")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if patch.Name != nil {
		if len(strings.TrimSpace(*patch.Name)) < 2 {
			return nil, validationError("name must be at least 2 characters long")
		}
		user.Name = *patch.Name
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences merges the given preference fields over the stored set.
func (s *UserService) UpdatePreferences(ctx context.Context, id uuid.UUID, patch *PreferencesUpdate) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Cuisine != nil {
		user.Preferences.Cuisine = patch.Cuisine
	}
	if patch.DietaryRestrictions != nil {
		user.Preferences.DietaryRestrictions = patch.DietaryRestrictions
	}
	if patch.CookingSkill != nil {
		user.Preferences.CookingSkill = *patch.CookingSkill
	}
	if patch.FavoriteIngredients != nil {
		user.Preferences.FavoriteIngredients = patch.FavoriteIngredients
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar stores a new avatar path on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, id uuid.UUID, avatar string) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatar
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// RecalculateStats recounts the user's recipes and shopping lists from the
// underlying rows and stores the counters.
func (s *UserService) RecalculateStats(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var recipesCount, listsCount int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", id).Count(&recipesCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.ShoppingList{}).Where("user_id = ?", id).Count(&listsCount).Error; err != nil {
		return nil, err
	}

	user.RecipesCount = int(recipesCount)
	user.ShoppingListsCount = int(listsCount)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
