package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkful/forkful-backend/internal/database"
	"github.com/forkful/forkful-backend/internal/models"
)

// NewTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps the in-memory database alive for the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	return db
}

// CreateTestUser inserts a user with a bcrypt-hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// CreateTestTag inserts a shared recipe tag.
func CreateTestTag(t *testing.T, db *gorm.DB, name, tagType string) *models.RecipeTag {
	t.Helper()

	tag := models.RecipeTag{
		Name: name,
		Type: tagType,
	}
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}

// CreateTestRecipe inserts a minimal recipe with the given ingredient names.
func CreateTestRecipe(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string, ingredientNames ...string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		Title:       title,
		CookingTime: 30,
		Difficulty:  models.DifficultyEasy,
		Servings:    2,
		IsPublic:    true,
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(&recipe).Error)

	for i, name := range ingredientNames {
		ingredient := models.RecipeIngredient{
			Name:     name,
			Quantity: 1,
			Unit:     "pcs",
			Position: i,
			RecipeID: recipe.ID,
		}
		require.NoError(t, db.Create(&ingredient).Error)
	}

	step := models.RecipeStep{
		Position:    0,
		Description: "Cook everything",
		RecipeID:    recipe.ID,
	}
	require.NoError(t, db.Create(&step).Error)

	return &recipe
}
