package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/forkful-backend/internal/testhelpers"
)

func TestUserUpdateProfile(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")
	svc := NewUserService(db)

	name := "Alice Cooper"
	password := "brand-new-pass"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &ProfileUpdate{
		Name:     &name,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(password)))
}

func TestUserUpdateProfileValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")
	svc := NewUserService(db)

	short := "x"
	_, err := svc.UpdateProfile(context.Background(), user.ID, &ProfileUpdate{Name: &short})
	assert.ErrorIs(t, err, ErrValidation)

	weak := "12345"
	_, err = svc.UpdateProfile(context.Background(), user.ID, &ProfileUpdate{Password: &weak})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserUpdateProfileEmailTaken(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	testhelpers.CreateTestUser(t, db, "bob@example.com")
	svc := NewUserService(db)

	taken := "bob@example.com"
	_, err := svc.UpdateProfile(context.Background(), alice.ID, &ProfileUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserUpdatePreferencesMerges(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")
	svc := NewUserService(db)

	_, err := svc.UpdatePreferences(context.Background(), user.ID, &PreferencesUpdate{
		Cuisine:             []string{"italian", "thai"},
		DietaryRestrictions: []string{"vegetarian"},
	})
	require.NoError(t, err)

	// A later patch touching only one field leaves the rest intact.
	skill := "advanced"
	updated, err := svc.UpdatePreferences(context.Background(), user.ID, &PreferencesUpdate{
		CookingSkill: &skill,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"italian", "thai"}, updated.Preferences.Cuisine)
	assert.Equal(t, []string{"vegetarian"}, updated.Preferences.DietaryRestrictions)
	assert.Equal(t, "advanced", updated.Preferences.CookingSkill)
}

func TestUserUpdateAvatar(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")
	svc := NewUserService(db)

	updated, err := svc.UpdateAvatar(context.Background(), user.ID, "/uploads/avatars/abc.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/abc.png", updated.Avatar)
}

func TestUserRecalculateStats(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "alice@example.com")
	testhelpers.CreateTestRecipe(t, db, user.ID, "Soup", "water")
	testhelpers.CreateTestRecipe(t, db, user.ID, "Salad", "lettuce")

	shopping := NewShoppingService(db)
	_, err := shopping.Create(context.Background(), &ShoppingListInput{Name: "Groceries"}, user.ID)
	require.NoError(t, err)

	svc := NewUserService(db)
	updated, err := svc.RecalculateStats(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.RecipesCount)
	assert.Equal(t, 1, updated.ShoppingListsCount)
}
