package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/testhelpers"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func validRecipeInput() *RecipeInput {
	return &RecipeInput{
		Title:       "Tomato Soup",
		Description: "A simple soup",
		CookingTime: 25,
		Difficulty:  models.DifficultyEasy,
		Servings:    2,
		Cuisine:     "italian",
		Ingredients: []IngredientInput{
			{Name: "tomato", Quantity: 4, Unit: "pcs"},
			{Name: "onion", Quantity: 1, Unit: "pcs"},
		},
		Steps: []StepInput{
			{Description: "Chop the vegetables"},
			{Description: "Simmer for 20 minutes", Time: 20},
		},
	}
}

func TestRecipeCreateReturnsOrderedChildren(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	input := validRecipeInput()
	// Explicit out-of-order positions must come back sorted ascending.
	input.Ingredients = []IngredientInput{
		{Name: "garlic", Quantity: 2, Unit: "cloves", Order: intPtr(1)},
		{Name: "tomato", Quantity: 4, Unit: "pcs", Order: intPtr(0)},
	}

	created, err := svc.Create(context.Background(), input, user.ID)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)

	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "tomato", got.Ingredients[0].Name)
	assert.Equal(t, "garlic", got.Ingredients[1].Name)

	require.Len(t, got.Steps, 2)
	assert.Equal(t, "Chop the vegetables", got.Steps[0].Description)
	assert.Equal(t, 0, got.Steps[0].Position)
	assert.Equal(t, 1, got.Steps[1].Position)
}

func TestRecipeCreateDefaultsOrderToIndex(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	created, err := svc.Create(context.Background(), validRecipeInput(), user.ID)
	require.NoError(t, err)

	require.Len(t, created.Ingredients, 2)
	assert.Equal(t, 0, created.Ingredients[0].Position)
	assert.Equal(t, 1, created.Ingredients[1].Position)
}

func TestRecipeCreateValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	cases := []struct {
		name   string
		mutate func(*RecipeInput)
	}{
		{"missing title", func(in *RecipeInput) { in.Title = "" }},
		{"zero cooking time", func(in *RecipeInput) { in.CookingTime = 0 }},
		{"bad difficulty", func(in *RecipeInput) { in.Difficulty = "impossible" }},
		{"zero servings", func(in *RecipeInput) { in.Servings = 0 }},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }},
		{"no steps", func(in *RecipeInput) { in.Steps = nil }},
		{"negative quantity", func(in *RecipeInput) { in.Ingredients[0].Quantity = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRecipeInput()
			tc.mutate(input)

			_, err := svc.Create(context.Background(), input, user.ID)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// Rejected inputs must leave nothing behind.
	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecipeCreateWithTags(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")
	tag := testhelpers.CreateTestTag(t, db, "comfort food", models.TagTypeMood)

	input := validRecipeInput()
	input.TagIDs = append(input.TagIDs, tag.ID)

	created, err := svc.Create(context.Background(), input, user.ID)
	require.NoError(t, err)

	require.Len(t, created.Tags, 1)
	assert.Equal(t, "comfort food", created.Tags[0].Name)
}

func TestRecipeCreateSkipsUnknownTagIDs(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")
	tag := testhelpers.CreateTestTag(t, db, "summer", models.TagTypeSeason)

	input := validRecipeInput()
	input.TagIDs = []uuid.UUID{tag.ID, uuid.New()}

	created, err := svc.Create(context.Background(), input, user.ID)
	require.NoError(t, err)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, tag.ID, created.Tags[0].ID)
}

func TestRecipeUpdateReplacesIngredients(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	created, err := svc.Create(context.Background(), validRecipeInput(), user.ID)
	require.NoError(t, err)

	patch := &RecipeUpdate{
		Ingredients: []IngredientInput{
			{Name: "basil", Quantity: 1, Unit: "bunch"},
		},
	}
	updated, err := svc.Update(context.Background(), created.ID, patch, user.ID)
	require.NoError(t, err)

	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "basil", updated.Ingredients[0].Name)

	// None of the old rows may survive a replace.
	var count int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Steps were not part of the patch and stay untouched.
	assert.Len(t, updated.Steps, 2)
}

func TestRecipeUpdateMergesScalars(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	created, err := svc.Create(context.Background(), validRecipeInput(), user.ID)
	require.NoError(t, err)

	patch := &RecipeUpdate{
		Title:       strPtr("Roasted Tomato Soup"),
		CookingTime: intPtr(40),
	}
	updated, err := svc.Update(context.Background(), created.ID, patch, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Roasted Tomato Soup", updated.Title)
	assert.Equal(t, 40, updated.CookingTime)
	// Untouched scalars keep their value.
	assert.Equal(t, "A simple soup", updated.Description)
}

func TestRecipeUpdateOwnerMismatch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	intruder := testhelpers.CreateTestUser(t, db, "intruder@example.com")

	created, err := svc.Create(context.Background(), validRecipeInput(), owner.ID)
	require.NoError(t, err)

	patch := &RecipeUpdate{Title: strPtr("Hijacked")}
	_, err = svc.Update(context.Background(), created.ID, patch, intruder.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", got.Title)
}

func TestRecipeDeleteCascades(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")
	tag := testhelpers.CreateTestTag(t, db, "quick", models.TagTypeTaste)

	input := validRecipeInput()
	input.TagIDs = []uuid.UUID{tag.ID}
	created, err := svc.Create(context.Background(), input, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, user.ID))

	var ingredients, steps, tags int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&ingredients).Error)
	require.NoError(t, db.Model(&models.RecipeStep{}).Where("recipe_id = ?", created.ID).Count(&steps).Error)
	require.NoError(t, db.Model(&models.RecipeTag{}).Count(&tags).Error)

	assert.Zero(t, ingredients)
	assert.Zero(t, steps)
	// The shared tag row survives, only the association is removed.
	assert.EqualValues(t, 1, tags)
}

func TestRecipeDeleteOwnerMismatch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	intruder := testhelpers.CreateTestUser(t, db, "intruder@example.com")

	created, err := svc.Create(context.Background(), validRecipeInput(), owner.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, intruder.ID), ErrNotFound)

	_, err = svc.Get(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestRecipeListFilters(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	easy := validRecipeInput()
	easy.Title = "Quick Salad"
	easy.CookingTime = 10

	hard := validRecipeInput()
	hard.Title = "Beef Wellington"
	hard.Difficulty = models.DifficultyHard
	hard.CookingTime = 120

	slowEasy := validRecipeInput()
	slowEasy.Title = "Slow Stew"
	slowEasy.CookingTime = 90

	for _, input := range []*RecipeInput{easy, hard, slowEasy} {
		_, err := svc.Create(context.Background(), input, user.ID)
		require.NoError(t, err)
	}

	recipes, err := svc.List(context.Background(), nil, RecipeFilters{
		Difficulty:  models.DifficultyEasy,
		CookingTime: 30,
	})
	require.NoError(t, err)

	require.Len(t, recipes, 1)
	assert.Equal(t, "Quick Salad", recipes[0].Title)
}

func TestRecipeListSearch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	soup := validRecipeInput()
	salad := validRecipeInput()
	salad.Title = "Green Salad"
	salad.Description = "Fresh and crunchy"

	for _, input := range []*RecipeInput{soup, salad} {
		_, err := svc.Create(context.Background(), input, user.ID)
		require.NoError(t, err)
	}

	recipes, err := svc.List(context.Background(), nil, RecipeFilters{Search: "TOMATO"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Soup", recipes[0].Title)

	// Search also hits descriptions.
	recipes, err = svc.List(context.Background(), nil, RecipeFilters{Search: "crunchy"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Green Salad", recipes[0].Title)
}

func TestRecipeListScopedToOwner(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	alice := testhelpers.CreateTestUser(t, db, "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db, "bob@example.com")

	_, err := svc.Create(context.Background(), validRecipeInput(), alice.ID)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validRecipeInput(), bob.ID)
	require.NoError(t, err)

	recipes, err := svc.List(context.Background(), &alice.ID, RecipeFilters{})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, alice.ID, recipes[0].UserID)
}

func TestFindByIngredients(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	testhelpers.CreateTestRecipe(t, db, user.ID, "Caprese", "tomato", "basil", "mozzarella")
	testhelpers.CreateTestRecipe(t, db, user.ID, "Bruschetta", "tomato", "bread")
	testhelpers.CreateTestRecipe(t, db, user.ID, "Pesto Pasta", "basil", "pasta")

	// Every term must match some ingredient (AND across terms).
	recipes, err := svc.FindByIngredients(context.Background(), []string{"tomato", "basil"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Caprese", recipes[0].Title)

	recipes, err = svc.FindByIngredients(context.Background(), []string{"tomato"})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestFindByIngredientsSubstring(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	testhelpers.CreateTestRecipe(t, db, user.ID, "Ratatouille", "cherry tomatoes", "eggplant")

	recipes, err := svc.FindByIngredients(context.Background(), []string{"Tomato"})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
}

func TestIncrementViewsAndLikes(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)
	user := testhelpers.CreateTestUser(t, db, "cook@example.com")

	created, err := svc.Create(context.Background(), validRecipeInput(), user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.IncrementViews(context.Background(), created.ID))
	require.NoError(t, svc.IncrementViews(context.Background(), created.ID))
	require.NoError(t, svc.IncrementLikes(context.Background(), created.ID))

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
	assert.Equal(t, 1, got.Likes)
}

func TestIncrementViewsUnknownRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db)

	err := svc.IncrementViews(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
