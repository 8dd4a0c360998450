package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-backend/internal/models"
	"github.com/forkful/forkful-backend/internal/testhelpers"
)

func TestShoppingCreateWithItems(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{
		Name: "Weekly groceries",
		Items: []ShoppingItemInput{
			{Name: "Milk", Quantity: 2, Unit: "l"},
			{Name: "Bread", Quantity: 1, Unit: "loaf"},
		},
	}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly groceries", list.Name)
	assert.False(t, list.IsCompleted)
	assert.Nil(t, list.CompletedAt)
	require.Len(t, list.Items, 2)
}

func TestShoppingCreateRequiresName(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	_, err := svc.Create(context.Background(), &ShoppingListInput{Name: " "}, user.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShoppingGetOwnerMismatch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{Name: "Mine"}, owner.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), list.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShoppingDeleteCascadesItems(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{
		Name:  "Doomed",
		Items: []ShoppingItemInput{{Name: "Milk", Quantity: 1}},
	}, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), list.ID, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.ShoppingListItem{}).Where("shopping_list_id = ?", list.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestShoppingAddAndRemoveItem(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{Name: "Groceries"}, user.ID)
	require.NoError(t, err)

	item, err := svc.AddItem(context.Background(), list.ID, &ShoppingItemInput{Name: "Eggs", Quantity: 12, Unit: "pcs"}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eggs", item.Name)
	assert.False(t, item.IsCompleted)

	require.NoError(t, svc.RemoveItem(context.Background(), list.ID, item.ID, user.ID))

	got, err := svc.Get(context.Background(), list.ID, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestShoppingAddItemRequiresName(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{Name: "Groceries"}, user.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), list.ID, &ShoppingItemInput{Name: ""}, user.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestShoppingToggleItemTwiceRestoresState(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{
		Name:  "Groceries",
		Items: []ShoppingItemInput{{Name: "Milk", Quantity: 1}},
	}, user.ID)
	require.NoError(t, err)
	itemID := list.Items[0].ID

	toggled, err := svc.ToggleItem(context.Background(), list.ID, itemID, user.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	toggled, err = svc.ToggleItem(context.Background(), list.ID, itemID, user.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsCompleted)
}

func TestShoppingItemScopedToList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	first, err := svc.Create(context.Background(), &ShoppingListInput{
		Name:  "First",
		Items: []ShoppingItemInput{{Name: "Milk", Quantity: 1}},
	}, user.ID)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), &ShoppingListInput{Name: "Second"}, user.ID)
	require.NoError(t, err)

	// An item id from the first list must not resolve under the second.
	_, err = svc.ToggleItem(context.Background(), second.ID, first.Items[0].ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShoppingMarkAsCompleted(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	svc := NewShoppingService(db)

	list, err := svc.Create(context.Background(), &ShoppingListInput{Name: "Groceries"}, user.ID)
	require.NoError(t, err)

	completed, err := svc.MarkAsCompleted(context.Background(), list.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted)
	require.NotNil(t, completed.CompletedAt)
}

func TestShoppingGenerateFromRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, "Carbonara", "spaghetti", "eggs", "guanciale")
	svc := NewShoppingService(db)

	list, err := svc.GenerateFromRecipe(context.Background(), recipe.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping List for Carbonara", list.Name)
	require.Len(t, list.Items, 3)

	for _, item := range list.Items {
		require.NotNil(t, item.RecipeID)
		assert.Equal(t, recipe.ID, *item.RecipeID)
	}
}

func TestShoppingGenerateFromUnknownRecipe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "shopper@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	svc := NewShoppingService(db)

	_, err := svc.GenerateFromRecipe(context.Background(), other.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
