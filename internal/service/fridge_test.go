package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/forkful-backend/internal/testhelpers"
)

func TestFridgeCreateAndGet(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	created, err := svc.Create(context.Background(), &FridgeIngredientInput{
		Name:     "Tomatoes",
		Quantity: 3,
		Unit:     "pcs",
	}, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.Get(context.Background(), created.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", got.Name)
	assert.False(t, got.IsExpired)
}

func TestFridgeCreateValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	_, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "  "}, user.ID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), &FridgeIngredientInput{Name: "Milk", Quantity: -1}, user.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFridgeAddMultipleAccumulatesDuplicates(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	_, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Eggs", Quantity: 6, Unit: "pcs"}, user.ID)
	require.NoError(t, err)

	rows, err := svc.AddMultiple(context.Background(), []FridgeIngredientInput{
		{Name: "Eggs", Quantity: 12, Unit: "pcs"},
		{Name: "Butter", Quantity: 250, Unit: "g"},
	}, user.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Two "Eggs" rows now exist; there is no merge on name.
	all, err := svc.List(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFridgeAddMultipleRejectsEmptyBatch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	_, err := svc.AddMultiple(context.Background(), nil, user.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFridgeListScopedToOwner(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	svc := NewFridgeService(db)

	_, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Cheese", Quantity: 1}, owner.ID)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFridgeGetOwnerMismatch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	owner := testhelpers.CreateTestUser(t, db, "owner@example.com")
	other := testhelpers.CreateTestUser(t, db, "other@example.com")
	svc := NewFridgeService(db)

	created, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Cheese", Quantity: 1}, owner.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), created.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFridgeUpdateMergesFields(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	created, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Milk", Quantity: 1, Unit: "l"}, user.ID)
	require.NoError(t, err)

	qty := 2.0
	updated, err := svc.Update(context.Background(), created.ID, &FridgeIngredientUpdate{Quantity: &qty}, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.Quantity)
	assert.Equal(t, "Milk", updated.Name)
	assert.Equal(t, "l", updated.Unit)
}

func TestFridgeDelete(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	created, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Milk", Quantity: 1}, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, user.ID))

	_, err = svc.Get(context.Background(), created.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFridgeCheckExpired(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	expired, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Yogurt", Quantity: 1, ExpiryDate: &past}, user.ID)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &FridgeIngredientInput{Name: "Juice", Quantity: 1, ExpiryDate: &future}, user.ID)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &FridgeIngredientInput{Name: "Salt", Quantity: 1}, user.ID)
	require.NoError(t, err)

	found, err := svc.CheckExpired(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Yogurt", found[0].Name)

	// Once flagged, the item no longer shows up as newly expired.
	_, err = svc.MarkAsExpired(context.Background(), expired.ID, user.ID)
	require.NoError(t, err)

	found, err = svc.CheckExpired(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFridgeMarkAsExpired(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "fridge@example.com")
	svc := NewFridgeService(db)

	created, err := svc.Create(context.Background(), &FridgeIngredientInput{Name: "Yogurt", Quantity: 1}, user.ID)
	require.NoError(t, err)

	marked, err := svc.MarkAsExpired(context.Background(), created.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, marked.IsExpired)
}
