package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	collections := `
CREATE TABLE IF NOT EXISTS collections (
  slot TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(collections).Error)

	return db
}

func TestRepositoryLoadMissingSlot(t *testing.T) {
	repo := NewRepository(setupStoreTestDB(t))

	payload, found, err := repo.Load(context.Background(), SlotLands)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, payload)
}

func TestRepositorySaveThenLoad(t *testing.T) {
	repo := NewRepository(setupStoreTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, SlotLands, []byte(`{"version":1,"records":[]}`)))

	payload, found, err := repo.Load(ctx, SlotLands)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"version":1,"records":[]}`, string(payload))
}

func TestRepositorySaveOverwritesWholeSlot(t *testing.T) {
	repo := NewRepository(setupStoreTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, SlotFarmers, []byte(`first`)))
	require.NoError(t, repo.Save(ctx, SlotFarmers, []byte(`second`)))

	payload, found, err := repo.Load(ctx, SlotFarmers)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", string(payload))
}

func TestRepositorySlotsAreIndependent(t *testing.T) {
	repo := NewRepository(setupStoreTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, SlotExpenses, []byte(`expenses`)))
	require.NoError(t, repo.Save(ctx, SlotCropIncomes, []byte(`incomes`)))

	payload, found, err := repo.Load(ctx, SlotExpenses)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "expenses", string(payload))

	payload, found, err = repo.Load(ctx, SlotCropIncomes)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "incomes", string(payload))
}

func TestServiceOverSQLite(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: NewRepository(setupStoreTestDB(t))})
	require.NoError(t, err)
	ctx := context.Background()

	farmer, err := svc.AddFarmer(ctx, AddFarmerInput{Name: "Akbar", CNIC: "35202-1234567-1"})
	require.NoError(t, err)

	land, err := svc.AddLand(ctx, AddLandInput{Name: "North Field", Location: "Okara", Area: 12.5, FarmerID: farmer.ID})
	require.NoError(t, err)

	expense, err := svc.AddExpense(ctx, AddExpenseInput{LandID: land.ID, Category: "seed", Amount: 1000})
	require.NoError(t, err)

	expenses, err := svc.GetExpensesByLand(ctx, land.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, expense.ID, expenses[0].ID)
	assert.True(t, expenses[0].CreatedAt.Equal(expenses[0].UpdatedAt))

	removed, err := svc.DeleteExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.DeleteLand(ctx, land.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	lands, err := svc.GetLands(ctx)
	require.NoError(t, err)
	assert.Empty(t, lands)
}

func TestRepositoryWithTx(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewRepository(db)

	assert.Same(t, repo, repo.WithTx(nil))

	tx := db.Begin()
	require.NoError(t, tx.Error)
	bound := repo.WithTx(tx)
	require.NoError(t, bound.Save(context.Background(), SlotLands, []byte(`tx`)))
	require.NoError(t, tx.Rollback().Error)

	_, found, err := repo.Load(context.Background(), SlotLands)
	require.NoError(t, err)
	assert.False(t, found, "rolled back save should not be visible")
}
