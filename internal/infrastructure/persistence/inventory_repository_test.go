package persistence

import (
	"context"
	"testing"

	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStockLedger_RecordPurchase(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewGormStockLedger(db)
	materials := NewGormMaterialRepository(db)
	purchases := NewGormMaterialPurchaseRepository(db)
	ctx := context.Background()
	factoryID := uuid.New()

	material, err := inventory.NewMaterial(factoryID, "Cement", "bags", decimal.NewFromInt(100), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, materials.Save(ctx, material))

	purchase, err := inventory.NewMaterialPurchase(factoryID, date("2024-06-03"), material.ID,
		decimal.NewFromInt(50), decimal.NewFromInt(16), decimal.Zero)
	require.NoError(t, err)

	updated, err := ledger.RecordPurchase(ctx, purchase)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.CurrentStockQty.Equal(decimal.NewFromInt(150)))
	assert.True(t, updated.AverageCostPerUnit.Equal(decimal.NewFromInt(12)))

	stored, err := materials.FindByID(ctx, material.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentStockQty.Equal(decimal.NewFromInt(150)))
	assert.True(t, stored.AverageCostPerUnit.Equal(decimal.NewFromInt(12)))

	list, err := purchases.FindByFactory(ctx, factoryID, shared.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGormStockLedger_RecordUsage(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewGormStockLedger(db)
	materials := NewGormMaterialRepository(db)
	ctx := context.Background()
	factoryID := uuid.New()

	material, err := inventory.NewMaterial(factoryID, "Sand", "tons", decimal.NewFromInt(10), decimal.NewFromInt(800))
	require.NoError(t, err)
	require.NoError(t, materials.Save(ctx, material))

	t.Run("draws stock down", func(t *testing.T) {
		usage, err := inventory.NewMaterialUsage(factoryID, date("2024-06-03"), material.ID, decimal.NewFromInt(4), "batch 1")
		require.NoError(t, err)
		updated, err := ledger.RecordUsage(ctx, usage)
		require.NoError(t, err)
		assert.True(t, updated.CurrentStockQty.Equal(decimal.NewFromInt(6)))
		assert.True(t, updated.AverageCostPerUnit.Equal(decimal.NewFromInt(800)))
	})

	t.Run("never goes below zero", func(t *testing.T) {
		usage, err := inventory.NewMaterialUsage(factoryID, date("2024-06-04"), material.ID, decimal.NewFromInt(50), "")
		require.NoError(t, err)
		updated, err := ledger.RecordUsage(ctx, usage)
		require.NoError(t, err)
		assert.True(t, updated.CurrentStockQty.IsZero())
	})

	t.Run("unknown material still records the movement", func(t *testing.T) {
		usage, err := inventory.NewMaterialUsage(factoryID, date("2024-06-05"), uuid.New(), decimal.NewFromInt(1), "")
		require.NoError(t, err)
		updated, err := ledger.RecordUsage(ctx, usage)
		require.NoError(t, err)
		assert.Nil(t, updated)

		list, err := NewGormMaterialUsageRepository(db).FindByFactory(ctx, factoryID, shared.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})
}
