package production

import (
	"context"
	"testing"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/production"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productionFixture struct {
	owner     uuid.UUID
	factoryID uuid.UUID
	factories *testutil.MockFactoryRepository
	logs      *testutil.MockScopedRepository[production.ProductionLog]
	products  *testutil.MockScopedRepository[catalog.ProductDefinition]
	svc       *ProductionService
}

func newProductionFixture() *productionFixture {
	f := &productionFixture{
		owner:     uuid.New(),
		factoryID: uuid.New(),
		factories: new(testutil.MockFactoryRepository),
		logs:      new(testutil.MockScopedRepository[production.ProductionLog]),
		products:  new(testutil.MockScopedRepository[catalog.ProductDefinition]),
	}
	f.factories.ExpectOwnedFactory(f.factoryID, f.owner)
	f.svc = NewProductionService(f.logs, f.products, factoryapp.NewGuard(f.factories), nil, zap.NewNop())
	return f
}

func TestProductionService_CreateFillsProductName(t *testing.T) {
	ctx := context.Background()
	fx := newProductionFixture()
	product, err := catalog.NewProductDefinition(fx.factoryID, "Red Brick", nil, "", "")
	require.NoError(t, err)
	fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fx.logs.On("Save", mock.Anything, mock.AnythingOfType("*production.ProductionLog")).Return(nil)

	punches := 120
	resp, err := fx.svc.Create(ctx, fx.owner, CreateLogRequest{
		FactoryID: fx.factoryID,
		Date:      "2024-03-04",
		ProductID: product.ID,
		Quantity:  720,
		Punches:   &punches,
	})
	require.NoError(t, err)
	assert.Equal(t, "Red Brick", resp.ProductName)
	assert.Equal(t, "2024-03-04", resp.Date)
	assert.Equal(t, 720, resp.Quantity)
	assert.Equal(t, 120, *resp.Punches)
}

func TestProductionService_CreateKeepsGivenName(t *testing.T) {
	ctx := context.Background()
	fx := newProductionFixture()
	fx.logs.On("Save", mock.Anything, mock.AnythingOfType("*production.ProductionLog")).Return(nil)

	resp, err := fx.svc.Create(ctx, fx.owner, CreateLogRequest{
		FactoryID:   fx.factoryID,
		Date:        "2024-03-04",
		ProductID:   uuid.New(),
		ProductName: "Fly Ash",
		Quantity:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fly Ash", resp.ProductName)
	fx.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductionService_CreateRejects(t *testing.T) {
	ctx := context.Background()
	fx := newProductionFixture()
	unknown := uuid.New()
	fx.products.On("FindByID", mock.Anything, unknown).Return(nil, shared.ErrNotFound)

	_, err := fx.svc.Create(ctx, fx.owner, CreateLogRequest{FactoryID: fx.factoryID, Date: "2024-03-04", ProductID: unknown})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = fx.svc.Create(ctx, fx.owner, CreateLogRequest{FactoryID: fx.factoryID, Date: "04/03/2024", ProductID: unknown})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = fx.svc.Create(ctx, uuid.New(), CreateLogRequest{FactoryID: fx.factoryID, Date: "2024-03-04"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	fx.logs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductionService_Update(t *testing.T) {
	ctx := context.Background()
	fx := newProductionFixture()
	entry, err := production.NewProductionLog(fx.factoryID, testutil.Date(t, "2024-03-04"), uuid.New(), "Red", 100, nil, "")
	require.NoError(t, err)
	fx.logs.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	fx.logs.On("Save", mock.Anything, entry).Return(nil)

	qty := 250
	resp, err := fx.svc.Update(ctx, fx.owner, entry.ID, UpdateLogRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 250, resp.Quantity)
	assert.Equal(t, "Red", resp.ProductName)

	negative := -1
	_, err = fx.svc.Update(ctx, fx.owner, entry.ID, UpdateLogRequest{Quantity: &negative})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProductionService_ListByFactory(t *testing.T) {
	ctx := context.Background()
	fx := newProductionFixture()
	entry, _ := production.NewProductionLog(fx.factoryID, testutil.Date(t, "2024-03-04"), uuid.New(), "Red", 100, nil, "")
	from := testutil.Date(t, "2024-03-01")
	fx.logs.On("FindByFactory", mock.Anything, fx.factoryID, shared.ListFilter{From: &from}).
		Return([]production.ProductionLog{*entry}, nil)

	list, err := fx.svc.ListByFactory(ctx, fx.owner, fx.factoryID, factoryapp.ListQuery{StartDate: "2024-03-01"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entry.ID, list[0].ID)

	_, err = fx.svc.ListByFactory(ctx, fx.owner, fx.factoryID, factoryapp.ListQuery{StartDate: "2024-03-05", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProductionService_Delete(t *testing.T) {
	ctx := context.Background()
	fx := newProductionFixture()
	missing := uuid.New()
	fx.logs.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	err := fx.svc.Delete(ctx, fx.owner, missing)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "Production log not found")
}
