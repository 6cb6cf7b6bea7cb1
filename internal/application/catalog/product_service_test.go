package catalog

import (
	"context"
	"testing"

	factoryapp "github.com/bricksflow/backend/internal/application/factory"
	"github.com/bricksflow/backend/internal/domain/catalog"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type productFixture struct {
	owner     uuid.UUID
	factoryID uuid.UUID
	factories *testutil.MockFactoryRepository
	products  *testutil.MockScopedRepository[catalog.ProductDefinition]
	svc       *ProductService
}

func newProductFixture() *productFixture {
	f := &productFixture{
		owner:     uuid.New(),
		factoryID: uuid.New(),
		factories: new(testutil.MockFactoryRepository),
		products:  new(testutil.MockScopedRepository[catalog.ProductDefinition]),
	}
	f.factories.ExpectOwnedFactory(f.factoryID, f.owner)
	f.svc = NewProductService(f.products, factoryapp.NewGuard(f.factories), zap.NewNop())
	return f
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	fx := newProductFixture()
	fx.products.On("Save", mock.Anything, mock.AnythingOfType("*catalog.ProductDefinition")).Return(nil)

	perPunch := 6
	resp, err := fx.svc.Create(ctx, fx.owner, CreateProductRequest{
		FactoryID:       fx.factoryID,
		Name:            "Red Brick",
		ItemsPerPunch:   &perPunch,
		SizeDescription: "9x4x3 in",
	})
	require.NoError(t, err)
	assert.Equal(t, "Red Brick", resp.Name)
	assert.Equal(t, "pieces", resp.Unit)
	assert.Equal(t, 6, *resp.ItemsPerPunch)
	assert.Equal(t, fx.factoryID, resp.FactoryID)

	_, err = fx.svc.Create(ctx, uuid.New(), CreateProductRequest{FactoryID: fx.factoryID, Name: "Intruder"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	fx.products.AssertNumberOfCalls(t, "Save", 1)
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()
	fx := newProductFixture()

	product, err := catalog.NewProductDefinition(fx.factoryID, "Fly Ash", nil, "", "")
	require.NoError(t, err)
	fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fx.products.On("Save", mock.Anything, product).Return(nil)

	unit := "blocks"
	resp, err := fx.svc.Update(ctx, fx.owner, product.ID, UpdateProductRequest{Unit: &unit})
	require.NoError(t, err)
	assert.Equal(t, "Fly Ash", resp.Name, "untouched fields are kept")
	assert.Equal(t, "blocks", resp.Unit)

	blank := " "
	_, err = fx.svc.Update(ctx, fx.owner, product.ID, UpdateProductRequest{Name: &blank})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestProductService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	fx := newProductFixture()
	missing := uuid.New()
	fx.products.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)

	_, err := fx.svc.Get(ctx, fx.owner, missing)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "Product not found")

	product, err := catalog.NewProductDefinition(fx.factoryID, "Red", nil, "", "")
	require.NoError(t, err)
	fx.products.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	fx.products.On("Delete", mock.Anything, product.ID).Return(nil)

	require.NoError(t, fx.svc.Delete(ctx, fx.owner, product.ID))
	assert.ErrorIs(t, fx.svc.Delete(ctx, uuid.New(), product.ID), shared.ErrForbidden)
	fx.products.AssertNumberOfCalls(t, "Delete", 1)
}

func TestProductService_ListByFactory(t *testing.T) {
	ctx := context.Background()
	fx := newProductFixture()
	a, _ := catalog.NewProductDefinition(fx.factoryID, "A", nil, "", "")
	b, _ := catalog.NewProductDefinition(fx.factoryID, "B", nil, "", "")
	fx.products.On("FindByFactory", mock.Anything, fx.factoryID, shared.ListFilter{}).
		Return([]catalog.ProductDefinition{*a, *b}, nil)

	list, err := fx.svc.ListByFactory(ctx, fx.owner, fx.factoryID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
}
