package testutil

import (
	"context"
	"time"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/identity"
	"github.com/bricksflow/backend/internal/domain/inventory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockScopedRepository is a mock of shared.FactoryRepository[T]
type MockScopedRepository[T any] struct {
	mock.Mock
}

func (m *MockScopedRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockScopedRepository[T]) FindByFactory(ctx context.Context, factoryID uuid.UUID, filter shared.ListFilter) ([]T, error) {
	args := m.Called(ctx, factoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockScopedRepository[T]) Save(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockScopedRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSaleRepository is a mock of trade.SaleRepository
type MockSaleRepository struct {
	MockScopedRepository[trade.Sale]
}

func (m *MockSaleRepository) ApplyCustomerPayment(ctx context.Context, factoryID uuid.UUID, customerName string, amount decimal.Decimal) (trade.AllocationResult, error) {
	args := m.Called(ctx, factoryID, customerName, amount)
	return args.Get(0).(trade.AllocationResult), args.Error(1)
}

// MockStockLedger is a mock of inventory.StockLedger
type MockStockLedger struct {
	mock.Mock
}

func (m *MockStockLedger) RecordPurchase(ctx context.Context, purchase *inventory.MaterialPurchase) (*inventory.Material, error) {
	args := m.Called(ctx, purchase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Material), args.Error(1)
}

func (m *MockStockLedger) RecordUsage(ctx context.Context, usage *inventory.MaterialUsage) (*inventory.Material, error) {
	args := m.Called(ctx, usage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Material), args.Error(1)
}

// MockFactoryRepository is a mock of factory.Repository
type MockFactoryRepository struct {
	mock.Mock
}

func (m *MockFactoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*factory.Factory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*factory.Factory), args.Error(1)
}

func (m *MockFactoryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*factory.Factory, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*factory.Factory), args.Error(1)
}

func (m *MockFactoryRepository) FindByOwners(ctx context.Context, ownerIDs []uuid.UUID) ([]factory.Factory, error) {
	args := m.Called(ctx, ownerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]factory.Factory), args.Error(1)
}

func (m *MockFactoryRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFactoryRepository) Save(ctx context.Context, f *factory.Factory) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFactoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFactoryRepository) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFactoryRepository) GrantLifetimeToTrials(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// OwnedFactory returns a trial factory owned by ownerID with the given id.
func OwnedFactory(id, ownerID uuid.UUID, now time.Time) *factory.Factory {
	f, err := factory.NewTrialFactory(ownerID, "Test Bricks", "Jaipur", 30, now)
	if err != nil {
		panic(err)
	}
	f.ID = id
	return f
}

// ExpectOwnedFactory stubs FindByID for a factory owned by ownerID.
func (m *MockFactoryRepository) ExpectOwnedFactory(id, ownerID uuid.UUID) *factory.Factory {
	f := OwnedFactory(id, ownerID, time.Now())
	m.On("FindByID", mock.Anything, id).Return(f, nil)
	return f
}
