package factory

import (
	"context"
	"testing"
	"time"

	"github.com/bricksflow/backend/internal/domain/factory"
	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/bricksflow/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestFactoryService(repo *testutil.MockFactoryRepository) *FactoryService {
	s := NewFactoryService(repo, 30, zap.NewNop())
	s.now = testutil.FixedClock(testNow)
	return s
}

func TestFactoryService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("starts a thirty day trial", func(t *testing.T) {
		repo := new(testutil.MockFactoryRepository)
		repo.On("ExistsByOwner", mock.Anything, userID).Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*factory.Factory")).Return(nil)

		resp, err := newTestFactoryService(repo).Create(ctx, userID, CreateFactoryRequest{
			Name:          " Shree Bricks ",
			Location:      "Jaipur",
			OwnerName:     "Ravi",
			ContactNumber: "98290 00000",
		})
		require.NoError(t, err)

		assert.Equal(t, "Shree Bricks", resp.Name)
		assert.Equal(t, userID, resp.OwnerID)
		assert.Equal(t, "trial", resp.SubscriptionStatus)
		require.NotNil(t, resp.TrialEndsAt)
		assert.Equal(t, testNow.AddDate(0, 0, 30), *resp.TrialEndsAt)
		assert.Nil(t, resp.PlanType)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a second factory", func(t *testing.T) {
		repo := new(testutil.MockFactoryRepository)
		repo.On("ExistsByOwner", mock.Anything, userID).Return(true, nil)

		_, err := newTestFactoryService(repo).Create(ctx, userID, CreateFactoryRequest{Name: "B", Location: "L"})
		require.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Equal(t, "User already has a factory", err.(*shared.DomainError).Message)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestFactoryService_ListMine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	repo := new(testutil.MockFactoryRepository)
	repo.On("FindByOwner", mock.Anything, userID).Return(nil, shared.ErrNotFound).Once()
	list, err := newTestFactoryService(repo).ListMine(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, list)

	f := testutil.OwnedFactory(uuid.New(), userID, testNow)
	repo.On("FindByOwner", mock.Anything, userID).Return(f, nil).Once()
	list, err = newTestFactoryService(repo).ListMine(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.ID, list[0].ID)
}

func TestFactoryService_Get_NotOwned(t *testing.T) {
	ctx := context.Background()
	factoryID := uuid.New()

	repo := new(testutil.MockFactoryRepository)
	repo.ExpectOwnedFactory(factoryID, uuid.New())

	_, err := newTestFactoryService(repo).Get(ctx, uuid.New(), factoryID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "Factory not found", err.(*shared.DomainError).Message)
}

func TestFactoryService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	factoryID := uuid.New()

	repo := new(testutil.MockFactoryRepository)
	repo.ExpectOwnedFactory(factoryID, userID)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*factory.Factory")).Return(nil)

	name := "Renamed"
	status := "active"
	plan := "yearly"
	expiry := "2026-06-15"
	resp, err := newTestFactoryService(repo).Update(ctx, userID, factoryID, UpdateFactoryRequest{
		Name:               &name,
		SubscriptionStatus: &status,
		PlanType:           &plan,
		PlanExpiryDate:     &expiry,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, "Jaipur", resp.Location)
	assert.Equal(t, "active", resp.SubscriptionStatus)
	require.NotNil(t, resp.PlanType)
	assert.Equal(t, "yearly", *resp.PlanType)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), *resp.PlanExpiryDate)

	empty := "  "
	_, err = newTestFactoryService(repo).Update(ctx, userID, factoryID, UpdateFactoryRequest{Location: &empty})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestFactoryService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	factoryID := uuid.New()

	repo := new(testutil.MockFactoryRepository)
	repo.ExpectOwnedFactory(factoryID, userID)
	repo.On("Delete", mock.Anything, factoryID).Return(nil)

	require.NoError(t, newTestFactoryService(repo).Delete(ctx, userID, factoryID))
	repo.AssertExpectations(t)
}

func TestFactoryService_CanPerformAction(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	expiredTrial := testutil.OwnedFactory(uuid.New(), userID, testNow.AddDate(0, 0, -31))
	lifetime := testutil.OwnedFactory(uuid.New(), userID, testNow.AddDate(-2, 0, 0))
	lifetimePlan := factory.PlanLifetime
	lifetime.SubscriptionStatus, lifetime.PlanType = factory.StatusLifetime, &lifetimePlan
	lapsed := testutil.OwnedFactory(uuid.New(), userID, testNow.AddDate(-1, 0, 0))
	lapsed.ActivatePlan(factory.PlanMonthly, 30, testNow.AddDate(0, -2, 0))

	tests := []struct {
		name    string
		found   *factory.Factory
		findErr error
		want    bool
	}{
		{"no factory passes", nil, shared.ErrNotFound, true},
		{"fresh trial", testutil.OwnedFactory(uuid.New(), userID, testNow), nil, true},
		{"expired trial", expiredTrial, nil, false},
		{"lapsed plan", lapsed, nil, false},
		{"lifetime", lifetime, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockFactoryRepository)
			if tt.found != nil {
				repo.On("FindByOwner", mock.Anything, userID).Return(tt.found, nil)
			} else {
				repo.On("FindByOwner", mock.Anything, userID).Return(nil, tt.findErr)
			}

			got, err := newTestFactoryService(repo).CanPerformAction(ctx, userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
