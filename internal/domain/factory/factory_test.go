package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrialFactory(t *testing.T) {
	owner := uuid.New()
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	f, err := NewTrialFactory(owner, "  Sri Ganesh Bricks ", "Nashik", 30, now)
	require.NoError(t, err)

	assert.Equal(t, "Sri Ganesh Bricks", f.Name)
	assert.Equal(t, StatusTrial, f.SubscriptionStatus)
	require.NotNil(t, f.TrialEndsAt)
	assert.Equal(t, now.AddDate(0, 0, 30), *f.TrialEndsAt)
	assert.True(t, f.IsOwnedBy(owner))
	assert.False(t, f.IsOwnedBy(uuid.New()))

	sub := f.Subscription(now)
	assert.Equal(t, 30, sub.DaysRemaining)
	assert.True(t, sub.CanPerformAction)
}

func TestNewTrialFactory_Validation(t *testing.T) {
	now := time.Now()
	_, err := NewTrialFactory(uuid.New(), "", "Pune", 30, now)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewTrialFactory(uuid.New(), "Kiln", " ", 30, now)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = NewTrialFactory(uuid.New(), "Kiln", "Pune", 0, now)
	assert.Error(t, err)
}

func TestFactory_PlanLifecycle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := NewTrialFactory(uuid.New(), "Kiln", "Pune", 30, now)
	require.NoError(t, err)

	f.ActivatePlan(PlanYearly, 365, now)
	assert.Equal(t, StatusActive, f.SubscriptionStatus)
	require.NotNil(t, f.PlanExpiryDate)
	assert.Equal(t, now.AddDate(0, 0, 365), *f.PlanExpiryDate)
	assert.Equal(t, 365, f.Subscription(now).DaysRemaining)

	later := now.AddDate(0, 0, 366)
	assert.False(t, f.Subscription(later).CanPerformAction)

	assert.True(t, f.Subscription(later).IsPlanLapsed)

	f.ActivatePlan(PlanMonthly, 30, later)
	assert.True(t, f.Subscription(later).CanPerformAction)
	assert.Equal(t, 30, f.Subscription(later).DaysRemaining)
}
