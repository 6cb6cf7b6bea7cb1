package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveRate(t *testing.T) {
	factoryID := uuid.New()
	inactive, err := NewFactoryRate(factoryID, RateProductionPerPunch, decimal.NewFromInt(20), time.Now(), nil)
	require.NoError(t, err)
	inactive.IsActive = false
	active, err := NewFactoryRate(factoryID, RateProductionPerPunch, decimal.NewFromInt(18), time.Now(), nil)
	require.NoError(t, err)

	rates := []FactoryRate{*inactive, *active}
	assert.True(t, decimal.NewFromInt(18).Equal(ActiveRate(rates, RateProductionPerPunch, DefaultProductionPerPunch)))
	assert.True(t, DefaultLoadingPerBrick.Equal(ActiveRate(rates, RateLoadingPerBrick, DefaultLoadingPerBrick)))
	assert.True(t, DefaultProductionPerPunch.Equal(ActiveRate(nil, RateProductionPerPunch, DefaultProductionPerPunch)))
}

func TestNewFactoryRate_Validation(t *testing.T) {
	_, err := NewFactoryRate(uuid.New(), "", decimal.NewFromInt(1), time.Now(), nil)
	assert.Error(t, err)
	_, err = NewFactoryRate(uuid.New(), "custom", decimal.NewFromInt(-1), time.Now(), nil)
	assert.Error(t, err)
}

func TestOtherExpense_Category(t *testing.T) {
	tests := map[string]string{
		"Transport":       ExpenseTransport,
		"utilities":       ExpenseUtilities,
		"Office Salaries": ExpenseSalaries,
		"salaries":        ExpenseSalaries,
		"REPAIRS":         ExpenseRepairs,
		"tea":             ExpenseMiscellaneous,
	}
	for in, want := range tests {
		e, err := NewOtherExpense(uuid.New(), time.Now(), in, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.Equal(t, want, e.Category(), in)
	}
}
