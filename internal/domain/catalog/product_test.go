package catalog

import (
	"errors"
	"testing"

	"github.com/bricksflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductDefinition(t *testing.T) {
	factoryID := uuid.New()
	per := 4

	p, err := NewProductDefinition(factoryID, " Red Brick 9in ", &per, "9x4x3", "")
	require.NoError(t, err)
	assert.Equal(t, "Red Brick 9in", p.Name)
	assert.Equal(t, DefaultUnit, p.Unit)
	assert.Equal(t, factoryID, p.GetFactoryID())
	require.NotNil(t, p.ItemsPerPunch)
	assert.Equal(t, 4, *p.ItemsPerPunch)

	_, err = NewProductDefinition(factoryID, " ", nil, "", "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	neg := -1
	_, err = NewProductDefinition(factoryID, "Fly ash", &neg, "", "")
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}
