package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSummary struct {
	Revenue string `json:"revenue"`
	Count   int    `json:"count"`
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a value", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Set(ctx, "dashboard:1", cachedSummary{Revenue: "125000", Count: 3}, time.Minute))

		var got cachedSummary
		found, err := s.Get(ctx, "dashboard:1", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, cachedSummary{Revenue: "125000", Count: 3}, got)
	})

	t.Run("misses unknown keys", func(t *testing.T) {
		s := NewInMemoryStore()
		var got cachedSummary
		found, err := s.Get(ctx, "nope", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		s := NewInMemoryStore()
		now := time.Now()
		s.now = func() time.Time { return now }
		require.NoError(t, s.Set(ctx, "k", cachedSummary{Count: 1}, 30*time.Second))

		s.now = func() time.Time { return now.Add(31 * time.Second) }
		var got cachedSummary
		found, err := s.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, s.Len())
	})

	t.Run("delete removes the key", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Set(ctx, "k", 1, time.Minute))
		require.NoError(t, s.Delete(ctx, "k"))
		assert.Zero(t, s.Len())
	})

	t.Run("zero ttl disables caching", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Set(ctx, "k", 1, 0))
		assert.Zero(t, s.Len())
	})
}
