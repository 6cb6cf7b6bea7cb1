package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes a jti", func(t *testing.T) {
		b := NewInMemoryTokenBlacklist()
		require.NoError(t, b.Add(ctx, "jti-1", time.Hour))

		revoked, err := b.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = b.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entries lapse with the token", func(t *testing.T) {
		b := NewInMemoryTokenBlacklist()
		now := time.Now()
		b.now = func() time.Time { return now }
		require.NoError(t, b.Add(ctx, "jti-1", time.Minute))

		b.now = func() time.Time { return now.Add(2 * time.Minute) }
		revoked, err := b.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
		assert.Empty(t, b.entries)
	})

	t.Run("already expired tokens are not stored", func(t *testing.T) {
		b := NewInMemoryTokenBlacklist()
		require.NoError(t, b.Add(ctx, "jti-1", 0))
		assert.Empty(t, b.entries)
	})
}
