package cache

import (
	"errors"
	"testing"

	"github.com/bricksflow/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFactory_Build(t *testing.T) {
	unreachable := func(config.RedisConfig) (*redis.Client, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	t.Run("disabled redis uses memory", func(t *testing.T) {
		store, client, err := NewStoreFactory(config.RedisConfig{Enabled: false}).Build()
		require.NoError(t, err)
		assert.Nil(t, client)
		assert.IsType(t, &InMemoryStore{}, store)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		f := NewStoreFactory(config.RedisConfig{Enabled: true, Host: "x", Port: 1})
		f.connect = unreachable
		store, client, err := f.Build()
		require.NoError(t, err)
		assert.Nil(t, client)
		assert.IsType(t, &InMemoryStore{}, store)
	})

	t.Run("fallback can be refused", func(t *testing.T) {
		f := NewStoreFactory(config.RedisConfig{Enabled: true}, WithInMemoryFallback(false))
		f.connect = unreachable
		_, _, err := f.Build()
		assert.Error(t, err)
	})

	t.Run("reachable redis yields a redis store", func(t *testing.T) {
		client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
		defer client.Close()
		f := NewStoreFactory(config.RedisConfig{Enabled: true})
		f.connect = func(config.RedisConfig) (*redis.Client, error) { return client, nil }
		store, got, err := f.Build()
		require.NoError(t, err)
		assert.Same(t, client, got)
		assert.IsType(t, &RedisStore{}, store)
	})
}
