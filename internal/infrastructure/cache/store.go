package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value cache for JSON-serializable values
type Store interface {
	// Get decodes the value at key into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
