package ports

import (
	"context"
	"time"
)

// Cache is the key-value contract behind the tenant directory cache.
// Errors must never reach request handling: callers fall back to the directory.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}

// HealthChecker is one dependency probe reported by /health.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
