package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/foliohost/portfolio-saas/internal/core/ports"
	infraDB "github.com/foliohost/portfolio-saas/internal/infrastructure/db"
)

type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "tenant_directory" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.Ping(ctx) }

type redisHealthChecker struct {
	name   string
	client redis.Cmdable
}

func (r *redisHealthChecker) Name() string                    { return r.name }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewDBHealthChecker probes the Postgres tenant directory.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewRedisHealthChecker probes a Redis client; name distinguishes the cache from
// the shared rate limit store when both are configured.
func NewRedisHealthChecker(name string, client redis.Cmdable) ports.HealthChecker {
	if name == "" {
		name = "redis"
	}
	return &redisHealthChecker{name: name, client: client}
}
