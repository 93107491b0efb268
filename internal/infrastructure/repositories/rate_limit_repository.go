package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// fixedWindowScript increments the counter and starts its window on the first hit.
// Returns {count, pttl}.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RateLimitRedisRepository implements rate limiting counter storage with Redis.
// One atomic script per check makes increments safe across processes; expiry is
// left to key TTLs.
type RateLimitRedisRepository struct {
	r         redis.Cmdable
	keyPrefix string
	now       func() time.Time
}

func NewRateLimitRedisRepository(r redis.Cmdable, keyPrefix string) *RateLimitRedisRepository {
	if keyPrefix == "" {
		keyPrefix = "ratelimit"
	}
	return &RateLimitRedisRepository{r: r, keyPrefix: keyPrefix, now: time.Now}
}

func (repo *RateLimitRedisRepository) key(k ratelimit.Key) string {
	return fmt.Sprintf("%s:%s:%s", repo.keyPrefix, k.Category, k.Identifier)
}

// Check increments the per-(category, identifier) counter for a fixed window.
func (repo *RateLimitRedisRepository) Check(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error) {
	now := repo.now()
	reply, err := fixedWindowScript.Run(ctx, repo.r, []string{repo.key(key)}, policy.Window.Milliseconds()).Slice()
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("failed to increment rate limit window: %w", err)
	}
	if len(reply) != 2 {
		return ratelimit.Result{}, fmt.Errorf("unexpected rate limit script reply: %v", reply)
	}
	count, ok1 := reply[0].(int64)
	ttl, ok2 := reply[1].(int64)
	if !ok1 || !ok2 {
		return ratelimit.Result{}, fmt.Errorf("unexpected rate limit script reply: %v", reply)
	}
	resetAt := now.Add(time.Duration(ttl) * time.Millisecond)
	return ratelimit.Evaluate(int(count), policy, resetAt), nil
}

// Sweep is a no-op: Redis expires windows through key TTLs.
func (repo *RateLimitRedisRepository) Sweep(_ context.Context) (int, error) {
	return 0, nil
}

var _ ports.RateLimitStore = (*RateLimitRedisRepository)(nil)
