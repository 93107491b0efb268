package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// pageViewRetention bounds how long daily counters are kept.
const pageViewRetention = 90 * 24 * time.Hour

// AnalyticsRedisRepository keeps daily page view counters per tenant, with a
// per-path breakdown hash next to the total.
type AnalyticsRedisRepository struct {
	r         redis.Cmdable
	keyPrefix string
}

func NewAnalyticsRedisRepository(r redis.Cmdable, keyPrefix string) *AnalyticsRedisRepository {
	if keyPrefix == "" {
		keyPrefix = "analytics"
	}
	return &AnalyticsRedisRepository{r: r, keyPrefix: keyPrefix}
}

func (repo *AnalyticsRedisRepository) totalKey(accountID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("%s:pageviews:%s:%s", repo.keyPrefix, accountID, day.UTC().Format("2006-01-02"))
}

func (repo *AnalyticsRedisRepository) pathsKey(accountID uuid.UUID, day time.Time) string {
	return repo.totalKey(accountID, day) + ":paths"
}

func (repo *AnalyticsRedisRepository) IncrementPageView(ctx context.Context, accountID uuid.UUID, path string, at time.Time) error {
	if path == "" {
		path = "/"
	}
	total, paths := repo.totalKey(accountID, at), repo.pathsKey(accountID, at)

	pipe := repo.r.TxPipeline()
	pipe.Incr(ctx, total)
	pipe.HIncrBy(ctx, paths, path, 1)
	pipe.Expire(ctx, total, pageViewRetention)
	pipe.Expire(ctx, paths, pageViewRetention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record page view: %w", err)
	}
	return nil
}

func (repo *AnalyticsRedisRepository) PageViews(ctx context.Context, accountID uuid.UUID, day time.Time) (int64, error) {
	n, err := repo.r.Get(ctx, repo.totalKey(accountID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read page views: %w", err)
	}
	return n, nil
}

// PathViews returns the per-path breakdown for one day.
func (repo *AnalyticsRedisRepository) PathViews(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int64, error) {
	raw, err := repo.r.HGetAll(ctx, repo.pathsKey(accountID, day)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read page view paths: %w", err)
	}
	out := make(map[string]int64, len(raw))
	for p, v := range raw {
		var n int64
		if _, err := fmt.Sscan(v, &n); err == nil {
			out[p] = n
		}
	}
	return out, nil
}

var _ ports.AnalyticsRepository = (*AnalyticsRedisRepository)(nil)
