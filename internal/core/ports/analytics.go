package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foliohost/portfolio-saas/internal/core/domain/analytics"
)

// AnalyticsRepository keeps per-tenant page view counters.
type AnalyticsRepository interface {
	IncrementPageView(ctx context.Context, accountID uuid.UUID, path string, at time.Time) error
	PageViews(ctx context.Context, accountID uuid.UUID, day time.Time) (int64, error)
	PathViews(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int64, error)
}

// AnalyticsService records public page views and reports them to the owner.
// Unknown subdomains return tenant.ErrNotFound.
type AnalyticsService interface {
	RecordPageView(ctx context.Context, subdomain, path string) error
	Summary(ctx context.Context, accountID uuid.UUID, days int) (*analytics.Summary, error)
}
