package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/foliohost/portfolio-saas/internal/core/domain/analytics"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

type AnalyticsService struct {
	repo     ports.AnalyticsRepository
	resolver ports.TenantResolver
	now      func() time.Time
}

func NewAnalyticsService(repo ports.AnalyticsRepository, resolver ports.TenantResolver) *AnalyticsService {
	return &AnalyticsService{repo: repo, resolver: resolver, now: time.Now}
}

// RecordPageView counts a view against the tenant behind subdomain.
func (s *AnalyticsService) RecordPageView(ctx context.Context, subdomain, path string) error {
	t := s.resolver.ResolveSubdomain(ctx, subdomain)
	if t == nil {
		return tenant.ErrNotFound
	}
	return s.repo.IncrementPageView(ctx, t.AccountID, path, s.now())
}

// Summary reads the last days of counters for accountID, ending today (UTC).
func (s *AnalyticsService) Summary(ctx context.Context, accountID uuid.UUID, days int) (*analytics.Summary, error) {
	if days < 1 || days > analytics.MaxSummaryDays {
		return nil, analytics.ErrInvalidRange
	}
	today := s.now().UTC()

	summary := &analytics.Summary{Days: make([]analytics.DailyPageViews, 0, days)}
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		total, err := s.repo.PageViews(ctx, accountID, day)
		if err != nil {
			return nil, err
		}
		paths, err := s.repo.PathViews(ctx, accountID, day)
		if err != nil {
			return nil, err
		}
		summary.Days = append(summary.Days, analytics.DailyPageViews{
			Day:   day.Format("2006-01-02"),
			Total: total,
			Paths: paths,
		})
		summary.Total += total
	}
	return summary, nil
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)
