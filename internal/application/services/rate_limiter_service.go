package services

import (
	"context"
	"time"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// RateLimiterService applies per-category fixed-window policies on top of a store.
// It fails closed: a store error denies the request.
type RateLimiterService struct {
	store    ports.RateLimitStore
	policies map[ratelimit.Category]ratelimit.Policy
	logger   *logrus.Logger
	now      func() time.Time
}

func NewRateLimiterService(store ports.RateLimitStore, policies map[ratelimit.Category]ratelimit.Policy, logger *logrus.Logger) *RateLimiterService {
	p := make(map[ratelimit.Category]ratelimit.Policy, len(policies))
	for category, policy := range policies {
		p[category] = policy
	}
	return &RateLimiterService{store: store, policies: p, logger: logger, now: time.Now}
}

// Policy returns the configured policy for category.
func (s *RateLimiterService) Policy(category ratelimit.Category) (ratelimit.Policy, bool) {
	p, ok := s.policies[category]
	return p, ok && p.Valid()
}

func (s *RateLimiterService) Check(ctx context.Context, identifier string, category ratelimit.Category) ratelimit.Result {
	policy, ok := s.Policy(category)
	if !ok {
		if s.logger != nil {
			s.logger.WithField("category", category).Error("rate limiter: no policy for category; denying")
		}
		return ratelimit.Denied(policy, s.now())
	}
	if identifier == "" {
		identifier = ratelimit.UnknownIdentity
	}

	key := ratelimit.Key{Category: category, Identifier: identifier}
	res, err := s.store.Check(ctx, key, policy)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"category": category, "identifier": identifier}).WithError(err).Error("rate limiter: store check failed; denying (fail-closed)")
		}
		return ratelimit.Denied(policy, s.now())
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"category": category, "identifier": identifier, "count": res.Count, "limit": res.Limit}).Debug("rate limiter window state")
	}
	return res
}

// RunSweeper blocks until ctx is done, sweeping expired records every interval.
func (s *RateLimiterService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *RateLimiterService) sweepOnce(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	removed, err := s.store.Sweep(sweepCtx)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("rate limiter: sweep failed")
		}
		return
	}
	if s.logger != nil && removed > 0 {
		s.logger.WithField("removed", removed).Debug("rate limiter: swept expired records")
	}
}

var _ ports.RateLimiterService = (*RateLimiterService)(nil)
