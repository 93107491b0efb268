package ports

import (
	"context"
	"time"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
)

// RateLimitStore owns the fixed-window counters. Implementations MUST make the
// increment of one key atomic with respect to concurrent callers.
type RateLimitStore interface {
	// Check increments the counter for key, starting a fresh window of the given
	// length when none is live, and returns the post-increment result.
	Check(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error)
	// Sweep deletes expired records and returns how many were removed.
	Sweep(ctx context.Context) (int, error)
}

// RateLimiterService throttles requests per (identifier, category).
// Implementations never fail: errors resolve to a denied result.
type RateLimiterService interface {
	Check(ctx context.Context, identifier string, category ratelimit.Category) ratelimit.Result
	// RunSweeper removes expired records every interval until ctx is done.
	RunSweeper(ctx context.Context, interval time.Duration)
}
