package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// RateLimitMemoryRepository keeps fixed-window counters in process memory.
// A single mutex serializes every read-modify-write so concurrent checks never
// under-count.
type RateLimitMemoryRepository struct {
	mu      sync.Mutex
	records map[ratelimit.Key]*ratelimit.Record
	now     func() time.Time
}

// MemoryOption customizes a RateLimitMemoryRepository.
type MemoryOption func(*RateLimitMemoryRepository)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(r *RateLimitMemoryRepository) { r.now = now }
}

func NewRateLimitMemoryRepository(opts ...MemoryOption) *RateLimitMemoryRepository {
	r := &RateLimitMemoryRepository{
		records: make(map[ratelimit.Key]*ratelimit.Record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RateLimitMemoryRepository) Check(_ context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[key]
	if !ok || rec.Expired(now) {
		rec = &ratelimit.Record{Count: 0, ResetAt: now.Add(policy.Window)}
		r.records[key] = rec
	}
	rec.Count++

	return ratelimit.Evaluate(rec.Count, policy, rec.ResetAt), nil
}

func (r *RateLimitMemoryRepository) Sweep(_ context.Context) (int, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for k, rec := range r.records {
		if rec.Expired(now) {
			delete(r.records, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of live and not yet swept records.
func (r *RateLimitMemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

var _ ports.RateLimitStore = (*RateLimitMemoryRepository)(nil)
