package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	impl "github.com/foliohost/portfolio-saas/internal/application/services"
	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/repositories"
	tmocks "github.com/foliohost/portfolio-saas/internal/mocks"
)

var testPolicies = map[ratelimit.Category]ratelimit.Policy{
	ratelimit.CategoryVerificationCode: {Limit: 5, Window: 15 * time.Minute},
	ratelimit.CategoryPageView:         {Limit: 60, Window: time.Minute},
}

func TestRateLimiter_LimitFiveSixCalls(t *testing.T) {
	svc := impl.NewRateLimiterService(repositories.NewRateLimitMemoryRepository(), testPolicies, nil)

	var allowed []bool
	var remaining []int
	for i := 0; i < 6; i++ {
		res := svc.Check(context.Background(), "1.2.3.4", ratelimit.CategoryVerificationCode)
		allowed = append(allowed, res.Allowed)
		remaining = append(remaining, res.Remaining)
		assert.Equal(t, 5, res.Limit)
	}
	assert.Equal(t, []bool{true, true, true, true, true, false}, allowed)
	assert.Equal(t, []int{4, 3, 2, 1, 0, 0}, remaining)
}

func TestRateLimiter_CategoriesDoNotShareCounters(t *testing.T) {
	svc := impl.NewRateLimiterService(repositories.NewRateLimitMemoryRepository(), testPolicies, nil)

	for i := 0; i < 6; i++ {
		svc.Check(context.Background(), "1.2.3.4", ratelimit.CategoryVerificationCode)
	}
	res := svc.Check(context.Background(), "1.2.3.4", ratelimit.CategoryPageView)
	assert.True(t, res.Allowed)
	assert.Equal(t, 59, res.Remaining)
}

func TestRateLimiter_FailsClosedOnStoreError(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	store := &tmocks.RateLimitStoreMock{CheckFn: func(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error) {
		return ratelimit.Result{}, errors.New("redis: connection refused")
	}}
	svc := impl.NewRateLimiterService(store, testPolicies, logger)

	res := svc.Check(context.Background(), "1.2.3.4", ratelimit.CategoryPageView)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, 60, res.Limit)
	assert.Contains(t, buf.String(), "fail-closed")
}

func TestRateLimiter_UnknownCategoryIsDenied(t *testing.T) {
	called := false
	store := &tmocks.RateLimitStoreMock{CheckFn: func(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error) {
		called = true
		return ratelimit.Result{Allowed: true}, nil
	}}
	svc := impl.NewRateLimiterService(store, testPolicies, nil)

	res := svc.Check(context.Background(), "1.2.3.4", ratelimit.Category("bogus"))
	assert.False(t, res.Allowed)
	assert.False(t, called)
}

func TestRateLimiter_EmptyIdentifierUsesUnknownBucket(t *testing.T) {
	var seen ratelimit.Key
	store := &tmocks.RateLimitStoreMock{CheckFn: func(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error) {
		seen = key
		return ratelimit.Evaluate(1, policy, time.Now().Add(policy.Window)), nil
	}}
	svc := impl.NewRateLimiterService(store, testPolicies, nil)

	svc.Check(context.Background(), "", ratelimit.CategoryPageView)
	assert.Equal(t, ratelimit.Key{Category: ratelimit.CategoryPageView, Identifier: ratelimit.UnknownIdentity}, seen)
}

func TestRateLimiter_PolicyLookup(t *testing.T) {
	svc := impl.NewRateLimiterService(nil, map[ratelimit.Category]ratelimit.Policy{
		ratelimit.CategoryAIParse: {Limit: 0, Window: time.Hour},
	}, nil)

	_, ok := svc.Policy(ratelimit.CategoryAIParse)
	assert.False(t, ok, "zero limit is not enforceable")
	_, ok = svc.Policy(ratelimit.CategoryPageView)
	assert.False(t, ok)
}

func TestRateLimiter_SweeperStopsOnCancel(t *testing.T) {
	sweeps := make(chan struct{}, 10)
	store := &tmocks.RateLimitStoreMock{SweepFn: func(ctx context.Context) (int, error) {
		select {
		case sweeps <- struct{}{}:
		default:
		}
		return 1, nil
	}}
	svc := impl.NewRateLimiterService(store, testPolicies, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-sweeps:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
