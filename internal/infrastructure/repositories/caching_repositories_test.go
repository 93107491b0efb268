package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	redisinfra "github.com/foliohost/portfolio-saas/internal/infrastructure/redis"
	"github.com/foliohost/portfolio-saas/internal/mocks"
)

func TestCachingTenantRepository_CachesHits(t *testing.T) {
	id := uuid.New()
	inner := &mocks.TenantRepositoryMock{
		GetBySubdomainFn: func(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
			return &tenant.Tenant{AccountID: id, Subdomain: subdomain, Plan: tenant.PlanPro}, nil
		},
	}
	cache := &mocks.CacheMock{}
	repo := NewCachingTenantRepository(inner, cache, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := repo.GetBySubdomain(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, id, got.AccountID)
	}
	assert.Equal(t, 1, inner.CallCount("GetBySubdomain"))
	assert.True(t, cache.Has("tenant:sub:alice"))
}

func TestCachingTenantRepository_MissesAreNotCached(t *testing.T) {
	inner := &mocks.TenantRepositoryMock{}
	cache := &mocks.CacheMock{}
	repo := NewCachingTenantRepository(inner, cache, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := repo.GetBySubdomain(context.Background(), "ghost")
		assert.ErrorIs(t, err, tenant.ErrNotFound)
	}
	assert.Equal(t, 2, inner.CallCount("GetBySubdomain"))
	assert.False(t, cache.Has("tenant:sub:ghost"))
}

func TestCachingTenantRepository_CoalescesConcurrentMisses(t *testing.T) {
	release := make(chan struct{})
	inner := &mocks.TenantRepositoryMock{
		GetByCustomDomainFn: func(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error) {
			<-release
			return &tenant.Tenant{Subdomain: "acme", CustomDomain: hostname, CustomDomainVerified: true}, nil
		},
	}
	repo := NewCachingTenantRepository(inner, nil, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := repo.GetByCustomDomain(context.Background(), "coalesce.io", true)
			assert.NoError(t, err)
			assert.Equal(t, "acme", got.Subdomain)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, inner.CallCount("GetByCustomDomain"))
}

func TestCachingTenantRepository_VerifiedAndPendingKeysAreSeparate(t *testing.T) {
	inner := &mocks.TenantRepositoryMock{
		GetByCustomDomainFn: func(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error) {
			if verifiedOnly {
				return nil, tenant.ErrNotFound
			}
			return &tenant.Tenant{CustomDomain: hostname}, nil
		},
	}
	repo := NewCachingTenantRepository(inner, &mocks.CacheMock{}, time.Minute)

	_, err := repo.GetByCustomDomain(context.Background(), "pending.io", false)
	require.NoError(t, err)
	_, err = repo.GetByCustomDomain(context.Background(), "pending.io", true)
	assert.ErrorIs(t, err, tenant.ErrNotFound)
}

func TestCachingTenantRepository_MarkVerifiedInvalidates(t *testing.T) {
	mr, client := newMiniRedis(t)
	cache := redisinfra.NewRedisCache(client, "cache")
	id := uuid.New()
	verified := false

	inner := &mocks.TenantRepositoryMock{
		GetByAccountIDFn: func(ctx context.Context, accountID uuid.UUID) (*tenant.Tenant, error) {
			return &tenant.Tenant{AccountID: id, Subdomain: "acme", CustomDomain: "acme.io", CustomDomainVerified: verified}, nil
		},
		GetBySubdomainFn: func(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
			return &tenant.Tenant{AccountID: id, Subdomain: "acme", CustomDomain: "acme.io", CustomDomainVerified: verified}, nil
		},
		MarkCustomDomainVerifiedFn: func(ctx context.Context, accountID uuid.UUID) error {
			verified = true
			return nil
		},
	}
	repo := NewCachingTenantRepository(inner, cache, time.Minute)

	before, err := repo.GetBySubdomain(context.Background(), "acme")
	require.NoError(t, err)
	require.False(t, before.CustomDomainVerified)
	require.True(t, mr.Exists("cache:tenant:sub:acme"))

	require.NoError(t, repo.MarkCustomDomainVerified(context.Background(), id))
	assert.False(t, mr.Exists("cache:tenant:sub:acme"))

	after, err := repo.GetBySubdomain(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, after.CustomDomainVerified)
}

func TestCachingTenantRepository_CacheErrorsFallBackToDirectory(t *testing.T) {
	inner := &mocks.TenantRepositoryMock{
		GetBySubdomainFn: func(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
			return &tenant.Tenant{Subdomain: subdomain}, nil
		},
	}
	mr, client := newMiniRedis(t)
	mr.Close()
	repo := NewCachingTenantRepository(inner, redisinfra.NewRedisCache(client, ""), time.Minute)

	got, err := repo.GetBySubdomain(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Subdomain)
}
