package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// loadWithSingleflight coalesces concurrent misses for the same key into one
// loader call and caches the result.
func loadWithSingleflight[T any](cache ports.Cache, ctx context.Context, key string, ttl time.Duration, loader func() (*T, error)) (*T, error) {
	if v, ok := cacheGet[T](cache, ctx, key); ok {
		return v, nil
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		if v, ok := cacheGet[T](cache, ctx, key); ok {
			return v, nil
		}
		v, err := loader()
		if err != nil {
			return nil, err
		}
		cacheSetSilently(cache, ctx, key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	v, ok := res.(*T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return v, nil
}

func tenantSubdomainKey(sub string) string { return "tenant:sub:" + strings.ToLower(sub) }
func tenantAccountKey(id uuid.UUID) string { return "tenant:account:" + id.String() }
func tenantDomainKey(host string, verifiedOnly bool) string {
	state := "any"
	if verifiedOnly {
		state = "verified"
	}
	return "tenant:domain:" + state + ":" + strings.ToLower(host)
}

// CachingTenantRepository decorates a TenantRepository with cache-aside.
// Misses are not cached, so a newly published tenant shows up on the next request.
type CachingTenantRepository struct {
	inner ports.TenantRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingTenantRepository(inner ports.TenantRepository, cache ports.Cache, ttl time.Duration) *CachingTenantRepository {
	return &CachingTenantRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingTenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	return loadWithSingleflight(c.cache, ctx, tenantSubdomainKey(subdomain), c.ttl, func() (*tenant.Tenant, error) {
		return c.inner.GetBySubdomain(ctx, subdomain)
	})
}

func (c *CachingTenantRepository) GetByCustomDomain(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error) {
	return loadWithSingleflight(c.cache, ctx, tenantDomainKey(hostname, verifiedOnly), c.ttl, func() (*tenant.Tenant, error) {
		return c.inner.GetByCustomDomain(ctx, hostname, verifiedOnly)
	})
}

func (c *CachingTenantRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*tenant.Tenant, error) {
	return loadWithSingleflight(c.cache, ctx, tenantAccountKey(accountID), c.ttl, func() (*tenant.Tenant, error) {
		return c.inner.GetByAccountID(ctx, accountID)
	})
}

func (c *CachingTenantRepository) MarkCustomDomainVerified(ctx context.Context, accountID uuid.UUID) error {
	// Need subdomain and domain to drop their keys
	current, _ := c.inner.GetByAccountID(ctx, accountID)
	if err := c.inner.MarkCustomDomainVerified(ctx, accountID); err != nil {
		return err
	}
	c.invalidate(ctx, accountID, current)
	return nil
}

func (c *CachingTenantRepository) invalidate(ctx context.Context, accountID uuid.UUID, t *tenant.Tenant) {
	if c.cache == nil {
		return
	}
	_ = c.cache.Delete(ctx, tenantAccountKey(accountID))
	if t == nil {
		return
	}
	_ = c.cache.Delete(ctx, tenantSubdomainKey(t.Subdomain))
	if t.CustomDomain != "" {
		_ = c.cache.Delete(ctx, tenantDomainKey(t.CustomDomain, true))
		_ = c.cache.Delete(ctx, tenantDomainKey(t.CustomDomain, false))
	}
}

var _ ports.TenantRepository = (*CachingTenantRepository)(nil)

// singleflight group for coalescing cache-miss loads in-process
var sf singleflight.Group
