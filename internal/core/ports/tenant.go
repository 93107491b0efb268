package ports

import (
	"context"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/google/uuid"
)

// TenantRepository is the tenant directory. Lookups return tenant.ErrNotFound
// (possibly wrapped) on a miss.
type TenantRepository interface {
	GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error)
	GetByCustomDomain(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*tenant.Tenant, error)
	MarkCustomDomainVerified(ctx context.Context, accountID uuid.UUID) error
}

// TenantResolver maps subdomains and custom domains to tenants. A nil result
// means "no tenant": either a directory miss or a failed lookup.
type TenantResolver interface {
	ResolveSubdomain(ctx context.Context, name string) *tenant.Tenant
	ResolveCustomDomain(ctx context.Context, hostname string) *tenant.Tenant
}
