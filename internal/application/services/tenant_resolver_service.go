package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// TenantResolverService degrades every directory outcome to "tenant or nil".
// Misses are normal; failures are logged at warn and treated as misses.
type TenantResolverService struct {
	repo   ports.TenantRepository
	logger *logrus.Logger
}

func NewTenantResolverService(repo ports.TenantRepository, logger *logrus.Logger) *TenantResolverService {
	return &TenantResolverService{repo: repo, logger: logger}
}

func (s *TenantResolverService) ResolveSubdomain(ctx context.Context, name string) *tenant.Tenant {
	t, err := s.repo.GetBySubdomain(ctx, name)
	return s.settle(t, err, logrus.Fields{"subdomain": name})
}

// ResolveCustomDomain only ever returns tenants whose domain is verified.
func (s *TenantResolverService) ResolveCustomDomain(ctx context.Context, hostname string) *tenant.Tenant {
	t, err := s.repo.GetByCustomDomain(ctx, hostname, true)
	t = s.settle(t, err, logrus.Fields{"hostname": hostname})
	if t != nil && !t.ServesCustomDomain(hostname) {
		return nil
	}
	return t
}

func (s *TenantResolverService) settle(t *tenant.Tenant, err error, fields logrus.Fields) *tenant.Tenant {
	if err == nil {
		return t
	}
	if !errors.Is(err, tenant.ErrNotFound) && s.logger != nil {
		s.logger.WithFields(fields).WithError(err).Warn("tenant lookup failed; treating as not found")
	}
	return nil
}

var _ ports.TenantResolver = (*TenantResolverService)(nil)
