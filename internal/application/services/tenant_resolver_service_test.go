package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/foliohost/portfolio-saas/internal/application/services"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	tmocks "github.com/foliohost/portfolio-saas/internal/mocks"
)

func TestTenantResolver_MissIsNilWithoutWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	svc := impl.NewTenantResolverService(&tmocks.TenantRepositoryMock{}, logger)
	assert.Nil(t, svc.ResolveSubdomain(context.Background(), "ghost"))
	assert.Nil(t, svc.ResolveSubdomain(context.Background(), "ghost"))
	assert.Empty(t, buf.String())
}

func TestTenantResolver_ErrorIsNilAndLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	repo := &tmocks.TenantRepositoryMock{GetBySubdomainFn: func(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
		return nil, errors.New("db down")
	}}
	svc := impl.NewTenantResolverService(repo, logger)

	assert.Nil(t, svc.ResolveSubdomain(context.Background(), "alice"))
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "db down")
}

func TestTenantResolver_CustomDomainRequiresVerification(t *testing.T) {
	var askedVerifiedOnly bool
	repo := &tmocks.TenantRepositoryMock{GetByCustomDomainFn: func(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error) {
		askedVerifiedOnly = verifiedOnly
		switch hostname {
		case "mycompany.io":
			return &tenant.Tenant{Subdomain: "acme", CustomDomain: "mycompany.io", CustomDomainVerified: true}, nil
		case "sloppy.io":
			// a directory that ignores verifiedOnly must still not leak pending domains
			return &tenant.Tenant{Subdomain: "sloppy", CustomDomain: "sloppy.io"}, nil
		}
		return nil, tenant.ErrNotFound
	}}
	svc := impl.NewTenantResolverService(repo, nil)

	got := svc.ResolveCustomDomain(context.Background(), "mycompany.io")
	require.NotNil(t, got)
	assert.Equal(t, "acme", got.Subdomain)
	assert.True(t, askedVerifiedOnly)

	assert.Nil(t, svc.ResolveCustomDomain(context.Background(), "sloppy.io"))
	assert.Nil(t, svc.ResolveCustomDomain(context.Background(), "nobody.io"))
}
