package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/foliohost/portfolio-saas/internal/application/services"
	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	tmocks "github.com/foliohost/portfolio-saas/internal/mocks"
)

func newRoutingService(t *testing.T, resolver ports.TenantResolver) *impl.RoutingService {
	t.Helper()
	classifier, err := routing.NewHostClassifier(routing.HostConfig{
		RootDomain:       "example.com",
		Reserved:         []string{"www", "app", "api"},
		LocalDevSuffixes: []string{"localhost"},
		PreviewSuffixes:  []string{"vercel.app"},
	})
	require.NoError(t, err)
	gate := routing.NewAccessGate(routing.NewAuthGate(routing.AuthPaths{
		DashboardPrefix: "/dashboard",
		LoginPath:       "/login",
		SignupPaths:     []string{"/signup"},
	}))
	return impl.NewRoutingService(classifier, resolver, gate, nil)
}

func TestRoutingService_Scenarios(t *testing.T) {
	alice := &tenant.Tenant{AccountID: uuid.New(), Subdomain: "alice", Plan: tenant.PlanPro}
	bob := &tenant.Tenant{AccountID: uuid.New(), Subdomain: "bob", Plan: tenant.PlanFree}
	resolver := &tmocks.TenantResolverMock{BySubdomain: map[string]*tenant.Tenant{"alice": alice, "bob": bob}}
	svc := newRoutingService(t, resolver)
	ctx := context.Background()

	cases := []struct {
		name string
		req  ports.RouteRequest
		want routing.Decision
	}{
		{"pro tenant anonymous", ports.RouteRequest{Host: "alice.example.com", Path: "/"}, routing.RewriteToPath{Path: "/u/alice"}},
		{"free tenant stranger", ports.RouteRequest{Host: "bob.example.com", Path: "/", Session: &auth.Session{UserID: uuid.New()}}, routing.RedirectToLocked{Subdomain: "bob"}},
		{"free tenant owner", ports.RouteRequest{Host: "bob.example.com", Path: "/", Session: &auth.Session{UserID: bob.AccountID}}, routing.RewriteToPath{Path: "/u/bob"}},
		{"custom domain", ports.RouteRequest{Host: "mycompany.io", Path: "/"}, routing.RewriteToCustomDomainPath{Hostname: "mycompany.io", Path: "/domain/mycompany.io"}},
		{"unknown tenant", ports.RouteRequest{Host: "ghost.example.com", Path: "/"}, routing.NotFound{}},
		{"dashboard anonymous", ports.RouteRequest{Host: "example.com", Path: "/dashboard"}, routing.RedirectToLogin{}},
		{"login with session", ports.RouteRequest{Host: "www.example.com", Path: "/login", Session: &auth.Session{UserID: uuid.New()}}, routing.RedirectToDashboard{}},
		{"empty path", ports.RouteRequest{Host: "alice.example.com"}, routing.RewriteToPath{Path: "/u/alice"}},
		{"garbage host", ports.RouteRequest{Host: "[::1]:3000", Path: "/"}, routing.PassThrough{}},
		{"preview deploy", ports.RouteRequest{Host: "x-git-main.vercel.app", Path: "/pricing"}, routing.PassThrough{}},
		{"multi-level", ports.RouteRequest{Host: "a.b.example.com", Path: "/"}, routing.NotFound{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, svc.Route(ctx, tc.req))
		})
	}
}

func TestRoutingService_OnlyTenantSubdomainsHitTheDirectory(t *testing.T) {
	var lookups []string
	resolver := &tmocks.TenantResolverMock{
		ResolveSubdomainFn: func(ctx context.Context, name string) *tenant.Tenant {
			lookups = append(lookups, name)
			return nil
		},
		ResolveCustomDomainFn: func(ctx context.Context, hostname string) *tenant.Tenant {
			lookups = append(lookups, hostname)
			return nil
		},
	}
	svc := newRoutingService(t, resolver)

	for _, host := range []string{"example.com", "www.example.com", "shop.io", "localhost:3000", "carol.example.com"} {
		svc.Route(context.Background(), ports.RouteRequest{Host: host, Path: "/"})
	}
	assert.Equal(t, []string{"carol"}, lookups)
}

func TestRoutingService_UnknownTenantIsIdempotent(t *testing.T) {
	svc := newRoutingService(t, &tmocks.TenantResolverMock{})
	req := ports.RouteRequest{Host: "nobody.example.com", Path: "/"}
	first := svc.Route(context.Background(), req)
	second := svc.Route(context.Background(), req)
	assert.Equal(t, routing.NotFound{}, first)
	assert.Equal(t, first, second)
}
