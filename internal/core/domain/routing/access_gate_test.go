package routing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
)

func newTestGate() *AccessGate {
	return NewAccessGate(NewAuthGate(AuthPaths{
		DashboardPrefix: "/dashboard",
		LoginPath:       "/login",
		SignupPaths:     []string{"/signup"},
	}))
}

func TestAccessGate_Scenarios(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()

	alice := &tenant.Tenant{AccountID: uuid.New(), Subdomain: "alice", Plan: tenant.PlanPro}
	bob := &tenant.Tenant{AccountID: uuid.New(), Subdomain: "bob", Plan: tenant.PlanFree}
	company := &tenant.Tenant{AccountID: uuid.New(), CustomDomain: "mycompany.io", CustomDomainVerified: true, Plan: tenant.PlanPremium}

	t.Run("pro tenant without session is rewritten", func(t *testing.T) {
		d := g.Decide(c.Classify("alice.example.com"), alice, nil, "/")
		assert.Equal(t, RewriteToPath{Path: "/u/alice"}, d)
	})

	t.Run("free tenant with foreign session is locked", func(t *testing.T) {
		d := g.Decide(c.Classify("bob.example.com"), bob, &auth.Session{UserID: uuid.New()}, "/")
		assert.Equal(t, RedirectToLocked{Subdomain: "bob"}, d)
	})

	t.Run("free tenant owner bypasses lock", func(t *testing.T) {
		d := g.Decide(c.Classify("bob.example.com"), bob, &auth.Session{UserID: bob.AccountID}, "/")
		assert.Equal(t, RewriteToPath{Path: "/u/bob"}, d)
	})

	t.Run("custom domain is rewritten", func(t *testing.T) {
		d := g.Decide(c.Classify("mycompany.io"), company, nil, "/")
		assert.Equal(t, RewriteToCustomDomainPath{Hostname: "mycompany.io", Path: "/domain/mycompany.io"}, d)
	})
}

func TestAccessGate_TenantPathIsPreserved(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()
	alice := &tenant.Tenant{AccountID: uuid.New(), Plan: tenant.PlanPro}

	d := g.Decide(c.Classify("alice.example.com"), alice, nil, "/projects/42")
	assert.Equal(t, RewriteToPath{Path: "/u/alice/projects/42"}, d)

	d = g.Decide(c.Classify("shop.io"), nil, nil, "/about")
	assert.Equal(t, RewriteToCustomDomainPath{Hostname: "shop.io", Path: "/domain/shop.io/about"}, d)
}

func TestAccessGate_OwnerBypassForEveryPlan(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()
	owner := uuid.New()

	for _, plan := range []tenant.SubscriptionPlan{"", tenant.PlanFree, tenant.PlanPro, tenant.PlanPremium, "legacy"} {
		tn := &tenant.Tenant{AccountID: owner, Plan: plan}
		d := g.Decide(c.Classify("carol.example.com"), tn, &auth.Session{UserID: owner}, "/")
		_, locked := d.(RedirectToLocked)
		assert.False(t, locked, "owner locked out on plan %q", plan)
		assert.Equal(t, RewriteToPath{Path: "/u/carol"}, d)
	}
}

func TestAccessGate_FreeTierLockForNonOwners(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()
	tn := &tenant.Tenant{AccountID: uuid.New()}

	sessions := []*auth.Session{nil, {}, {UserID: uuid.New()}}
	for _, plan := range []tenant.SubscriptionPlan{"", tenant.PlanFree} {
		tn.Plan = plan
		for _, s := range sessions {
			d := g.Decide(c.Classify("dave.example.com"), tn, s, "/anything")
			assert.Equal(t, RedirectToLocked{Subdomain: "dave"}, d)
		}
	}
}

func TestAccessGate_UnknownTenantIsNotFound(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()

	for i := 0; i < 3; i++ {
		d := g.Decide(c.Classify("ghost.example.com"), nil, &auth.Session{UserID: uuid.New()}, "/")
		require.Equal(t, NotFound{}, d)
	}
}

func TestAccessGate_AmbiguousSubdomainIsNotFound(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()
	d := g.Decide(c.Classify("a.b.example.com"), nil, nil, "/")
	assert.Equal(t, NotFound{}, d)
}

func TestAccessGate_RootLikeHostsUseAuthGate(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()
	session := &auth.Session{UserID: uuid.New()}

	for _, host := range []string{"example.com", "www.example.com", "localhost:3000", "preview.vercel.app", ""} {
		class := c.Classify(host)
		assert.Equal(t, RedirectToLogin{}, g.Decide(class, nil, nil, "/dashboard/projects"), host)
		assert.Equal(t, Allow{}, g.Decide(class, nil, session, "/dashboard"), host)
		assert.Equal(t, RedirectToDashboard{}, g.Decide(class, nil, session, "/login"), host)
		assert.Equal(t, PassThrough{}, g.Decide(class, nil, nil, "/pricing"), host)
	}
}

func TestAccessGate_ReservedSubdomainIsNeverRewritten(t *testing.T) {
	c := newTestClassifier(t)
	g := newTestGate()
	// even if a tenant record somehow carries a reserved name
	tn := &tenant.Tenant{AccountID: uuid.New(), Subdomain: "www", Plan: tenant.PlanPro}
	d := g.Decide(c.Classify("www.example.com"), tn, nil, "/")
	assert.Equal(t, PassThrough{}, d)
}
