package routing

import (
	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
)

// AccessGate turns a classified host, its resolved tenant and the session into
// a Decision.
type AccessGate struct {
	auth *AuthGate
}

func NewAccessGate(authGate *AuthGate) *AccessGate {
	return &AccessGate{auth: authGate}
}

// Decide is stateless. t is nil when the directory has no match or the lookup
// failed; both route to NotFound for tenant subdomains.
func (g *AccessGate) Decide(class HostClassification, t *tenant.Tenant, session *auth.Session, path string) Decision {
	switch h := class.(type) {
	case RootDomain, Local, ReservedSubdomain:
		return g.auth.Decide(path, session)

	case TenantSubdomain:
		if t == nil {
			return NotFound{}
		}
		isOwner := session.Valid() && t.IsOwnedBy(session.UserID)
		if !isOwner && t.IsFreeTier() {
			return RedirectToLocked{Subdomain: h.Name}
		}
		return RewriteToPath{Path: TenantPagePath(h.Name, path)}

	case CustomDomain:
		// Verification is checked by the domain page itself so an unverified
		// domain still lands on not-found instead of the main app.
		return RewriteToCustomDomainPath{Hostname: h.Hostname, Path: CustomDomainPagePath(h.Hostname, path)}

	case AmbiguousSubdomain:
		return NotFound{}

	default:
		return PassThrough{}
	}
}
