package routing

import "strings"

// Decision is the single terminal outcome for a page request. It is one of
// Allow, PassThrough, NotFound, RedirectToLocked, RewriteToPath,
// RewriteToCustomDomainPath, RedirectToLogin or RedirectToDashboard.
type Decision interface {
	isDecision()
	Name() string
}

// Allow lets an authenticated request into the protected area unchanged.
type Allow struct{}

// PassThrough leaves the request untouched; no gate applies to it.
type PassThrough struct{}

// NotFound renders the not-found experience.
type NotFound struct{}

// RedirectToLocked sends a visitor of a gated tenant to the locked page.
type RedirectToLocked struct{ Subdomain string }

// RewriteToPath dispatches a tenant subdomain request to its public page.
type RewriteToPath struct{ Path string }

// RewriteToCustomDomainPath dispatches a custom-domain request to the domain page.
type RewriteToCustomDomainPath struct {
	Hostname string
	Path     string
}

// RedirectToLogin sends an anonymous visitor of the dashboard to login.
type RedirectToLogin struct{}

// RedirectToDashboard sends an authenticated visitor of the login page to the dashboard.
type RedirectToDashboard struct{}

func (Allow) isDecision()                     {}
func (PassThrough) isDecision()               {}
func (NotFound) isDecision()                  {}
func (RedirectToLocked) isDecision()          {}
func (RewriteToPath) isDecision()             {}
func (RewriteToCustomDomainPath) isDecision() {}
func (RedirectToLogin) isDecision()           {}
func (RedirectToDashboard) isDecision()       {}

func (Allow) Name() string                     { return "allow" }
func (PassThrough) Name() string               { return "pass_through" }
func (NotFound) Name() string                  { return "not_found" }
func (RedirectToLocked) Name() string          { return "redirect_locked" }
func (RewriteToPath) Name() string             { return "rewrite_tenant" }
func (RewriteToCustomDomainPath) Name() string { return "rewrite_custom_domain" }
func (RedirectToLogin) Name() string           { return "redirect_login" }
func (RedirectToDashboard) Name() string       { return "redirect_dashboard" }

const (
	tenantPagePrefix = "/u/"
	domainPagePrefix = "/domain/"
)

// TenantPagePath is the internal path of a tenant's public page for requestPath.
func TenantPagePath(subdomain, requestPath string) string {
	return tenantPagePrefix + subdomain + suffixPath(requestPath)
}

// CustomDomainPagePath is the internal path of a custom-domain page for requestPath.
func CustomDomainPagePath(hostname, requestPath string) string {
	return domainPagePrefix + hostname + suffixPath(requestPath)
}

// suffixPath drops the bare root path so "/" maps to the page itself.
func suffixPath(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
