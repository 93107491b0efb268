package routing

import (
	"strings"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
)

// AuthPaths configures the root-domain auth gate.
type AuthPaths struct {
	DashboardPrefix string
	LoginPath       string
	SignupPaths     []string
}

// AuthGate redirects between login and the dashboard on the root domain.
type AuthGate struct {
	paths AuthPaths
}

func NewAuthGate(paths AuthPaths) *AuthGate {
	if paths.DashboardPrefix == "" {
		paths.DashboardPrefix = "/dashboard"
	}
	if paths.LoginPath == "" {
		paths.LoginPath = "/login"
	}
	return &AuthGate{paths: paths}
}

// Decide applies the auth rules to a root-domain path.
func (g *AuthGate) Decide(path string, session *auth.Session) Decision {
	// Signup and its steps stay reachable with a fresh session: theme selection
	// follows right after the account is created.
	for _, p := range g.paths.SignupPaths {
		if p != "" && underPrefix(path, p) {
			return PassThrough{}
		}
	}

	if underPrefix(path, g.paths.DashboardPrefix) {
		if !session.Valid() {
			return RedirectToLogin{}
		}
		return Allow{}
	}

	if path == g.paths.LoginPath && session.Valid() {
		return RedirectToDashboard{}
	}

	return PassThrough{}
}

// DashboardPath is where RedirectToDashboard sends the client.
func (g *AuthGate) DashboardPath() string { return g.paths.DashboardPrefix }

// LoginPath is where RedirectToLogin sends the client.
func (g *AuthGate) LoginPath() string { return g.paths.LoginPath }

func underPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
