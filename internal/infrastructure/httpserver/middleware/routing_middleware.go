package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

// RoutingConfig tells the routing middleware which requests to leave alone and
// where its redirects point.
type RoutingConfig struct {
	SkipPrefixes  []string
	PublicBaseURL string
	LockedPath    string
	LoginPath     string
	DashboardPath string
	NotFoundPath  string
}

// RoutingMiddleware turns host based page navigation into internal routes. It
// must be installed with echo's Pre so rewrites happen before route matching.
type RoutingMiddleware struct {
	router    ports.RoutingService
	sessions  *SessionMiddleware
	cfg       RoutingConfig
	decisions *prometheus.CounterVec
	logger    *logrus.Logger
}

func NewRoutingMiddleware(router ports.RoutingService, sessions *SessionMiddleware, cfg RoutingConfig, decisions *prometheus.CounterVec, logger *logrus.Logger) *RoutingMiddleware {
	if cfg.LockedPath == "" {
		cfg.LockedPath = "/locked"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = "/dashboard"
	}
	if cfg.NotFoundPath == "" {
		cfg.NotFoundPath = "/not-found"
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &RoutingMiddleware{router: router, sessions: sessions, cfg: cfg, decisions: decisions, logger: logger}
}

// Route classifies the request host, applies the gates and then either passes
// the request on, rewrites Request.URL.Path, or answers with a 302.
func (m *RoutingMiddleware) Route() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if m.skipped(req.URL.Path) {
				return next(c)
			}

			var session *auth.Session
			if m.sessions != nil {
				session = m.sessions.Resolve(c)
			}
			decision := m.router.Route(req.Context(), ports.RouteRequest{
				Host:    req.Host,
				Path:    req.URL.Path,
				Session: session,
			})
			helpers.SetDecision(c, decision)
			if m.decisions != nil {
				m.decisions.WithLabelValues(decision.Name()).Inc()
			}

			switch d := decision.(type) {
			case routing.Allow, routing.PassThrough:
				return next(c)
			case routing.NotFound:
				m.rewrite(c, m.cfg.NotFoundPath)
				return next(c)
			case routing.RewriteToPath:
				m.rewrite(c, d.Path)
				return next(c)
			case routing.RewriteToCustomDomainPath:
				m.rewrite(c, d.Path)
				return next(c)
			case routing.RedirectToLocked:
				return c.Redirect(http.StatusFound, m.LockedURL(d.Subdomain))
			case routing.RedirectToLogin:
				return c.Redirect(http.StatusFound, m.cfg.LoginPath)
			case routing.RedirectToDashboard:
				return c.Redirect(http.StatusFound, m.cfg.DashboardPath)
			default:
				if m.logger != nil {
					m.logger.WithField("decision", decision.Name()).Error("unhandled routing decision")
				}
				return next(c)
			}
		}
	}
}

func (m *RoutingMiddleware) skipped(path string) bool {
	for _, p := range m.cfg.SkipPrefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (m *RoutingMiddleware) rewrite(c echo.Context, path string) {
	req := c.Request()
	helpers.SetOriginalPath(c, req.URL.Path)
	req.URL.Path = path
	req.URL.RawPath = ""
}

// LockedURL points at the locked page on the public site; the tenant's own
// host is gated, so the page cannot be served from it.
func (m *RoutingMiddleware) LockedURL(subdomain string) string {
	q := url.Values{"subdomain": []string{subdomain}}
	return m.cfg.PublicBaseURL + m.cfg.LockedPath + "?" + q.Encode()
}
