package httpserver

import (
	"strings"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
)

// DefaultNotFoundPath is where the routing middleware sends unknown tenants
// unless configured otherwise.
const DefaultNotFoundPath = "/not-found"

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	// Page renderers; tenant and custom-domain hosts reach these via rewrites.
	s.echo.GET("/u/:username", s.tenantPage)
	s.echo.GET("/u/:username/*", s.tenantPage)
	s.echo.GET("/domain/:hostname", s.customDomainPage)
	s.echo.GET("/domain/:hostname/*", s.customDomainPage)
	s.echo.GET(s.lockedPath(), s.lockedPage)
	s.echo.GET(s.loginPath(), s.loginPage)
	for _, p := range s.signupPaths() {
		s.echo.GET(p, s.signupPage)
		s.echo.GET(strings.TrimSuffix(p, "/")+"/*", s.signupPage)
	}
	s.echo.GET(s.config.Routing.NotFoundPath, s.notFoundPage)

	dashboard := s.echo.Group(s.dashboardPath(), s.middleware.Session.RequireSession())
	dashboard.GET("", s.dashboardPage)
	dashboard.GET("/*", s.dashboardPage)

	limit := s.middleware.RateLimit.For
	api := s.echo.Group("/api")
	api.POST("/analytics/pageview", s.recordPageView, limit(ratelimit.CategoryPageView))
	api.GET("/username/check", s.checkUsername, limit(ratelimit.CategoryUsernameCheck))
	api.POST("/resume/request-code", s.requestResumeCode, limit(ratelimit.CategoryVerificationEmail))
	api.POST("/resume/verify-code", s.verifyResumeCode, limit(ratelimit.CategoryVerificationCode))

	requireSession := s.middleware.Session.RequireSession()
	api.POST("/domains/verify", s.verifyDomain, requireSession, limit(ratelimit.CategoryDomainVerify))
	api.POST("/cv/parse", s.parseCV, requireSession, limit(ratelimit.CategoryAIParse))
	api.GET("/analytics/summary", s.analyticsSummary, requireSession)
}

func (s *Server) lockedPath() string {
	if p := s.config.Routing.LockedPath; p != "" {
		return p
	}
	return "/locked"
}

func (s *Server) loginPath() string {
	if p := s.config.Routing.LoginPath; p != "" {
		return p
	}
	return "/login"
}

func (s *Server) dashboardPath() string {
	if p := s.config.Routing.DashboardPath; p != "" {
		return p
	}
	return "/dashboard"
}

func (s *Server) signupPaths() []string {
	if len(s.config.SignupPaths) > 0 {
		return s.config.SignupPaths
	}
	return []string{"/signup"}
}
