package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

// The page handlers stand in for the rendering layer. They answer with the
// data a renderer would receive, so the routing outcome is observable.

type pageResponse struct {
	Page        string `json:"page"`
	Subdomain   string `json:"subdomain,omitempty"`
	Hostname    string `json:"hostname,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Path        string `json:"path,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

func subPath(c echo.Context) string {
	if rest := c.Param("*"); rest != "" {
		return "/" + strings.TrimPrefix(rest, "/")
	}
	return "/"
}

func (s *Server) tenantPage(c echo.Context) error {
	name := strings.ToLower(c.Param("username"))
	t := s.resolver.ResolveSubdomain(c.Request().Context(), name)
	if t == nil {
		return echo.NewHTTPError(http.StatusNotFound, "portfolio not found")
	}
	return c.JSON(http.StatusOK, pageResponse{
		Page:        "portfolio",
		Subdomain:   t.Subdomain,
		DisplayName: t.DisplayName,
		Path:        subPath(c),
	})
}

// customDomainPage renders only for verified custom domains, and locks free
// tenants to their owner the same way their subdomain is. The routing
// middleware rewrites every custom host here without consulting the directory.
func (s *Server) customDomainPage(c echo.Context) error {
	host := strings.ToLower(c.Param("hostname"))
	t := s.resolver.ResolveCustomDomain(c.Request().Context(), host)
	if t == nil {
		return echo.NewHTTPError(http.StatusNotFound, "portfolio not found")
	}
	if t.IsFreeTier() {
		session := s.middleware.Session.Resolve(c)
		if !session.Valid() || !t.IsOwnedBy(session.UserID) {
			return c.Redirect(http.StatusFound, s.middleware.Routing.LockedURL(t.Subdomain))
		}
	}
	return c.JSON(http.StatusOK, pageResponse{
		Page:        "portfolio",
		Subdomain:   t.Subdomain,
		Hostname:    host,
		DisplayName: t.DisplayName,
		Path:        subPath(c),
	})
}

func (s *Server) lockedPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "locked", Subdomain: c.QueryParam("subdomain")})
}

func (s *Server) loginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "login"})
}

func (s *Server) signupPage(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "signup"})
}

func (s *Server) dashboardPage(c echo.Context) error {
	session, err := helpers.GetSessionFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{Page: "dashboard", Path: subPath(c), UserID: session.UserID.String()})
}

func (s *Server) notFoundPage(c echo.Context) error {
	return echo.NewHTTPError(http.StatusNotFound, "page not found")
}
