package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

// SessionMiddleware resolves the session token of a request once and stores the
// result in the echo context. A missing or invalid token is an anonymous request.
type SessionMiddleware struct {
	sessions   ports.SessionService
	cookieName string
	logger     *logrus.Logger
}

func NewSessionMiddleware(sessions ports.SessionService, cookieName string, logger *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName, logger: logger}
}

// Resolve returns the session of the request, memoized in the context.
func (m *SessionMiddleware) Resolve(c echo.Context) *auth.Session {
	if s, ok := helpers.GetSessionRaw(c); ok {
		return s
	}
	var session *auth.Session
	if token := helpers.SessionToken(c.Request(), m.cookieName); token != "" && m.sessions != nil {
		session = m.sessions.SessionFromToken(c.Request().Context(), token)
		if session == nil && m.logger != nil {
			m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Debug("session token rejected; treating request as anonymous")
		}
	}
	helpers.SetSession(c, session)
	return session
}

// LoadSession stores the session, if any, for downstream handlers.
func (m *SessionMiddleware) LoadSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.Resolve(c)
			return next(c)
		}
	}
}

// RequireSession rejects anonymous requests with 401.
func (m *SessionMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.Resolve(c).Valid() {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("unauthenticated request to protected endpoint")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
