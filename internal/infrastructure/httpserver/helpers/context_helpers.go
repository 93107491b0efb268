package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
)

// GetSessionFromContext returns the session loaded by the session middleware,
// or a 401 when the request is anonymous.
func GetSessionFromContext(c echo.Context) (*auth.Session, error) {
	s, ok := GetSessionRaw(c)
	if !ok || !s.Valid() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return s, nil
}

// GetClientIdentity returns the cached identity of the request, computing it
// from the headers on first use.
func GetClientIdentity(c echo.Context) string {
	if id, ok := GetClientIdentityRaw(c); ok && id != "" {
		return id
	}
	id := ClientIdentity(c.Request().Header)
	SetClientIdentity(c, id)
	return id
}

// SessionToken reads the session token from the named cookie, falling back to
// an Authorization bearer header. It returns "" when neither is present.
func SessionToken(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if ck, err := r.Cookie(cookieName); err == nil && ck.Value != "" {
			return ck.Value
		}
	}
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
