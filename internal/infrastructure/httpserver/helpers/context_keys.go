package helpers

import (
	"github.com/labstack/echo/v4"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
)

type ctxKey string

const (
	keySession        ctxKey = "session"
	keyClientIdentity ctxKey = "client_identity"
	keyDecision       ctxKey = "routing_decision"
	keyOriginalPath   ctxKey = "original_path"
)

func SetSession(c echo.Context, s *auth.Session) { c.Set(string(keySession), s) }
func GetSessionRaw(c echo.Context) (*auth.Session, bool) {
	v := c.Get(string(keySession))
	s, ok := v.(*auth.Session)
	return s, ok
}

func SetClientIdentity(c echo.Context, id string) { c.Set(string(keyClientIdentity), id) }
func GetClientIdentityRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyClientIdentity))
	s, ok := v.(string)
	return s, ok
}

func SetDecision(c echo.Context, d routing.Decision) { c.Set(string(keyDecision), d) }
func GetDecisionRaw(c echo.Context) (routing.Decision, bool) {
	v := c.Get(string(keyDecision))
	d, ok := v.(routing.Decision)
	return d, ok
}

func SetOriginalPath(c echo.Context, p string) { c.Set(string(keyOriginalPath), p) }
func GetOriginalPathRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyOriginalPath))
	s, ok := v.(string)
	return s, ok
}
