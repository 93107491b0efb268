package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

type verifyDomainRequest struct {
	Domain string `json:"domain"`
}

func (s *Server) verifyDomain(c echo.Context) error {
	session, err := helpers.GetSessionFromContext(c)
	if err != nil {
		return err
	}
	var req verifyDomainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	domain := strings.ToLower(strings.TrimSpace(req.Domain))
	if domain == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "domain is required")
	}

	err = s.domains.VerifyCustomDomain(c.Request().Context(), session.UserID, domain)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]any{"domain": domain, "verified": true})
	case errors.Is(err, tenant.ErrInvalidDomain):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, tenant.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "no portfolio for this account")
	case errors.Is(err, tenant.ErrDomainNotOwned):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, tenant.ErrNoVerificationToken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, tenant.ErrVerificationNotFound):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, tenant.ErrVerificationLookup):
		return echo.NewHTTPError(http.StatusBadGateway, "DNS lookup failed, please retry").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify domain").SetInternal(err)
	}
}
