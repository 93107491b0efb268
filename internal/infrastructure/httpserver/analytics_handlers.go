package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foliohost/portfolio-saas/internal/core/domain/analytics"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

type pageViewRequest struct {
	Subdomain string `json:"subdomain"`
	Path      string `json:"path"`
}

func (s *Server) recordPageView(c echo.Context) error {
	var req pageViewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Subdomain = strings.TrimSpace(req.Subdomain)
	if req.Subdomain == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subdomain is required")
	}
	if len(req.Path) > 512 {
		return echo.NewHTTPError(http.StatusBadRequest, "path is too long")
	}

	err := s.analytics.RecordPageView(c.Request().Context(), req.Subdomain, req.Path)
	switch {
	case err == nil:
		return c.JSON(http.StatusAccepted, map[string]string{"status": "recorded"})
	case errors.Is(err, tenant.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "portfolio not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record page view").SetInternal(err)
	}
}

// analyticsSummary reports the signed-in owner's page views.
func (s *Server) analyticsSummary(c echo.Context) error {
	session, err := helpers.GetSessionFromContext(c)
	if err != nil {
		return err
	}

	days := analytics.DefaultSummaryDays
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a number")
		}
	}

	summary, err := s.analytics.Summary(c.Request().Context(), session.UserID, days)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, summary)
	case errors.Is(err, analytics.ErrInvalidRange):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read page views").SetInternal(err)
	}
}
