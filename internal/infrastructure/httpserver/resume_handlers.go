package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/domain/verification"
)

type requestCodeRequest struct {
	Subdomain string `json:"subdomain"`
	Email     string `json:"email"`
}

type verifyCodeRequest struct {
	Subdomain string `json:"subdomain"`
	Email     string `json:"email"`
	Code      string `json:"code"`
}

func (s *Server) requestResumeCode(c echo.Context) error {
	var req requestCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Subdomain == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subdomain and email are required")
	}

	err := s.verification.RequestCode(c.Request().Context(), req.Subdomain, req.Email)
	switch {
	case err == nil:
		return c.JSON(http.StatusAccepted, map[string]string{"status": "sent"})
	case errors.Is(err, verification.ErrInvalidEmail):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, tenant.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "portfolio not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send verification code").SetInternal(err)
	}
}

func (s *Server) verifyResumeCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Subdomain == "" || req.Email == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "subdomain, email and code are required")
	}

	err := s.verification.VerifyCode(c.Request().Context(), req.Subdomain, req.Email, req.Code)
	switch {
	case err == nil:
		if s.logger != nil {
			s.logger.WithField("subdomain", req.Subdomain).Info("resume download code verified")
		}
		return c.JSON(http.StatusOK, map[string]bool{"verified": true})
	case errors.Is(err, verification.ErrInvalidCode):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, verification.ErrCodeNotFound):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.Is(err, verification.ErrTooManyAttempts):
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, request a new code")
	default:
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subdomain": req.Subdomain}).WithError(err).Error("resume code verification failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify code")
	}
}
