package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const maxCVTextLength = 50_000

type parseCVRequest struct {
	Text string `json:"text"`
}

func (s *Server) parseCV(c echo.Context) error {
	if s.cvAnalyzer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "CV parsing is not configured")
	}
	var req parseCVRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}
	if len(text) > maxCVTextLength {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "CV text is too long")
	}

	analysis, err := s.cvAnalyzer.AnalyzeCV(c.Request().Context(), text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "CV analysis failed").SetInternal(err)
	}
	return c.JSON(http.StatusOK, analysis)
}
