package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) checkUsername(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	result, err := s.usernames.CheckUsername(c.Request().Context(), username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check username").SetInternal(err)
	}
	return c.JSON(http.StatusOK, result)
}
