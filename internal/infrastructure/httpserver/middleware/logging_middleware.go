package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger != nil {
				fields := logrus.Fields{
					"method": c.Request().Method,
					"host":   c.Request().Host,
					"path":   c.Request().URL.Path,
					"route":  c.Path(),
				}
				if original, ok := helpers.GetOriginalPathRaw(c); ok {
					fields["original_path"] = original
				}
				if d, ok := helpers.GetDecisionRaw(c); ok {
					fields["decision"] = d.Name()
				}
				m.logger.WithFields(fields).Debug("incoming request")
			}
			return next(c)
		}
	}
}
