package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/helpers"
)

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	outcomes    *prometheus.CounterVec
	logger      *logrus.Logger
	now         func() time.Time
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, outcomes *prometheus.CounterVec, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, outcomes: outcomes, logger: logger, now: time.Now}
}

// For limits the wrapped route under category, keyed by client identity.
// Denied requests get 429 and never reach the handler.
func (r *RateLimitMiddleware) For(category ratelimit.Category) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := helpers.GetClientIdentity(c)
			res := r.rateLimiter.Check(c.Request().Context(), identity, category)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			outcome := "allowed"
			if !res.Allowed {
				outcome = "denied"
			}
			if r.outcomes != nil {
				r.outcomes.WithLabelValues(string(category), outcome).Inc()
			}

			if !res.Allowed {
				retry := int(res.ResetAt.Sub(r.now()).Seconds() + 0.5)
				if retry < 1 {
					retry = 1
				}
				h.Set("Retry-After", strconv.Itoa(retry))
				if r.logger != nil {
					r.logger.WithFields(logrus.Fields{
						"category": category,
						"client":   identity,
						"count":    res.Count,
						"limit":    res.Limit,
					}).Info("rate limit exceeded")
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}
