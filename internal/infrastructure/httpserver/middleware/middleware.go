package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// Metrics groups the collectors the middleware report to.
type Metrics struct {
	RequestsTotal     *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	RoutingDecisions  *prometheus.CounterVec
	RateLimitOutcomes *prometheus.CounterVec
}

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	Routing   *RoutingMiddleware
	Session   *SessionMiddleware
	Logging   *LoggingMiddleware
	RateLimit *RateLimitMiddleware
	Metrics   *MetricsMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	routingService ports.RoutingService,
	sessionService ports.SessionService,
	rateLimiterService ports.RateLimiterService,
	routingCfg RoutingConfig,
	cookieName string,
	logger *logrus.Logger,
	metrics Metrics,
) *MiddlewareCollection {
	sessions := NewSessionMiddleware(sessionService, cookieName, logger)
	return &MiddlewareCollection{
		Routing:   NewRoutingMiddleware(routingService, sessions, routingCfg, metrics.RoutingDecisions, logger),
		Session:   sessions,
		Logging:   NewLoggingMiddleware(logger),
		RateLimit: NewRateLimitMiddleware(rateLimiterService, metrics.RateLimitOutcomes, logger),
		Metrics:   NewMetricsMiddleware(metrics.RequestsTotal, metrics.RequestDuration),
	}
}
