package ports

import (
	"context"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
)

// RouteRequest is the part of an inbound request the routing pipeline reads.
type RouteRequest struct {
	Host    string
	Path    string
	Session *auth.Session
}

// RoutingService runs classification, tenant resolution and the gates.
type RoutingService interface {
	Route(ctx context.Context, req RouteRequest) routing.Decision
}
