package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// RoutingService runs the page navigation pipeline: classify the host, resolve
// the tenant for tenant subdomains, then let the access gate decide.
type RoutingService struct {
	classifier *routing.HostClassifier
	resolver   ports.TenantResolver
	gate       *routing.AccessGate
	logger     *logrus.Logger
}

func NewRoutingService(classifier *routing.HostClassifier, resolver ports.TenantResolver, gate *routing.AccessGate, logger *logrus.Logger) *RoutingService {
	return &RoutingService{classifier: classifier, resolver: resolver, gate: gate, logger: logger}
}

// Route returns exactly one decision per request. It never fails: lookup
// errors have already been degraded to "no tenant" by the resolver.
func (s *RoutingService) Route(ctx context.Context, req ports.RouteRequest) routing.Decision {
	path := req.Path
	if path == "" {
		path = "/"
	}
	class := s.classifier.Classify(req.Host)

	var t *tenant.Tenant
	if sub, ok := class.(routing.TenantSubdomain); ok {
		t = s.resolver.ResolveSubdomain(ctx, sub.Name)
	}

	decision := s.gate.Decide(class, t, req.Session, path)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"host":           req.Host,
			"path":           path,
			"classification": class.Kind(),
			"decision":       decision.Name(),
		}).Debug("routing decision")
	}
	return decision
}

var _ ports.RoutingService = (*RoutingService)(nil)
