package services

import (
	"context"
	"errors"

	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/foliohost/portfolio-saas/internal/utils"
)

// UsernameService answers signup-time availability checks.
type UsernameService struct {
	repo       ports.TenantRepository
	classifier *routing.HostClassifier
}

func NewUsernameService(repo ports.TenantRepository, classifier *routing.HostClassifier) *UsernameService {
	return &UsernameService{repo: repo, classifier: classifier}
}

// CheckUsername reports format problems and reserved names as unavailable with
// a reason. Only a directory failure is returned as an error.
func (s *UsernameService) CheckUsername(ctx context.Context, username string) (*ports.UsernameAvailability, error) {
	name := utils.NormalizeUsername(username)
	res := &ports.UsernameAvailability{Username: name}

	if err := utils.ValidateUsername(name); err != nil {
		res.Reason = err.Error()
		return res, nil
	}
	if s.classifier.IsReserved(name) {
		res.Reason = "username is reserved"
		return res, nil
	}

	_, err := s.repo.GetBySubdomain(ctx, name)
	switch {
	case err == nil:
		res.Reason = "username is already taken"
	case errors.Is(err, tenant.ErrNotFound):
		res.Available = true
	default:
		return nil, err
	}
	return res, nil
}

var _ ports.UsernameService = (*UsernameService)(nil)
