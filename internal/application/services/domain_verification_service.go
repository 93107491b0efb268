package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// DefaultVerificationRecordPrefix is the label the TXT record lives under.
const DefaultVerificationRecordPrefix = "_portfolio-verification"

// DomainVerificationService proves control of a custom domain through a TXT
// record carrying the tenant's verification token.
type DomainVerificationService struct {
	repo         ports.TenantRepository
	resolver     ports.TXTResolver
	recordPrefix string
	logger       *logrus.Logger
}

func NewDomainVerificationService(repo ports.TenantRepository, resolver ports.TXTResolver, recordPrefix string, logger *logrus.Logger) *DomainVerificationService {
	if recordPrefix == "" {
		recordPrefix = DefaultVerificationRecordPrefix
	}
	return &DomainVerificationService{repo: repo, resolver: resolver, recordPrefix: recordPrefix, logger: logger}
}

// RecordName returns the TXT name checked for hostname.
func (s *DomainVerificationService) RecordName(hostname string) string {
	return s.recordPrefix + "." + hostname
}

// VerifyCustomDomain is idempotent: an already verified domain succeeds
// without a DNS query.
func (s *DomainVerificationService) VerifyCustomDomain(ctx context.Context, accountID uuid.UUID, hostname string) error {
	host, ok := routing.Hostname(hostname)
	if !ok || !strings.Contains(host, ".") {
		return tenant.ErrInvalidDomain
	}

	t, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(t.CustomDomain, host) {
		return tenant.ErrDomainNotOwned
	}
	if t.CustomDomainVerified {
		return nil
	}
	if t.DomainVerificationToken == "" {
		return tenant.ErrNoVerificationToken
	}

	records, err := s.resolver.LookupTXT(ctx, s.RecordName(host))
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"domain": host}).WithError(err).Warn("TXT lookup failed")
		}
		return fmt.Errorf("%w: %v", tenant.ErrVerificationLookup, err)
	}
	if !containsToken(records, t.DomainVerificationToken) {
		return tenant.ErrVerificationNotFound
	}

	if err := s.repo.MarkCustomDomainVerified(ctx, accountID); err != nil {
		return fmt.Errorf("failed to mark domain verified: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"domain": host, "account_id": accountID}).Info("custom domain verified")
	}
	return nil
}

func containsToken(records []string, token string) bool {
	for _, r := range records {
		if strings.TrimSpace(strings.Trim(r, `"`)) == token {
			return true
		}
	}
	return false
}

var _ ports.DomainVerificationService = (*DomainVerificationService)(nil)
