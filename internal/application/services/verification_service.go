package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/domain/verification"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// VerificationService issues the 6-digit codes that gate resume downloads on a
// public portfolio. Codes are stored only as bcrypt hashes.
type VerificationService struct {
	codes        ports.VerificationCodeRepository
	resolver     ports.TenantResolver
	emailService ports.EmailService
	logger       *logrus.Logger
	now          func() time.Time
	hashCost     int
}

func NewVerificationService(codes ports.VerificationCodeRepository, resolver ports.TenantResolver, emailService ports.EmailService, logger *logrus.Logger) *VerificationService {
	return &VerificationService{
		codes:        codes,
		resolver:     resolver,
		emailService: emailService,
		logger:       logger,
		now:          time.Now,
		hashCost:     bcrypt.DefaultCost,
	}
}

func (s *VerificationService) RequestCode(ctx context.Context, subdomain, email string) error {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	email = verification.NormalizeEmail(email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return verification.ErrInvalidEmail
	}
	t := s.resolver.ResolveSubdomain(ctx, subdomain)
	if t == nil {
		return tenant.ErrNotFound
	}

	code, err := generateNumericCode(verification.CodeLength)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash verification code: %w", err)
	}

	record := &verification.Code{
		Subdomain: subdomain,
		Email:     email,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(verification.CodeTTL),
	}
	if err := s.codes.Save(ctx, record); err != nil {
		return err
	}

	name := t.DisplayName
	if name == "" {
		name = t.Subdomain
	}
	if err := s.emailService.SendResumeVerificationCode(ctx, email, code, name); err != nil {
		_ = s.codes.Delete(ctx, subdomain, email)
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subdomain": subdomain}).WithError(err).Error("failed to send resume verification code")
		}
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"subdomain": subdomain}).Info("resume verification code issued")
	}
	return nil
}

// VerifyCode consumes the pending code on success. Every wrong guess counts
// toward verification.MaxAttempts; the code is discarded once they run out.
func (s *VerificationService) VerifyCode(ctx context.Context, subdomain, email, code string) error {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	email = verification.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	pending, err := s.codes.Get(ctx, subdomain, email)
	if err != nil {
		return err
	}
	if !s.now().Before(pending.ExpiresAt) {
		_ = s.codes.Delete(ctx, subdomain, email)
		return verification.ErrCodeNotFound
	}
	if pending.Attempts >= verification.MaxAttempts {
		_ = s.codes.Delete(ctx, subdomain, email)
		return verification.ErrTooManyAttempts
	}

	// bcrypt comparison is constant-time with respect to the candidate.
	if err := bcrypt.CompareHashAndPassword([]byte(pending.CodeHash), []byte(code)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("failed to compare verification code: %w", err)
		}
		attempts, incErr := s.codes.IncrementAttempts(ctx, subdomain, email)
		if incErr != nil {
			return incErr
		}
		if attempts >= verification.MaxAttempts {
			_ = s.codes.Delete(ctx, subdomain, email)
			return verification.ErrTooManyAttempts
		}
		return verification.ErrInvalidCode
	}

	if err := s.codes.Delete(ctx, subdomain, email); err != nil {
		return err
	}
	return nil
}

// generateNumericCode returns a zero-padded, uniformly distributed decimal code.
func generateNumericCode(digits int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

var _ ports.VerificationService = (*VerificationService)(nil)
