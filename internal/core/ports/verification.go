package ports

import (
	"context"

	"github.com/foliohost/portfolio-saas/internal/core/domain/verification"
)

// VerificationCodeRepository stores pending resume download codes.
// Implementations may use Redis or another ephemeral store.
type VerificationCodeRepository interface {
	Save(ctx context.Context, code *verification.Code) error
	Get(ctx context.Context, subdomain, email string) (*verification.Code, error)
	// IncrementAttempts records a failed attempt and returns the new attempt count.
	IncrementAttempts(ctx context.Context, subdomain, email string) (int, error)
	Delete(ctx context.Context, subdomain, email string) error
}

// VerificationService issues and checks resume download codes.
type VerificationService interface {
	RequestCode(ctx context.Context, subdomain, email string) error
	VerifyCode(ctx context.Context, subdomain, email, code string) error
}
