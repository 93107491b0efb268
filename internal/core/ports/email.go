package ports

import (
	"context"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendResumeVerificationCode(ctx context.Context, email, code, portfolioName string) error
}
