package ports

import (
	"context"

	"github.com/google/uuid"
)

// TXTResolver looks up TXT records for a fully qualified name.
type TXTResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// DomainVerificationService proves control of a tenant's custom domain.
type DomainVerificationService interface {
	VerifyCustomDomain(ctx context.Context, accountID uuid.UUID, hostname string) error
}
