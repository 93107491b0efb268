package ports

import (
	"context"

	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
)

// SessionService turns a session token issued by the dashboard into a Session.
type SessionService interface {
	// SessionFromToken returns nil for a missing, invalid or expired token.
	SessionFromToken(ctx context.Context, token string) *auth.Session
}
