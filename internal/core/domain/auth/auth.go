package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the authenticated account behind a request. A nil *Session means
// the request is anonymous.
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether s identifies an account. It is safe on a nil receiver.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != uuid.Nil
}

// Claims represents the JWT session claims
type Claims struct {
	UserID uuid.UUID `json:"user_id"`

	jwt.RegisteredClaims
}
