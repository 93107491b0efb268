package verification

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCodeNotFound    = errors.New("verification code not found or expired")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrInvalidEmail    = errors.New("invalid email address")
)

const (
	CodeLength  = 6
	CodeTTL     = 10 * time.Minute
	MaxAttempts = 5
)

// Code is a pending resume download code. Only the hash of the code is kept.
type Code struct {
	Subdomain string    `json:"subdomain"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"code_hash"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NormalizeEmail lower-cases and trims an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
