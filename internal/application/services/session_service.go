package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	config "github.com/foliohost/portfolio-saas/configs"
	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

// SessionService validates the HS256 session tokens issued by the dashboard.
type SessionService struct {
	jwtConfig *config.JWTConfig
	logger    *logrus.Logger
	now       func() time.Time
}

func NewSessionService(jwtConfig *config.JWTConfig, logger *logrus.Logger) *SessionService {
	return &SessionService{jwtConfig: jwtConfig, logger: logger, now: time.Now}
}

// SessionFromToken returns the session behind token, or nil when the token is
// empty, malformed, expired or signed with anything but HMAC.
func (s *SessionService) SessionFromToken(_ context.Context, tokenString string) *auth.Session {
	if tokenString == "" {
		return nil
	}
	claims, err := s.parse(tokenString)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Debug("session token rejected")
		}
		return nil
	}

	session := &auth.Session{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	if !session.Valid() {
		return nil
	}
	return session
}

func (s *SessionService) parse(tokenString string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

var _ ports.SessionService = (*SessionService)(nil)
