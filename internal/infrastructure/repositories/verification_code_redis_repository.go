package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/domain/verification"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
)

const (
	// resumeCodePrefix prefixes Redis keys for resume download codes.
	// It's a static prefix and not a credential; silence gosec G101 here.
	resumeCodePrefix = "app:resume_code" //nolint:gosec
)

// incrementIfExistsScript bumps the attempt counter without resurrecting an
// expired code. Returns -1 when the code is gone.
var incrementIfExistsScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return -1
end
return redis.call('HINCRBY', KEYS[1], 'attempts', 1)
`)

// VerificationCodeRedisRepository stores pending codes as Redis hashes that
// expire together with the code.
type VerificationCodeRedisRepository struct {
	redisClient redis.Cmdable
	logger      *logrus.Logger
}

func NewVerificationCodeRedisRepository(redisClient redis.Cmdable, logger *logrus.Logger) *VerificationCodeRedisRepository {
	return &VerificationCodeRedisRepository{redisClient: redisClient, logger: logger}
}

func (r *VerificationCodeRedisRepository) key(subdomain, email string) string {
	return fmt.Sprintf("%s:%s:%s", resumeCodePrefix, subdomain, verification.NormalizeEmail(email))
}

var _ ports.VerificationCodeRepository = (*VerificationCodeRedisRepository)(nil)

// Save replaces any pending code for the same (subdomain, email).
func (r *VerificationCodeRedisRepository) Save(ctx context.Context, c *verification.Code) error {
	if !time.Now().Before(c.ExpiresAt) {
		return fmt.Errorf("verification code already expired")
	}
	k := r.key(c.Subdomain, c.Email)

	pipe := r.redisClient.TxPipeline()
	pipe.Del(ctx, k)
	pipe.HSet(ctx, k,
		"code_hash", c.CodeHash,
		"attempts", c.Attempts,
		"expires_at", c.ExpiresAt.UnixMilli(),
	)
	pipe.PExpireAt(ctx, k, c.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store verification code in redis: %w", err)
	}
	return nil
}

func (r *VerificationCodeRedisRepository) Get(ctx context.Context, subdomain, email string) (*verification.Code, error) {
	fields, err := r.redisClient.HGetAll(ctx, r.key(subdomain, email)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get verification code from redis: %w", err)
	}
	if len(fields) == 0 {
		return nil, verification.ErrCodeNotFound
	}

	attempts, _ := strconv.Atoi(fields["attempts"])
	expiresMs, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt verification code record: %w", err)
	}
	return &verification.Code{
		Subdomain: subdomain,
		Email:     verification.NormalizeEmail(email),
		CodeHash:  fields["code_hash"],
		Attempts:  attempts,
		ExpiresAt: time.UnixMilli(expiresMs),
	}, nil
}

func (r *VerificationCodeRedisRepository) IncrementAttempts(ctx context.Context, subdomain, email string) (int, error) {
	n, err := incrementIfExistsScript.Run(ctx, r.redisClient, []string{r.key(subdomain, email)}).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to record verification attempt: %w", err)
	}
	if n < 0 {
		return 0, verification.ErrCodeNotFound
	}
	return n, nil
}

func (r *VerificationCodeRedisRepository) Delete(ctx context.Context, subdomain, email string) error {
	if err := r.redisClient.Del(ctx, r.key(subdomain, email)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete verification code: %w", err)
	}
	return nil
}
