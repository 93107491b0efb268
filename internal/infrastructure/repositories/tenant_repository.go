package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/db"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const tenantColumns = `account_id, subdomain, display_name, plan,
		COALESCE(custom_domain, '') AS custom_domain, custom_domain_verified,
		domain_verification_token, created_at, updated_at`

// TenantRepository reads the tenant directory from Postgres.
type TenantRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewTenantRepository(database *db.Database, logger *logrus.Logger) *TenantRepository {
	return &TenantRepository{
		db:     database,
		logger: logger,
	}
}

// GetBySubdomain retrieves a tenant by its subdomain, case-insensitively.
func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + `
		FROM tenants
		WHERE LOWER(subdomain) = $1`
	return r.getOne(ctx, query, strings.ToLower(subdomain))
}

// GetByCustomDomain retrieves the tenant owning hostname. With verifiedOnly set,
// pending domains are treated as misses.
func (r *TenantRepository) GetByCustomDomain(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + `
		FROM tenants
		WHERE LOWER(custom_domain) = $1`
	if verifiedOnly {
		query += ` AND custom_domain_verified = TRUE`
	}
	return r.getOne(ctx, query, strings.ToLower(hostname))
}

func (r *TenantRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*tenant.Tenant, error) {
	query := `SELECT ` + tenantColumns + `
		FROM tenants
		WHERE account_id = $1`
	return r.getOne(ctx, query, accountID)
}

// MarkCustomDomainVerified flips the verification flag of the account's custom domain.
func (r *TenantRepository) MarkCustomDomainVerified(ctx context.Context, accountID uuid.UUID) error {
	query := `
		UPDATE tenants
		SET custom_domain_verified = TRUE, updated_at = NOW()
		WHERE account_id = $1 AND custom_domain IS NOT NULL`

	result, err := r.db.DB.ExecContext(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("failed to mark custom domain verified: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return tenant.ErrNotFound
	}
	return nil
}

func (r *TenantRepository) getOne(ctx context.Context, query string, arg any) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := r.db.DB.GetContext(ctx, &t, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithError(err).Error("tenant directory query failed")
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return &t, nil
}

var _ ports.TenantRepository = (*TenantRepository)(nil)
