package tenant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by the directory when no tenant matches a lookup.
var ErrNotFound = errors.New("tenant not found")

var (
	ErrInvalidDomain        = errors.New("invalid domain name")
	ErrDomainNotOwned       = errors.New("domain is not configured for this account")
	ErrNoVerificationToken  = errors.New("domain has no verification token")
	ErrVerificationNotFound = errors.New("verification TXT record not found")
	ErrVerificationLookup   = errors.New("verification TXT lookup failed")
)

// Tenant is the published-portfolio account as seen by the routing core.
type Tenant struct {
	AccountID               uuid.UUID        `json:"account_id" db:"account_id"`
	Subdomain               string           `json:"subdomain" db:"subdomain"`
	DisplayName             string           `json:"display_name" db:"display_name"`
	Plan                    SubscriptionPlan `json:"plan" db:"plan"`
	CustomDomain            string           `json:"custom_domain,omitempty" db:"custom_domain"`
	CustomDomainVerified    bool             `json:"custom_domain_verified" db:"custom_domain_verified"`
	DomainVerificationToken string           `json:"-" db:"domain_verification_token"`
	CreatedAt               time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at" db:"updated_at"`
}

type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanPro     SubscriptionPlan = "pro"
	PlanPremium SubscriptionPlan = "premium"
)

// IsFree reports whether the plan is the free tier. An unset plan counts as free.
func (p SubscriptionPlan) IsFree() bool {
	return p == "" || SubscriptionPlan(strings.ToLower(string(p))) == PlanFree
}

// IsFreeTier returns true when third parties must not see the public page.
func (t *Tenant) IsFreeTier() bool {
	return t.Plan.IsFree()
}

// IsOwnedBy reports whether accountID owns this tenant.
func (t *Tenant) IsOwnedBy(accountID uuid.UUID) bool {
	return accountID != uuid.Nil && t.AccountID == accountID
}

// ServesCustomDomain reports whether hostname is this tenant's verified custom domain.
func (t *Tenant) ServesCustomDomain(hostname string) bool {
	return t.CustomDomainVerified && t.CustomDomain != "" && strings.EqualFold(t.CustomDomain, hostname)
}
