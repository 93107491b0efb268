// Package mocks holds lightweight function-field test doubles for the ports.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/foliohost/portfolio-saas/internal/core/domain/analytics"
	"github.com/foliohost/portfolio-saas/internal/core/domain/auth"
	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/domain/tenant"
	"github.com/foliohost/portfolio-saas/internal/core/domain/verification"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/google/uuid"
)

// TenantRepositoryMock is a lightweight mock for TenantRepository
type TenantRepositoryMock struct {
	GetBySubdomainFn           func(ctx context.Context, subdomain string) (*tenant.Tenant, error)
	GetByCustomDomainFn        func(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error)
	GetByAccountIDFn           func(ctx context.Context, accountID uuid.UUID) (*tenant.Tenant, error)
	MarkCustomDomainVerifiedFn func(ctx context.Context, accountID uuid.UUID) error

	mu    sync.Mutex
	Calls map[string]int
}

func (m *TenantRepositoryMock) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[name]++
}

// CallCount returns how many times the named method ran.
func (m *TenantRepositoryMock) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[name]
}

func (m *TenantRepositoryMock) GetBySubdomain(ctx context.Context, subdomain string) (*tenant.Tenant, error) {
	m.record("GetBySubdomain")
	if m.GetBySubdomainFn != nil {
		return m.GetBySubdomainFn(ctx, subdomain)
	}
	return nil, tenant.ErrNotFound
}
func (m *TenantRepositoryMock) GetByCustomDomain(ctx context.Context, hostname string, verifiedOnly bool) (*tenant.Tenant, error) {
	m.record("GetByCustomDomain")
	if m.GetByCustomDomainFn != nil {
		return m.GetByCustomDomainFn(ctx, hostname, verifiedOnly)
	}
	return nil, tenant.ErrNotFound
}
func (m *TenantRepositoryMock) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*tenant.Tenant, error) {
	m.record("GetByAccountID")
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, tenant.ErrNotFound
}
func (m *TenantRepositoryMock) MarkCustomDomainVerified(ctx context.Context, accountID uuid.UUID) error {
	m.record("MarkCustomDomainVerified")
	if m.MarkCustomDomainVerifiedFn != nil {
		return m.MarkCustomDomainVerifiedFn(ctx, accountID)
	}
	return nil
}

// TenantResolverMock resolves from fixed maps unless the Fn fields are set.
type TenantResolverMock struct {
	BySubdomain           map[string]*tenant.Tenant
	ByCustomDomain        map[string]*tenant.Tenant
	ResolveSubdomainFn    func(ctx context.Context, name string) *tenant.Tenant
	ResolveCustomDomainFn func(ctx context.Context, hostname string) *tenant.Tenant
}

func (m *TenantResolverMock) ResolveSubdomain(ctx context.Context, name string) *tenant.Tenant {
	if m.ResolveSubdomainFn != nil {
		return m.ResolveSubdomainFn(ctx, name)
	}
	return m.BySubdomain[name]
}
func (m *TenantResolverMock) ResolveCustomDomain(ctx context.Context, hostname string) *tenant.Tenant {
	if m.ResolveCustomDomainFn != nil {
		return m.ResolveCustomDomainFn(ctx, hostname)
	}
	return m.ByCustomDomain[hostname]
}

// SessionServiceMock is a mock for SessionService
type SessionServiceMock struct {
	SessionFromTokenFn func(ctx context.Context, token string) *auth.Session
}

func (m *SessionServiceMock) SessionFromToken(ctx context.Context, token string) *auth.Session {
	if m.SessionFromTokenFn != nil {
		return m.SessionFromTokenFn(ctx, token)
	}
	return nil
}

// RateLimitStoreMock is a mock for RateLimitStore
type RateLimitStoreMock struct {
	CheckFn func(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error)
	SweepFn func(ctx context.Context) (int, error)
}

func (m *RateLimitStoreMock) Check(ctx context.Context, key ratelimit.Key, policy ratelimit.Policy) (ratelimit.Result, error) {
	if m.CheckFn != nil {
		return m.CheckFn(ctx, key, policy)
	}
	return ratelimit.Evaluate(1, policy, time.Now().Add(policy.Window)), nil
}
func (m *RateLimitStoreMock) Sweep(ctx context.Context) (int, error) {
	if m.SweepFn != nil {
		return m.SweepFn(ctx)
	}
	return 0, nil
}

// RateLimiterServiceMock allows everything unless CheckFn says otherwise.
type RateLimiterServiceMock struct {
	CheckFn func(ctx context.Context, identifier string, category ratelimit.Category) ratelimit.Result
}

func (m *RateLimiterServiceMock) Check(ctx context.Context, identifier string, category ratelimit.Category) ratelimit.Result {
	if m.CheckFn != nil {
		return m.CheckFn(ctx, identifier, category)
	}
	return ratelimit.Result{Allowed: true, Count: 1, Limit: 100, Remaining: 99, ResetAt: time.Now().Add(time.Minute)}
}
func (m *RateLimiterServiceMock) RunSweeper(ctx context.Context, interval time.Duration) {}

// RoutingServiceMock is a mock for RoutingService
type RoutingServiceMock struct {
	RouteFn func(ctx context.Context, req ports.RouteRequest) routing.Decision
}

func (m *RoutingServiceMock) Route(ctx context.Context, req ports.RouteRequest) routing.Decision {
	if m.RouteFn != nil {
		return m.RouteFn(ctx, req)
	}
	return routing.PassThrough{}
}

// EmailServiceMock captures sent codes.
type EmailServiceMock struct {
	SendResumeVerificationCodeFn func(ctx context.Context, email, code, portfolioName string) error

	mu   sync.Mutex
	Sent []SentCode
}

type SentCode struct {
	Email, Code, PortfolioName string
}

func (m *EmailServiceMock) SendResumeVerificationCode(ctx context.Context, email, code, portfolioName string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentCode{Email: email, Code: code, PortfolioName: portfolioName})
	m.mu.Unlock()
	if m.SendResumeVerificationCodeFn != nil {
		return m.SendResumeVerificationCodeFn(ctx, email, code, portfolioName)
	}
	return nil
}

// LastCode returns the most recently sent code or "".
func (m *EmailServiceMock) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Code
}

// VerificationServiceMock is a mock for VerificationService
type VerificationServiceMock struct {
	RequestCodeFn func(ctx context.Context, subdomain, email string) error
	VerifyCodeFn  func(ctx context.Context, subdomain, email, code string) error
}

func (m *VerificationServiceMock) RequestCode(ctx context.Context, subdomain, email string) error {
	if m.RequestCodeFn != nil {
		return m.RequestCodeFn(ctx, subdomain, email)
	}
	return nil
}
func (m *VerificationServiceMock) VerifyCode(ctx context.Context, subdomain, email, code string) error {
	if m.VerifyCodeFn != nil {
		return m.VerifyCodeFn(ctx, subdomain, email, code)
	}
	return nil
}

// VerificationCodeRepositoryMock is an in-memory VerificationCodeRepository.
type VerificationCodeRepositoryMock struct {
	SaveFn func(ctx context.Context, code *verification.Code) error

	mu    sync.Mutex
	codes map[string]*verification.Code
}

func codeKey(subdomain, email string) string { return subdomain + "|" + email }

func (m *VerificationCodeRepositoryMock) Save(ctx context.Context, code *verification.Code) error {
	if m.SaveFn != nil {
		if err := m.SaveFn(ctx, code); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = make(map[string]*verification.Code)
	}
	cp := *code
	m.codes[codeKey(code.Subdomain, code.Email)] = &cp
	return nil
}
func (m *VerificationCodeRepositoryMock) Get(ctx context.Context, subdomain, email string) (*verification.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[codeKey(subdomain, email)]
	if !ok || time.Now().After(c.ExpiresAt) {
		return nil, verification.ErrCodeNotFound
	}
	cp := *c
	return &cp, nil
}
func (m *VerificationCodeRepositoryMock) IncrementAttempts(ctx context.Context, subdomain, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[codeKey(subdomain, email)]
	if !ok {
		return 0, verification.ErrCodeNotFound
	}
	c.Attempts++
	return c.Attempts, nil
}
func (m *VerificationCodeRepositoryMock) Delete(ctx context.Context, subdomain, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, codeKey(subdomain, email))
	return nil
}

// AnalyticsRepositoryMock is a mock for AnalyticsRepository
type AnalyticsRepositoryMock struct {
	IncrementPageViewFn func(ctx context.Context, accountID uuid.UUID, path string, at time.Time) error
	PageViewsFn         func(ctx context.Context, accountID uuid.UUID, day time.Time) (int64, error)
	PathViewsFn         func(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int64, error)
}

func (m *AnalyticsRepositoryMock) IncrementPageView(ctx context.Context, accountID uuid.UUID, path string, at time.Time) error {
	if m.IncrementPageViewFn != nil {
		return m.IncrementPageViewFn(ctx, accountID, path, at)
	}
	return nil
}
func (m *AnalyticsRepositoryMock) PageViews(ctx context.Context, accountID uuid.UUID, day time.Time) (int64, error) {
	if m.PageViewsFn != nil {
		return m.PageViewsFn(ctx, accountID, day)
	}
	return 0, nil
}
func (m *AnalyticsRepositoryMock) PathViews(ctx context.Context, accountID uuid.UUID, day time.Time) (map[string]int64, error) {
	if m.PathViewsFn != nil {
		return m.PathViewsFn(ctx, accountID, day)
	}
	return map[string]int64{}, nil
}

// AnalyticsServiceMock is a mock for AnalyticsService
type AnalyticsServiceMock struct {
	RecordPageViewFn func(ctx context.Context, subdomain, path string) error
	SummaryFn        func(ctx context.Context, accountID uuid.UUID, days int) (*analytics.Summary, error)
}

func (m *AnalyticsServiceMock) RecordPageView(ctx context.Context, subdomain, path string) error {
	if m.RecordPageViewFn != nil {
		return m.RecordPageViewFn(ctx, subdomain, path)
	}
	return nil
}
func (m *AnalyticsServiceMock) Summary(ctx context.Context, accountID uuid.UUID, days int) (*analytics.Summary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, accountID, days)
	}
	return &analytics.Summary{}, nil
}

// TXTResolverMock answers from a fixed record set.
type TXTResolverMock struct {
	Records     map[string][]string
	LookupTXTFn func(ctx context.Context, name string) ([]string, error)
}

func (m *TXTResolverMock) LookupTXT(ctx context.Context, name string) ([]string, error) {
	if m.LookupTXTFn != nil {
		return m.LookupTXTFn(ctx, name)
	}
	return m.Records[name], nil
}

// DomainVerificationServiceMock is a mock for DomainVerificationService
type DomainVerificationServiceMock struct {
	VerifyCustomDomainFn func(ctx context.Context, accountID uuid.UUID, hostname string) error
}

func (m *DomainVerificationServiceMock) VerifyCustomDomain(ctx context.Context, accountID uuid.UUID, hostname string) error {
	if m.VerifyCustomDomainFn != nil {
		return m.VerifyCustomDomainFn(ctx, accountID, hostname)
	}
	return nil
}

// UsernameServiceMock is a mock for UsernameService
type UsernameServiceMock struct {
	CheckUsernameFn func(ctx context.Context, username string) (*ports.UsernameAvailability, error)
}

func (m *UsernameServiceMock) CheckUsername(ctx context.Context, username string) (*ports.UsernameAvailability, error) {
	if m.CheckUsernameFn != nil {
		return m.CheckUsernameFn(ctx, username)
	}
	return &ports.UsernameAvailability{Username: username, Available: true}, nil
}

// CVAnalyzerMock is a mock for CVAnalyzer
type CVAnalyzerMock struct {
	AnalyzeCVFn func(ctx context.Context, text string) (*ports.CVAnalysis, error)
}

func (m *CVAnalyzerMock) AnalyzeCV(ctx context.Context, text string) (*ports.CVAnalysis, error) {
	if m.AnalyzeCVFn != nil {
		return m.AnalyzeCVFn(ctx, text)
	}
	return &ports.CVAnalysis{Summary: text}, nil
}

// CacheMock is an in-memory ports.Cache that ignores TTLs.
type CacheMock struct {
	GetErr error

	mu      sync.Mutex
	entries map[string][]byte
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.entries[key]
	return b, ok, nil
}
func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = value
	return nil
}
func (m *CacheMock) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Has reports whether key is cached.
func (m *CacheMock) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

var (
	_ ports.TenantRepository           = (*TenantRepositoryMock)(nil)
	_ ports.TenantResolver             = (*TenantResolverMock)(nil)
	_ ports.SessionService             = (*SessionServiceMock)(nil)
	_ ports.RateLimitStore             = (*RateLimitStoreMock)(nil)
	_ ports.RateLimiterService         = (*RateLimiterServiceMock)(nil)
	_ ports.RoutingService             = (*RoutingServiceMock)(nil)
	_ ports.EmailService               = (*EmailServiceMock)(nil)
	_ ports.VerificationService        = (*VerificationServiceMock)(nil)
	_ ports.VerificationCodeRepository = (*VerificationCodeRepositoryMock)(nil)
	_ ports.AnalyticsRepository        = (*AnalyticsRepositoryMock)(nil)
	_ ports.AnalyticsService           = (*AnalyticsServiceMock)(nil)
	_ ports.TXTResolver                = (*TXTResolverMock)(nil)
	_ ports.DomainVerificationService  = (*DomainVerificationServiceMock)(nil)
	_ ports.UsernameService            = (*UsernameServiceMock)(nil)
	_ ports.CVAnalyzer                 = (*CVAnalyzerMock)(nil)
	_ ports.Cache                      = (*CacheMock)(nil)
)
