// Package ratelimit holds the fixed-window rate limiting model shared by the
// limiter service and its stores.
package ratelimit

import "time"

// Category names an independently counted endpoint family.
type Category string

const (
	CategoryPageView          Category = "pageview"
	CategoryVerificationEmail Category = "verification_email"
	CategoryVerificationCode  Category = "verification_code"
	CategoryAIParse           Category = "ai_parse"
	CategoryUsernameCheck     Category = "username_check"
	CategoryDomainVerify      Category = "domain_verify"
)

// UnknownIdentity is the identifier used when a client cannot be identified.
const UnknownIdentity = "unknown"

// Key addresses one counter. Two categories never share a counter even for the
// same identifier.
type Key struct {
	Category   Category
	Identifier string
}

func (k Key) String() string {
	return string(k.Category) + ":" + k.Identifier
}

// Policy is the limit applied to one category.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Valid reports whether the policy can be enforced.
func (p Policy) Valid() bool {
	return p.Limit > 0 && p.Window > 0
}

// Record is the live fixed-window counter for a key.
type Record struct {
	Count   int
	ResetAt time.Time
}

// Expired reports whether the window has elapsed at now.
func (r Record) Expired(now time.Time) bool {
	return !now.Before(r.ResetAt)
}

// Result is the outcome of one limiter check.
type Result struct {
	Allowed   bool
	Count     int
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Evaluate turns the post-increment count into a Result.
func Evaluate(count int, p Policy, resetAt time.Time) Result {
	remaining := p.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= p.Limit,
		Count:     count,
		Limit:     p.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// Denied is the fail-closed result used when a check cannot be completed.
func Denied(p Policy, now time.Time) Result {
	return Result{Allowed: false, Limit: p.Limit, Remaining: 0, ResetAt: now.Add(p.Window)}
}
