// Package routing maps an inbound host and path to a tenant view.
//
// Everything in this package is pure: classification and gate decisions depend
// only on their inputs and the static configuration they were built with.
package routing

import (
	"errors"
	"net"
	"strings"
)

// ErrRootDomainRequired is returned when a classifier is built without a root domain.
var ErrRootDomainRequired = errors.New("routing: root domain is required")

// HostClassification is one of RootDomain, ReservedSubdomain, TenantSubdomain,
// AmbiguousSubdomain, CustomDomain or Local.
type HostClassification interface {
	isHostClassification()
	Kind() string
}

// RootDomain is the product's own domain (or a platform preview domain).
type RootDomain struct{}

// ReservedSubdomain is a subdomain of the root that belongs to the product.
type ReservedSubdomain struct{ Name string }

// TenantSubdomain is a single-label subdomain that may name a tenant.
type TenantSubdomain struct{ Name string }

// AmbiguousSubdomain is a multi-label name under the root domain. Nested tenants
// do not exist, so it never resolves.
type AmbiguousSubdomain struct{ Hostname string }

// CustomDomain is any other hostname; it may be a tenant's custom domain.
type CustomDomain struct{ Hostname string }

// Local is a bare local-development host or an unclassifiable host.
type Local struct{}

func (RootDomain) isHostClassification()         {}
func (ReservedSubdomain) isHostClassification()  {}
func (TenantSubdomain) isHostClassification()    {}
func (AmbiguousSubdomain) isHostClassification() {}
func (CustomDomain) isHostClassification()       {}
func (Local) isHostClassification()              {}

func (RootDomain) Kind() string         { return "root" }
func (ReservedSubdomain) Kind() string  { return "reserved" }
func (TenantSubdomain) Kind() string    { return "tenant" }
func (AmbiguousSubdomain) Kind() string { return "ambiguous" }
func (CustomDomain) Kind() string       { return "custom" }
func (Local) Kind() string              { return "local" }

// HostConfig is the static input of the classifier.
type HostConfig struct {
	RootDomain       string
	Reserved         []string
	LocalDevSuffixes []string
	PreviewSuffixes  []string
}

// HostClassifier classifies Host header values. It is immutable after construction
// and safe for concurrent use.
type HostClassifier struct {
	root     string
	reserved map[string]struct{}
	local    []string
	preview  []string
}

// NewHostClassifier validates cfg and builds a classifier.
func NewHostClassifier(cfg HostConfig) (*HostClassifier, error) {
	root := normalizeName(cfg.RootDomain)
	if root == "" {
		return nil, ErrRootDomainRequired
	}
	c := &HostClassifier{
		root:     root,
		reserved: make(map[string]struct{}, len(cfg.Reserved)),
	}
	for _, name := range cfg.Reserved {
		if n := normalizeName(name); n != "" {
			c.reserved[n] = struct{}{}
		}
	}
	c.local = normalizeSuffixes(cfg.LocalDevSuffixes)
	c.preview = normalizeSuffixes(cfg.PreviewSuffixes)
	return c, nil
}

// IsReserved reports whether name is in the reserved set (case-insensitive).
func (c *HostClassifier) IsReserved(name string) bool {
	_, ok := c.reserved[normalizeName(name)]
	return ok
}

// Classify maps a raw Host header value to its classification.
func (c *HostClassifier) Classify(hostHeader string) HostClassification {
	host, ok := Hostname(hostHeader)
	if !ok {
		return Local{}
	}

	for _, suffix := range c.local {
		if host == suffix {
			return Local{}
		}
		if strings.HasSuffix(host, "."+suffix) {
			first, _, _ := strings.Cut(host, ".")
			if first == "" {
				return Local{}
			}
			return c.subdomain(first)
		}
	}

	if host == c.root {
		return RootDomain{}
	}

	if prefix, found := strings.CutSuffix(host, "."+c.root); found {
		if strings.Contains(prefix, ".") {
			return AmbiguousSubdomain{Hostname: host}
		}
		return c.subdomain(prefix)
	}

	for _, suffix := range c.preview {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return RootDomain{}
		}
	}

	return CustomDomain{Hostname: host}
}

func (c *HostClassifier) subdomain(name string) HostClassification {
	if c.IsReserved(name) {
		return ReservedSubdomain{Name: name}
	}
	return TenantSubdomain{Name: name}
}

// Hostname normalizes a Host header value: lower-cased, port and trailing dot
// stripped. ok is false for empty or syntactically invalid hosts and for IP
// literals, none of which can name a tenant.
func Hostname(hostHeader string) (string, bool) {
	host := strings.ToLower(strings.TrimSpace(hostHeader))
	if host == "" {
		return "", false
	}

	if strings.HasPrefix(host, "[") {
		// bracketed IPv6, with or without port
		return "", false
	}
	if strings.Count(host, ":") == 1 {
		host = host[:strings.LastIndex(host, ":")]
	}
	host = strings.TrimSuffix(host, ".")

	if host == "" || net.ParseIP(host) != nil {
		return "", false
	}
	if !validHostname(host) {
		return "", false
	}
	return host, true
}

func validHostname(host string) bool {
	if len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		for i := 0; i < len(label); i++ {
			ch := label[i]
			switch {
			case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			default:
				return false
			}
		}
	}
	return true
}

func normalizeName(s string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
}

func normalizeSuffixes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := strings.TrimPrefix(normalizeName(s), "."); n != "" {
			out = append(out, n)
		}
	}
	return out
}
