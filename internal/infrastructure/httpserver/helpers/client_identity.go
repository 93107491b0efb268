package helpers

import (
	"net/http"
	"strings"

	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
)

// ClientIdentity derives the rate-limit key for a request: the first entry of
// X-Forwarded-For, then X-Real-IP, then ratelimit.UnknownIdentity.
//
// Both headers are client controlled unless a trusted proxy overwrites them, so
// the value is a best-effort throttling key and never an authentication signal.
func ClientIdentity(h http.Header) string {
	if h == nil {
		return ratelimit.UnknownIdentity
	}
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(h.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	return ratelimit.UnknownIdentity
}
