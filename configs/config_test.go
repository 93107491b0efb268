package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "Example.com")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SENDGRID_API_KEY", "SG.test")
}

func TestLoad_MissingRootDomainFails(t *testing.T) {
	t.Setenv("ROOT_DOMAIN", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SENDGRID_API_KEY", "SG.test")

	cfg, err := Load()
	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "ROOT_DOMAIN")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "example.com", cfg.Routing.RootDomain)
	require.Equal(t, "https://example.com", cfg.Routing.PublicBaseURL)
	require.Contains(t, cfg.Routing.ReservedSubdomains, "www")
	require.Equal(t, "memory", cfg.RateLimit.Backend)
	require.Equal(t, 5*time.Minute, cfg.RateLimit.SweepInterval)
	require.Len(t, cfg.RateLimit.Policies, len(DefaultRatePolicies))
	require.Equal(t, RatePolicyConfig{Limit: 3, Window: 15 * time.Minute}, cfg.RateLimit.Policies["verification_email"])
}

func TestLoad_RatePolicyOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_PAGEVIEW", "120/30s")
	t.Setenv("RESERVED_SUBDOMAINS", "www, admin ,,")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, RatePolicyConfig{Limit: 120, Window: 30 * time.Second}, cfg.RateLimit.Policies["pageview"])
	require.Equal(t, []string{"www", "admin"}, cfg.Routing.ReservedSubdomains)
}

func TestLoad_MalformedRatePolicyFails(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_AI_PARSE", "lots")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "RATE_LIMIT_AI_PARSE")
}

func TestLoad_InvalidBackendFails(t *testing.T) {
	setRequired(t)
	t.Setenv("RATE_LIMIT_BACKEND", "memcached")

	_, err := Load()
	require.Error(t, err)
}

func TestParseRatePolicy(t *testing.T) {
	cases := []struct {
		raw     string
		want    RatePolicyConfig
		wantErr bool
	}{
		{raw: "5/15m", want: RatePolicyConfig{Limit: 5, Window: 15 * time.Minute}},
		{raw: " 10 / 1h ", want: RatePolicyConfig{Limit: 10, Window: time.Hour}},
		{raw: "0/1m", wantErr: true},
		{raw: "5/0s", wantErr: true},
		{raw: "5", wantErr: true},
		{raw: "x/1m", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseRatePolicy(tc.raw)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
