package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Redis     RedisConfig
	Log       LogConfig
	Routing   RoutingConfig
	RateLimit RateLimitConfig
	DNS       DNSConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MigrationsPath  string
}

type JWTConfig struct {
	Secret     string
	SessionTTL time.Duration
	CookieName string
}

type EmailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	CompanyName    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

// RoutingConfig is the static input of host classification and the page gates.
type RoutingConfig struct {
	RootDomain         string
	PublicBaseURL      string
	ReservedSubdomains []string
	LocalDevSuffixes   []string
	PreviewSuffixes    []string
	SkipPrefixes       []string
	DashboardPrefix    string
	LoginPath          string
	SignupPaths        []string
	LockedPath         string
	TenantCacheTTL     time.Duration
}

// RatePolicyConfig is one category preset: Limit requests per Window.
type RatePolicyConfig struct {
	Limit  int
	Window time.Duration
}

type RateLimitConfig struct {
	Backend       string // memory or redis
	KeyPrefix     string
	SweepInterval time.Duration
	Policies      map[string]RatePolicyConfig
}

type DNSConfig struct {
	Resolvers    []string // host:port upstreams tried in order
	Timeout      time.Duration
	RecordPrefix string
}

// DefaultRatePolicies are the category presets used when no override is set.
var DefaultRatePolicies = map[string]RatePolicyConfig{
	"pageview":           {Limit: 60, Window: time.Minute},
	"verification_email": {Limit: 3, Window: 15 * time.Minute},
	"verification_code":  {Limit: 10, Window: 15 * time.Minute},
	"ai_parse":           {Limit: 5, Window: time.Hour},
	"username_check":     {Limit: 30, Window: time.Minute},
	"domain_verify":      {Limit: 10, Window: time.Minute},
}

var defaultReservedSubdomains = []string{
	"www", "app", "api", "admin", "dashboard", "login", "signup", "auth",
	"mail", "static", "assets", "cdn", "blog", "help", "support", "docs",
	"status", "billing", "pricing", "u", "domain", "locked",
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	rootDomain, err := getEnvRequired("ROOT_DOMAIN")
	if err != nil {
		return nil, err
	}
	jwtSecret, err := getEnvRequired("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	sendGridKey, err := getEnvRequired("SENDGRID_API_KEY")
	if err != nil {
		return nil, err
	}

	policies, err := loadRatePolicies()
	if err != nil {
		return nil, err
	}

	rootDomain = strings.ToLower(strings.TrimSpace(rootDomain))

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", nil),
			Environment:    getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "portfolio_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "./migrations"),
		},
		JWT: JWTConfig{
			Secret:     jwtSecret,
			SessionTTL: getDurationEnv("SESSION_TTL", 7*24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		},
		Email: EmailConfig{
			SendGridAPIKey: sendGridKey,
			FromEmail:      getEnv("FROM_EMAIL", "noreply@"+rootDomain),
			FromName:       getEnv("FROM_NAME", "Portfolio"),
			CompanyName:    getEnv("COMPANY_NAME", "Portfolio"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Routing: RoutingConfig{
			RootDomain:         rootDomain,
			PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "https://"+rootDomain), "/"),
			ReservedSubdomains: getListEnv("RESERVED_SUBDOMAINS", defaultReservedSubdomains),
			LocalDevSuffixes:   getListEnv("LOCAL_DEV_SUFFIXES", []string{"localhost", "lvh.me"}),
			PreviewSuffixes:    getListEnv("PREVIEW_SUFFIXES", []string{"vercel.app"}),
			SkipPrefixes:       getListEnv("ROUTING_SKIP_PREFIXES", []string{"/api/", "/static/", "/assets/", "/health", "/metrics", "/favicon.ico"}),
			DashboardPrefix:    getEnv("DASHBOARD_PREFIX", "/dashboard"),
			LoginPath:          getEnv("LOGIN_PATH", "/login"),
			SignupPaths:        getListEnv("SIGNUP_PATHS", []string{"/signup"}),
			LockedPath:         getEnv("LOCKED_PATH", "/locked"),
			TenantCacheTTL:     getDurationEnv("TENANT_CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			Backend:       getEnv("RATE_LIMIT_BACKEND", "memory"),
			KeyPrefix:     getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit"),
			SweepInterval: getDurationEnv("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
			Policies:      policies,
		},
		DNS: DNSConfig{
			Resolvers:    getListEnv("DNS_RESOLVERS", []string{"1.1.1.1:53", "8.8.8.8:53"}),
			Timeout:      getDurationEnv("DNS_TIMEOUT", 3*time.Second),
			RecordPrefix: getEnv("DNS_VERIFICATION_PREFIX", "_portfolio-verification"),
		},
	}

	if cfg.RateLimit.Backend != "memory" && cfg.RateLimit.Backend != "redis" {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BACKEND %q: want memory or redis", cfg.RateLimit.Backend)
	}

	// Build database DSN
	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	return cfg, nil
}

// loadRatePolicies starts from DefaultRatePolicies and applies RATE_LIMIT_<CATEGORY>
// overrides of the form "limit/window", e.g. RATE_LIMIT_PAGEVIEW=120/1m.
func loadRatePolicies() (map[string]RatePolicyConfig, error) {
	policies := make(map[string]RatePolicyConfig, len(DefaultRatePolicies))
	for category, def := range DefaultRatePolicies {
		key := "RATE_LIMIT_" + strings.ToUpper(category)
		raw := os.Getenv(key)
		if raw == "" {
			policies[category] = def
			continue
		}
		p, err := ParseRatePolicy(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		policies[category] = p
	}
	return policies, nil
}

// ParseRatePolicy parses "limit/window" such as "5/15m".
func ParseRatePolicy(raw string) (RatePolicyConfig, error) {
	limitPart, windowPart, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return RatePolicyConfig{}, fmt.Errorf("expected limit/window, got %q", raw)
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitPart))
	if err != nil || limit <= 0 {
		return RatePolicyConfig{}, fmt.Errorf("limit must be a positive integer, got %q", limitPart)
	}
	window, err := time.ParseDuration(strings.TrimSpace(windowPart))
	if err != nil || window <= 0 {
		return RatePolicyConfig{}, fmt.Errorf("window must be a positive duration, got %q", windowPart)
	}
	return RatePolicyConfig{Limit: limit, Window: window}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv reads a comma separated list; blank entries are dropped.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
