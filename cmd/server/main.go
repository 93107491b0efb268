package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/foliohost/portfolio-saas/configs"
	"github.com/foliohost/portfolio-saas/internal/application/services"
	"github.com/foliohost/portfolio-saas/internal/core/domain/ratelimit"
	"github.com/foliohost/portfolio-saas/internal/core/domain/routing"
	"github.com/foliohost/portfolio-saas/internal/core/ports"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/db"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/dnsresolver"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/email"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/health"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver"
	customMiddleware "github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/middleware"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/redis"
	"github.com/foliohost/portfolio-saas/internal/infrastructure/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.WithField("root_domain", cfg.Routing.RootDomain).Info("Starting portfolio router...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	classifier, err := routing.NewHostClassifier(routing.HostConfig{
		RootDomain:       cfg.Routing.RootDomain,
		Reserved:         cfg.Routing.ReservedSubdomains,
		LocalDevSuffixes: cfg.Routing.LocalDevSuffixes,
		PreviewSuffixes:  cfg.Routing.PreviewSuffixes,
	})
	if err != nil {
		logger.Fatal("Invalid routing configuration:", err)
	}

	database, err := db.Open(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()
	logger.Info("Connected to database successfully")

	if err := database.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations:", err)
	}

	redisClient, err := redis.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis successfully")

	// Tenant directory: Postgres behind a Redis cache-aside layer.
	redisCache := redis.NewRedisCache(redisClient, "appcache")
	tenantRepo := repositories.NewCachingTenantRepository(
		repositories.NewTenantRepository(database, logger),
		redisCache,
		cfg.Routing.TenantCacheTTL,
	)

	var rateLimitStore ports.RateLimitStore
	switch cfg.RateLimit.Backend {
	case "redis":
		rateLimitStore = repositories.NewRateLimitRedisRepository(redisClient, cfg.RateLimit.KeyPrefix)
	default:
		rateLimitStore = repositories.NewRateLimitMemoryRepository()
	}
	rateLimiter := services.NewRateLimiterService(rateLimitStore, ratePolicies(cfg.RateLimit.Policies), logger)
	go rateLimiter.RunSweeper(ctx, cfg.RateLimit.SweepInterval)
	logger.WithField("backend", cfg.RateLimit.Backend).Info("Rate limiter initialized")

	emailService, err := email.NewEmailService(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	tenantResolver := services.NewTenantResolverService(tenantRepo, logger)
	accessGate := routing.NewAccessGate(routing.NewAuthGate(routing.AuthPaths{
		DashboardPrefix: cfg.Routing.DashboardPrefix,
		LoginPath:       cfg.Routing.LoginPath,
		SignupPaths:     cfg.Routing.SignupPaths,
	}))

	txtResolver := dnsresolver.NewTXTResolver(cfg.DNS.Resolvers, cfg.DNS.Timeout, logger)

	deps := httpserver.ServerDeps{
		RoutingService:     services.NewRoutingService(classifier, tenantResolver, accessGate, logger),
		SessionService:     services.NewSessionService(&cfg.JWT, logger),
		RateLimiterService: rateLimiter,
		TenantResolver:     tenantResolver,
		AnalyticsService: services.NewAnalyticsService(
			repositories.NewAnalyticsRedisRepository(redisClient, "analytics"),
			tenantResolver,
		),
		UsernameService:           services.NewUsernameService(tenantRepo, classifier),
		DomainVerificationService: services.NewDomainVerificationService(tenantRepo, txtResolver, cfg.DNS.RecordPrefix, logger),
		VerificationService: services.NewVerificationService(
			repositories.NewVerificationCodeRedisRepository(redisClient, logger),
			tenantResolver,
			emailService,
			logger,
		),
		HealthCheckers: []ports.HealthChecker{
			health.NewDBHealthChecker(database),
			health.NewRedisHealthChecker("redis", redisClient),
		},
	}

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
		SessionCookie:  cfg.JWT.CookieName,
		SignupPaths:    cfg.Routing.SignupPaths,
		Routing: customMiddleware.RoutingConfig{
			SkipPrefixes:  cfg.Routing.SkipPrefixes,
			PublicBaseURL: cfg.Routing.PublicBaseURL,
			LockedPath:    cfg.Routing.LockedPath,
			LoginPath:     cfg.Routing.LoginPath,
			DashboardPath: cfg.Routing.DashboardPrefix,
		},
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}

// ratePolicies maps the configured category presets onto limiter policies.
func ratePolicies(in map[string]config.RatePolicyConfig) map[ratelimit.Category]ratelimit.Policy {
	out := make(map[ratelimit.Category]ratelimit.Policy, len(in))
	for name, p := range in {
		out[ratelimit.Category(name)] = ratelimit.Policy{Limit: p.Limit, Window: p.Window}
	}
	return out
}
