package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/foliohost/portfolio-saas/internal/core/ports"
	customMiddleware "github.com/foliohost/portfolio-saas/internal/infrastructure/httpserver/middleware"
)

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
	SessionCookie  string
	SignupPaths    []string
	Routing        customMiddleware.RoutingConfig
}

type ServerDeps struct {
	RoutingService            ports.RoutingService
	SessionService            ports.SessionService
	RateLimiterService        ports.RateLimiterService
	TenantResolver            ports.TenantResolver
	AnalyticsService          ports.AnalyticsService
	UsernameService           ports.UsernameService
	DomainVerificationService ports.DomainVerificationService
	VerificationService       ports.VerificationService
	// CVAnalyzer is optional; without it /api/cv/parse answers 503.
	CVAnalyzer     ports.CVAnalyzer
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	resolver       ports.TenantResolver
	analytics      ports.AnalyticsService
	usernames      ports.UsernameService
	domains        ports.DomainVerificationService
	verification   ports.VerificationService
	cvAnalyzer     ports.CVAnalyzer
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	if serverConfig.Routing.NotFoundPath == "" {
		serverConfig.Routing.NotFoundPath = DefaultNotFoundPath
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		resolver:       deps.TenantResolver,
		analytics:      deps.AnalyticsService,
		usernames:      deps.UsernameService,
		domains:        deps.DomainVerificationService,
		verification:   deps.VerificationService,
		cvAnalyzer:     deps.CVAnalyzer,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RoutingService,
			deps.SessionService,
			deps.RateLimiterService,
			serverConfig.Routing,
			serverConfig.SessionCookie,
			logger,
			customMiddleware.Metrics{
				RequestsTotal:     GetRequestsTotal(),
				RequestDuration:   GetRequestDuration(),
				RoutingDecisions:  GetRoutingDecisions(),
				RateLimitOutcomes: GetRateLimitDecisions(),
			},
		),
	}
	e.HTTPErrorHandler = server.httpErrorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
