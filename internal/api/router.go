package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cempulse/plant-ops/internal/api/handler"
	"github.com/cempulse/plant-ops/internal/api/middleware"
	"github.com/cempulse/plant-ops/internal/core/domain"
	"github.com/cempulse/plant-ops/internal/core/ports"
	_ "github.com/cempulse/plant-ops/internal/docs"
	"github.com/cempulse/plant-ops/internal/infrastructure/http/handlers"
)

// Dependencies is everything the HTTP layer needs, assembled by the serve command.
type Dependencies struct {
	Auth      ports.AuthService
	Processes ports.ProcessService
	Advisory  ports.AdvisoryService
	Approvals ports.ApprovalService

	Cookie            handler.CookieConfig
	LoginPath         string
	ProtectedPrefixes []string
	RoleMatch         domain.RoleMatch
	ApproverRoles     []string

	// WebRoot is the static UI directory. Empty disables static serving.
	WebRoot string

	// Readiness lists the configured backing services checked by /health/ready.
	Readiness map[string]handlers.Pinger

	// MetricsRegisterer enables per-request HTTP metrics. Nil skips them.
	MetricsRegisterer prometheus.Registerer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	if deps.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: deps.MetricsRegisterer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}
	e.Use(middleware.AccessGate(deps.Auth, middleware.GateConfig{
		Prefixes:   deps.ProtectedPrefixes,
		CookieName: deps.Cookie.Name,
		LoginPath:  deps.LoginPath,
	}))

	// --- Health probes and ops endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/me", authHandler.Me)

	// --- Authenticated API ---
	processHandler := handler.NewProcessHandler(deps.Processes)
	advisoryHandler := handler.NewAdvisoryHandler(deps.Advisory)
	approvalHandler := handler.NewApprovalHandler(deps.Approvals)

	protected := e.Group("/api", middleware.Auth(deps.Auth, deps.Cookie.Name))
	protected.POST("/genai", advisoryHandler.Advise)
	protected.GET("/processes", processHandler.List)
	protected.GET("/processes/:id", processHandler.Get)
	protected.POST("/approvals", approvalHandler.Create)
	protected.GET("/approvals", approvalHandler.List)
	protected.POST("/approvals/:id/decision", approvalHandler.Decide,
		middleware.RBAC(deps.RoleMatch, deps.ApproverRoles...))

	// --- Static UI ---
	if deps.WebRoot != "" {
		e.Static("/", deps.WebRoot)
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
