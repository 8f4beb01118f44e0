package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ourletters/love-letters/docs"
	"github.com/ourletters/love-letters/internal/api/handler"
	"github.com/ourletters/love-letters/internal/api/middleware"
	"github.com/ourletters/love-letters/internal/core/ports"
	"github.com/ourletters/love-letters/internal/infrastructure/http/handlers"
)

// maxBodySize bounds a request body. It sits well above the 5 MiB photo rule
// so an oversized photo still reaches the composer and comes back with its
// size message.
const maxBodySize = "32M"

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	App    ports.AppService
	Logger zerolog.Logger

	SessionSecret string
	PublicOrigin  string

	// Ready lists what /health/ready pings.
	Ready []handlers.Dependency
	// Registry receives the request metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "letters",
		Registerer: registerer,
	}))

	// --- Operational routes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Ready...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- App routes ---
	views := handler.NewViewHandler(d.App)
	sessions := handler.NewSessionHandler(d.App)
	letters := handler.NewLetterHandler(d.App)

	g := e.Group("/api",
		echomiddleware.BodyLimit(maxBodySize),
		middleware.ClientID(),
		middleware.Session(d.SessionSecret, d.PublicOrigin),
	)

	g.GET("/bootstrap", views.Bootstrap)
	g.GET("/view", views.Current)
	g.POST("/navigation", views.Navigate)

	g.POST("/session", sessions.Login)
	g.DELETE("/session", sessions.Logout)

	g.GET("/users", letters.Authors)
	g.POST("/letters", letters.Create)
	g.POST("/letters/:id/share", letters.Share)

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
