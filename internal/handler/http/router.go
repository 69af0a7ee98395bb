package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/punctoo-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/punctoo-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the router's collaborators.
type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTService     jwt.Service
	GateService    client.GateService
	Metrics        *metrics.Metrics

	AccessHandler      AccessHandler
	ScanEventHandler   ScanEventHandler
	ReferenceHandler   ReferenceHandler
	PresenceHandler    PresenceHandler
	PerformanceHandler PerformanceHandler
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Retry-After"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())

	r.Route("/api/v1/mypunctoo", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(cfg.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(cfg.JWTService.JWTAuth()))

			r.Get("/access", cfg.AccessHandler.Access)

			// Requires an enabled client with an active scan tag
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireClient(cfg.GateService))

				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Post("/scan-events", cfg.ScanEventHandler.Submit)
					r.Get("/scan-events", cfg.ScanEventHandler.History)
					r.Get("/reference", cfg.ReferenceHandler.Get)
					r.Put("/reference", cfg.ReferenceHandler.Update)
				})

				r.Get("/presence", cfg.PresenceHandler.Dashboard)

				r.Route("/performances", func(r chi.Router) {
					r.Get("/", cfg.PerformanceHandler.List)
					r.Get("/totals", cfg.PerformanceHandler.Totals)
				})
			})
		})
	})
	return r
}
