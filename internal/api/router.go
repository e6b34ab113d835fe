package api

import (
	"context"
	"isp-billing/internal/api/handler"
	mw "isp-billing/internal/api/middleware"
	"isp-billing/internal/config"
	"isp-billing/internal/domain/auth"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/domain/dashboard"
	"log/slog"
	"net/http"
	"time"

	_ "isp-billing/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const defaultRequestTimeout = 60 * time.Second

// Services are the domain collaborators the HTTP layer is built on.
type Services struct {
	Auth      auth.Service
	Sessions  *customer.Sessions
	Dashboard *dashboard.Service
}

// SetupRouter builds the HTTP API. ctx bounds background work started by
// middleware.
func SetupRouter(ctx context.Context, svc Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupAuthRoutes(router, svc, cfg, logger)
	setupCustomerRoutes(router, svc, cfg, logger)
	setupDashboardRoutes(router, svc, cfg, logger)
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(timeout))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupAuthRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewAuthHandler(svc.Auth, svc.Sessions, cfg.Server.Auth, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(mw.AuthMiddleware(cfg.Server.Auth, svc.Auth, logger))
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})
	})
}

func setupCustomerRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc.Sessions, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, svc.Auth, logger))
		r.Post("/", h.CreateCustomer)
		r.Get("/export", h.Export)
		r.Route("/view", func(r chi.Router) {
			r.Get("/", h.GetView)
			r.Post("/reload", h.Reload)
			r.Put("/filters", h.SetFilters)
			r.Delete("/filters", h.ClearFilters)
			r.Put("/page", h.GoToPage)
			r.Post("/next", h.NextPage)
			r.Post("/prev", h.PrevPage)
		})
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Post("/confirm-delete", h.ConfirmDelete)
		})
	})
}

func setupDashboardRoutes(router *chi.Mux, svc Services, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewDashboardHandler(svc.Dashboard, logger)

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, svc.Auth, logger))
		r.Get("/stats", h.Stats)
		r.Get("/payments", h.RecentPayments)
		r.Get("/revenue", h.RevenueSeries)
	})
}
