package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/storefront_catalog/internal/config"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/handler"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/middleware"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/request"
	"github.com/Pesokrava/storefront_catalog/internal/delivery/http/response"
	"github.com/Pesokrava/storefront_catalog/internal/pkg/logger"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Products      *handler.ProductHandler
	AdminProducts *handler.AdminProductHandler
	Variants      *handler.VariantHandler
	Colors        *handler.ColorHandler

	// Checks are run by /health; any failure answers 503
	Checks map[string]func(ctx context.Context) error
}

const healthCheckTimeout = 2 * time.Second

// Router holds HTTP handlers and router configuration
type Router struct {
	handlers Handlers
	logger   *logger.Logger
	cfg      *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(handlers Handlers, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handlers: handlers,
		logger:   log,
		cfg:      cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(chimiddleware.Timeout(rt.cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", request.ActorHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			h := rt.handlers.Products
			r.Get("/", h.List)
			r.Get("/featured", h.Featured)
			r.Get("/new-arrivals", h.NewArrivals)
			r.Get("/best-sellers", h.BestSellers)
			r.Get("/slug/{slug}", h.GetBySlug)
			r.Get("/{id}", h.GetByID)
			r.Get("/{id}/related", h.Related)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				h := rt.handlers.AdminProducts
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Get("/deleted", h.ListDeleted)
				r.Get("/{id}", h.Get)
				r.Patch("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
				r.Post("/{id}/restore", h.Restore)
				r.Patch("/{id}/status", h.SetStatus)
				r.Post("/{id}/stock", h.RefreshStock)
			})

			r.Route("/variants", func(r chi.Router) {
				h := rt.handlers.Variants
				r.Post("/", h.Create)
				r.Patch("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
				r.Post("/{id}/restore", h.Restore)
				r.Patch("/{id}/status", h.SetStatus)
			})

			r.Route("/colors", func(r chi.Router) {
				h := rt.handlers.Colors
				r.Get("/", h.List)
				r.Post("/", h.Create)
				r.Get("/deleted", h.ListDeleted)
				r.Get("/{id}", h.Get)
				r.Patch("/{id}", h.Update)
				r.Delete("/{id}", h.Delete)
				r.Post("/{id}/restore", h.Restore)
			})
		})
	})

	return r
}

// healthCheck reports the state of every dependency check
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(rt.handlers.Checks))
	for name, check := range rt.handlers.Checks {
		if err := check(ctx); err != nil {
			rt.logger.Warnf("Health check %s failed: %v", name, err)
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}

	response.JSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
	})
}
