// Package rest assembles the HTTP surface: the ordered middleware chain, the
// routes and the terminal error handler.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/yarchiT/analogue-memory-backend/domain/catalog"
	"github.com/yarchiT/analogue-memory-backend/infrastructure/config"
	"github.com/yarchiT/analogue-memory-backend/interfaces/http/rest/handlers"
	"github.com/yarchiT/analogue-memory-backend/interfaces/http/rest/middleware"
	"github.com/yarchiT/analogue-memory-backend/interfaces/http/rest/validation"
	"github.com/yarchiT/analogue-memory-backend/pkg/auth"
	apperrors "github.com/yarchiT/analogue-memory-backend/pkg/errors"
	"github.com/yarchiT/analogue-memory-backend/pkg/ratelimit"
)

// Router creates and configures the HTTP router.
type Router struct {
	cfg      *config.Config
	snapshot *catalog.Snapshot
	logger   *zap.Logger
	limiter  *ratelimit.SlidingWindow
	metrics  *middleware.MetricsCollector
}

// NewRouter creates a new router instance.
func NewRouter(cfg *config.Config, snapshot *catalog.Snapshot, logger *zap.Logger) *Router {
	return &Router{
		cfg:      cfg,
		snapshot: snapshot,
		logger:   logger,
		limiter:  ratelimit.NewSlidingWindow(cfg.RateLimitMax, cfg.RateLimitWindow),
		metrics:  middleware.NewMetricsCollector("analogue_memory"),
	}
}

// Limiter exposes the rate limiter so main can run the periodic sweep.
func (rt *Router) Limiter() *ratelimit.SlidingWindow {
	return rt.limiter
}

// Setup wires the middleware chain and all routes. Stage order matters:
// security headers first (they apply even to rejected requests), then origin
// checks, body ceiling, rate limiting, timeout, and logging; recovery sits
// innermost so panics become 500s routed through the terminal handler.
func (rt *Router) Setup() http.Handler {
	errHandler := apperrors.NewHandler(rt.logger, !rt.cfg.IsProduction())
	stage := validation.NewStage(errHandler)

	router := chi.NewRouter()

	router.Use(middleware.SecurityHeaders)
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)

	// Metrics are served outside the request-limiting stages so scrapes
	// never compete with client budgets.
	router.Get("/metrics", rt.metrics.Handler().ServeHTTP)

	router.Group(func(r chi.Router) {
		r.Use(middleware.OriginGuard(rt.cfg.CORSAllowedOrigins, errHandler))
		r.Use(cors.Handler(cors.Options{
			AllowOriginFunc:    middleware.AllowOrigin(rt.cfg.CORSAllowedOrigins),
			AllowedMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
			AllowedHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
			AllowCredentials:   true,
			MaxAge:             86400,
			OptionsPassthrough: true,
		}))
		r.Use(middleware.Preflight)
		r.Use(middleware.BodyLimit(rt.cfg.MaxBodyBytes, errHandler))
		r.Use(middleware.RateLimit(middleware.RateLimitOptions{
			Limiter:      rt.limiter,
			Logger:       rt.logger,
			Errors:       errHandler,
			SkipLoopback: rt.cfg.IsDevelopment(),
		}))
		r.Use(middleware.Timeout(rt.cfg.RequestTimeout, rt.logger, errHandler))
		r.Use(rt.metrics.Middleware)
		r.Use(middleware.RequestLogger(rt.logger, !rt.cfg.IsProduction()))
		r.Use(middleware.Recovery(rt.logger, errHandler))

		r.NotFound(errHandler.NotFound)
		r.MethodNotAllowed(errHandler.MethodNotAllowed)

		healthHandler := handlers.NewHealthHandler(rt.cfg.Environment)
		r.Get("/health", healthHandler.Check)

		r.Route("/api", func(r chi.Router) {
			r.Get("/docs", docsStub)

			categoryHandler := handlers.NewCategoryHandler(rt.snapshot, errHandler)
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.List)
				r.With(stage.Param("id")).Get("/{id}", categoryHandler.GetByID)
			})

			itemHandler := handlers.NewItemHandler(rt.snapshot, errHandler)
			r.Route("/items", func(r chi.Router) {
				r.With(stage.Pagination).Get("/", itemHandler.List)
				r.With(stage.Search).Get("/search", itemHandler.Search)
				r.With(stage.Param("categoryId"), stage.Pagination).
					Get("/category/{categoryId}", itemHandler.ByCategory)
				r.With(stage.Param("id")).Get("/{id}", itemHandler.GetByID)
			})

			tokens := auth.NewTokenIssuer(rt.cfg.JWTSecret, rt.cfg.JWTExpiresIn)
			userHandler := handlers.NewUserHandler(rt.snapshot, tokens, errHandler)
			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.List)
				r.With(stage.Param("username")).Get("/username/{username}", userHandler.GetByUsername)
				r.With(stage.Param("id")).Get("/{id}", userHandler.GetByID)
				r.With(stage.LoginBody).Post("/login", userHandler.Login)
			})
		})
	})

	return router
}

func docsStub(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"success","message":"API documentation will be available here"}`))
}
