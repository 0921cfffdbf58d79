package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/careerforge/careerforge/internal/auth"
	"github.com/careerforge/careerforge/internal/config"
	"github.com/careerforge/careerforge/internal/jobs"
	"github.com/careerforge/careerforge/internal/server/middleware"
	"github.com/careerforge/careerforge/internal/site"
	"github.com/careerforge/careerforge/internal/store/postgres"
	redisstore "github.com/careerforge/careerforge/internal/store/redis"
)

// Server is the HTTP server that wires all application routes and middleware:
// the JSON API, the server-rendered public pages and the embedded dashboard.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      *postgres.Store
	auth       *auth.Service
	jobs       *jobs.Service
	cache      *redisstore.PageCache // nil when Redis is not configured
	cfg        *config.Config
}

// New creates a Server with all routes wired. ctx bounds the rate-limiter
// cleanup goroutines. webAssets may be nil; when provided, the dashboard SPA
// is served on all unmatched routes (embedded via go:embed for single-binary
// distribution).
func New(ctx context.Context, cfg *config.Config, store *postgres.Store, cache *redisstore.PageCache, authSvc *auth.Service, jobSvc *jobs.Service, webAssets fs.FS) (*Server, error) {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router: router,
		store:  store,
		auth:   authSvc,
		jobs:   jobSvc,
		cache:  cache,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 in three sub-groups:
	// 1. Signup/login, per-IP limited since they gate on nothing else.
	// 2. Unauthenticated public reads.
	// 3. Authenticated mutations, per-company limited.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, 5, 10))

			authAPI := humachi.New(r, apiConfig("CareerForge Auth API"))
			registerAuthRoutes(authAPI, authSvc)
		})

		r.Group(func(r chi.Router) {
			publicAPI := humachi.New(r, apiConfig("CareerForge Public API"))
			registerPublicRoutes(publicAPI, store, jobSvc, cfg.JWT.Secret)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT.Secret))
			r.Use(middleware.RateLimit(ctx, 100, 200))

			api := humachi.New(r, apiConfig("CareerForge API"))
			registerDashboardRoutes(api, store, jobSvc, cache)
		})
	})

	// Public server-rendered pages and the sitemap.
	siteHandler, err := site.NewHandler(store.Companies(), store.Jobs(), jobSvc, cache, cfg.Server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("server.New: %w", err)
	}
	siteHandler.Routes(router)

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Serve the embedded dashboard SPA on all unmatched routes. This must
	// be the last route registered so API and site routes take priority.
	if webAssets != nil {
		router.NotFound(spaFileServer(webAssets).ServeHTTP)
		log.Info().Msg("embedded dashboard enabled")
	}

	return s, nil
}

func apiConfig(title string) huma.Config {
	cfg := huma.DefaultConfig(title, "1.0.0")
	cfg.Servers = []*huma.Server{{URL: "/api/v1"}}
	return cfg
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
