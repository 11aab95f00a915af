package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/smartdev09/startup-perks/internal/config"
	"github.com/smartdev09/startup-perks/internal/dataset"
	"github.com/smartdev09/startup-perks/internal/web"
)

// Server represents the HTTP server: the JSON API plus the HTML pages.
type Server struct {
	config     config.ServerConfig
	router     *chi.Mux
	store      *dataset.Store
	pages      *web.Handlers
	instanceID string
}

// NewServer creates a new server over the loaded dataset.
func NewServer(
	cfg config.ServerConfig,
	store *dataset.Store,
	pages *web.Handlers,
	instanceID string,
) *Server {
	s := &Server{
		config:     cfg,
		store:      store,
		pages:      pages,
		instanceID: instanceID,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// The API is public and read-only; CORS is open so third-party
		// frontends can consume the directory.
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))

		r.Route("/perks", func(r chi.Router) {
			r.Get("/", s.handleListPerks)
			r.Get("/{id}", s.handleGetPerk)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Get("/{category}/perks", s.handleCategoryPerks)
		})

		r.Get("/featured", s.handleFeatured)
		r.Get("/stats", s.handleStats)
	})

	// HTML pages
	r.Get("/", s.pages.HandleHome)
	r.Get("/perks", s.pages.HandlePerks)
	r.Get("/perks/{id}", s.pages.HandlePerk)
	r.Get("/perks/category/{category}", s.pages.HandleCategory)
	r.Get("/contribute", s.pages.HandleContribute)

	// SEO artifacts
	r.Get("/sitemap.xml", s.pages.HandleSitemap)
	r.Get("/manifest.webmanifest", s.pages.HandleManifest)
	r.Get("/robots.txt", s.pages.HandleRobots)

	r.NotFound(s.pages.HandleNotFound)

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
