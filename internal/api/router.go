package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/storage"
)

// Server holds the HTTP server dependencies
type Server struct {
	store   *storage.Store
	library *catalog.Library
	details *detail.Loader
	view    config.ViewConfig
	origins []string
	logger  *slog.Logger
	router  chi.Router
}

// New creates a new API server
func New(store *storage.Store, library *catalog.Library, details *detail.Loader, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:   store,
		library: library,
		details: details,
		view:    cfg.View,
		origins: cfg.Server.AllowedOrigins,
		logger:  logger.With("component", "api"),
		router:  chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestIDMiddleware)
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "Not found")
		})

		// Collection
		r.Get("/status", s.handleGetStatus)
		r.Post("/collection/reload", s.handleReloadCollection)

		// Creatures
		r.Get("/creatures", s.handleListCreatures)
		r.Get("/creatures/{id}", s.handleGetCreature)

		// Preferences
		r.Get("/preferences", s.handleGetPreferences)
		r.Put("/preferences", s.handleUpdatePreferences)
		r.Post("/preferences/theme/toggle", s.handleToggleTheme)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

// decodeJSON reads a request body, rejecting fields the target does not know
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
