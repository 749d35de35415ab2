package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paperdeck/paperdeck/internal/config"
	"github.com/paperdeck/paperdeck/internal/engine"
	"github.com/paperdeck/paperdeck/internal/store"
)

// Server is the paperdeck HTTP API server. It is presentation glue: every
// handler translates a request into one synchronous core operation.
type Server struct {
	store   *store.Store
	engine  *engine.Engine
	config  *config.Manager
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server over the given store, engine, and configuration.
func New(st *store.Store, eng *engine.Engine, cfg *config.Manager, version string) *Server {
	s := &Server{
		store:   st,
		engine:  eng,
		config:  cfg,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/papers", s.handleListPapers)
		r.Post("/papers", s.handleAddPaper)
		r.Get("/papers/{paperID}", s.handleGetPaper)
		r.Put("/papers/{paperID}", s.handleUpdatePaper)
		r.Delete("/papers/{paperID}", s.handleDeletePaper)
		r.Get("/papers/{paperID}/export", s.handleExportPaper)

		r.Get("/review/due", s.handleDue)
		r.Post("/review", s.handleReview)

		r.Get("/search", s.handleSearch)
		r.Get("/tags", s.handleTags)
		r.Get("/categories", s.handleCategories)

		r.Get("/config/categories", s.handleConfigCategories)
		r.Post("/config/categories", s.handleAddCategory)

		r.Get("/analytics", s.handleAnalytics)
		r.Get("/analytics/upcoming", s.handleUpcoming)
		r.Get("/analytics/performance", s.handlePerformance)

		r.Post("/backup", s.handleBackup)
		r.Post("/backup/restore", s.handleRestore)

		// External metadata import is not implemented; the add path accepts
		// pre-fetched fields from any origin.
		r.Post("/import/arxiv", stub("arxiv import"))
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	storeOK := true
	count, err := s.store.Count()
	if err != nil {
		storeOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"version":    s.version,
		"uptime":     time.Since(s.started).Seconds(),
		"store":      storeOK,
		"store_path": s.store.Path,
		"papers":     count,
	})
}

func stub(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotImplemented, map[string]string{
			"error": name + " not yet implemented",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
