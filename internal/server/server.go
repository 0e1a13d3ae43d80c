package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gymlog/internal/repository"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	repo   *repository.Repository
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(repo *repository.Repository, log *slog.Logger) *Server {
	s := &Server{
		repo:   repo,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	s.router.Route("/api/v1/exercises", func(r chi.Router) {
		r.Get("/", s.handleListExercises)
		r.Post("/", s.handleCreateExercise)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetExercise)
			r.Put("/", s.handleUpdateExercise)
			r.Delete("/", s.handleDeleteExercise)
			r.Get("/history", s.handleExerciseHistory)
			r.Get("/progress", s.handleExerciseProgress)
			r.Get("/entry", s.handleEntryTemplate)
		})
	})

	s.router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.Post("/", s.handleCreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Put("/", s.handleUpdateSession)
			r.Delete("/", s.handleDeleteSession)
		})
	})
}
