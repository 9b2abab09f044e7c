// Package server exposes the diagram session over HTTP.
//
// The API is a thin JSON layer over [diagram.Session]: reads return
// snapshots, edits are posted as events, and rendered artifacts stream
// with their natural content types. All state and synchronization live
// in the session; handlers stay stateless.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reeflow/reeflow/pkg/diagram"
)

// Server wires the diagram session into an HTTP router.
type Server struct {
	session *diagram.Session
	logger  *log.Logger
}

// New creates a server over a session.
func New(session *diagram.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{session: session, logger: logger}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/years", s.handleYears)
		r.Route("/diagram/{year}", func(r chi.Router) {
			r.Get("/", s.handleDiagram)
			r.Post("/events", s.handleEvent)
			r.Post("/layout/save", s.handleSaveLayout)
			r.Post("/layout/reset", s.handleResetLayout)
			r.Get("/render", s.handleRender)
		})
	})

	return r
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
