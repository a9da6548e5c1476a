// Package handler implements the HTTP surface of the Flavortown dashboard.
// All handlers are methods on Server. Methods are split into files by
// concern (health.go, table.go, session.go, page.go) but share the same
// Server struct so they can reach its dependencies.
package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/layout"
	"github.com/pkordes/flavortown/internal/mapview"
	"github.com/pkordes/flavortown/internal/service"
)

// DashboardServicer defines the read operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without loading datasets.
type DashboardServicer interface {
	Options() service.Options
	Columns() []string
	Table(sel domain.Selection, page domain.PaginationParams) service.TablePage
	Export(w io.Writer, sel domain.Selection) error
	Map() *mapview.Map
}

// SessionServicer defines the session operations the handlers depend on.
type SessionServicer interface {
	Create() service.SessionView
	Get(id uuid.UUID) (service.SessionView, error)
	Select(id uuid.UUID, sel domain.Selection) (service.SessionView, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	dashboard DashboardServicer
	sessions  SessionServicer
	chrome    layout.Chrome
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies. A nil logger
// falls back to slog.Default.
func NewServer(dashboard DashboardServicer, sessions SessionServicer, chrome layout.Chrome, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if chrome.PageSize < 1 {
		chrome.PageSize = domain.DefaultPageSize
	}
	return &Server{dashboard: dashboard, sessions: sessions, chrome: chrome, log: log}
}

// Routes returns a chi router serving every endpoint. Cross-cutting
// middleware (request IDs, logging, CORS) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.GetPage)
	r.Get("/healthz", s.GetHealth)
	r.Get("/map", s.GetMap)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/docs", s.GetDocs)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(layout.Static())))

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.GetOptions)
		r.Get("/table", s.GetTable)
		r.Get("/map.json", s.GetMapSpec)

		r.Post("/sessions", s.CreateSession)
		r.Get("/sessions/{id}", s.GetSession)
		r.Put("/sessions/{id}/selection", s.PutSelection)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("no such route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})
	return r
}
