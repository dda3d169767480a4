// ABOUTME: HTTP server struct with chi router, session store, node catalog, and optional library/registry
// ABOUTME: Configures the JSON API routes for sessions, pipeline mutations, execution, library, and definitions

package editor

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flumeworks/flume/flow"
	"github.com/flumeworks/flume/logic"
)

// ServerOption configures optional Server behavior.
type ServerOption func(*Server)

// WithLibrary attaches a pipeline library for save/load endpoints.
func WithLibrary(lib *Library) ServerOption {
	return func(s *Server) {
		s.library = lib
	}
}

// WithRegistry attaches a dynamic node registry for the definitions endpoints.
// Its definitions are expected to already be installed into the catalog.
func WithRegistry(reg *logic.Registry) ServerOption {
	return func(s *Server) {
		s.registry = reg
	}
}

// Server holds the chi router, session store, and node catalog. The library
// and registry fields are optional; their endpoints return 404 when unset.
type Server struct {
	router   chi.Router
	store    *Store
	catalog  *flow.Catalog
	library  *Library
	registry *logic.Registry
}

// NewServer creates a Server with all routes configured.
func NewServer(store *Store, catalog *flow.Catalog, opts ...ServerOption) *Server {
	s := &Server{
		store:   store,
		catalog: catalog,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/api/catalog", s.handleCatalog)

	// Session lifecycle
	r.Post("/api/sessions", s.handleCreateSession)
	r.Get("/api/sessions", s.handleListSessions)
	r.Get("/api/sessions/{id}", s.handleGetSession)
	r.Delete("/api/sessions/{id}", s.handleDeleteSession)

	// Pipeline mutations
	r.Post("/api/sessions/{id}/nodes", s.handleAddNode)
	r.Delete("/api/sessions/{id}/nodes/{nodeID}", s.handleDeleteNode)
	r.Put("/api/sessions/{id}/nodes/{nodeID}/data", s.handleSetNodeData)
	r.Post("/api/sessions/{id}/connections", s.handleAddConnection)
	r.Delete("/api/sessions/{id}/connections/{connID}", s.handleDeleteConnection)

	// Execution and inspection
	r.Post("/api/sessions/{id}/execute", s.handleExecute)
	r.Get("/api/sessions/{id}/order", s.handleExecutionOrder)
	r.Get("/api/sessions/{id}/snapshot", s.handleSnapshot)

	// Pipeline library
	r.Post("/api/sessions/{id}/save", s.handleSaveToLibrary)
	r.Get("/api/library", s.handleListLibrary)
	r.Post("/api/library/{name}/open", s.handleOpenFromLibrary)
	r.Delete("/api/library/{name}", s.handleDeleteFromLibrary)

	// Dynamic node definitions
	r.Get("/api/definitions", s.handleListDefinitions)
	r.Post("/api/definitions", s.handleAddDefinition)
	r.Delete("/api/definitions/{name}", s.handleDeleteDefinition)

	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
