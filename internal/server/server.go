// Package server exposes a document tree over HTTP.
//
// The server holds one immutable tree and renders it against collapse states
// stored in a statestore backend. Clients manipulate states through the JSON
// API and fetch re-rendered HTML; the tree itself never changes after start.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jsonscope/pkg/collapse"
	"github.com/matzehuels/jsonscope/pkg/errors"
	treeio "github.com/matzehuels/jsonscope/pkg/io"
	"github.com/matzehuels/jsonscope/pkg/jsontree"
	"github.com/matzehuels/jsonscope/pkg/render/html"
	"github.com/matzehuels/jsonscope/pkg/statestore"
	"github.com/matzehuels/jsonscope/pkg/theme"
)

// Server serves one document tree and its collapse states.
type Server struct {
	tree    jsontree.Node
	store   statestore.Store
	palette theme.Palette
	title   string
	logger  *log.Logger
}

// Config configures a Server.
type Config struct {
	Tree    jsontree.Node
	Store   statestore.Store
	Palette theme.Palette
	Title   string // page title; empty uses "jsonscope"
	Logger  *log.Logger
}

// New creates a server for the given tree and state store.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	palette := cfg.Palette
	if palette == (theme.Palette{}) {
		palette = theme.Default()
	}
	return &Server{
		tree:    cfg.Tree,
		store:   cfg.Store,
		palette: palette,
		title:   cfg.Title,
		logger:  logger,
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/tree", s.handleTree)
		r.Route("/states", func(r chi.Router) {
			r.Get("/", s.handleStateList)
			r.Post("/", s.handleStateCreate)
			r.Get("/{id}", s.handleStateGet)
			r.Put("/{id}", s.handleStateUpdate)
			r.Delete("/{id}", s.handleStateDelete)
			r.Post("/{id}/collapse-below", s.handleCollapseBelow)
		})
	})

	return r
}

// logRequests logs each request with method, path, and status.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status())
	})
}

// =============================================================================
// Pages
// =============================================================================

// handleIndex renders the full document page. An optional ?state=id query
// applies a saved collapse state.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := collapse.DefaultState()
	if id := r.URL.Query().Get("state"); id != "" {
		rec, err := s.store.Get(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if rec == nil {
			s.writeError(w, errors.New(errors.ErrCodeStateNotFound, "state %q not found", id))
			return
		}
		state = rec.State()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.Document(s.tree, state, html.Options{Palette: s.palette, Title: s.title})))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTree returns the annotated tree in the export wire format.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := treeio.WriteJSON(s.tree, w); err != nil {
		s.logger.Error("write tree", "error", err)
	}
}

// =============================================================================
// State API
// =============================================================================

// statePayload is the request body for creating and updating states.
type statePayload struct {
	Name  string   `json:"name,omitempty"`
	Paths []string `json:"paths"`
}

func (s *Server) handleStateList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*statestore.Record{}
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleStateCreate(w http.ResponseWriter, r *http.Request) {
	var payload statePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	rec := statestore.NewRecord(payload.Name, collapse.FromPaths(payload.Paths))
	if err := s.store.Set(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleStateGet(w http.ResponseWriter, r *http.Request) {
	rec := s.getRecord(w, r)
	if rec == nil {
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleStateUpdate(w http.ResponseWriter, r *http.Request) {
	rec := s.getRecord(w, r)
	if rec == nil {
		return
	}

	var payload statePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	if payload.Name != "" {
		rec.Name = payload.Name
	}
	rec.SetState(collapse.FromPaths(payload.Paths))
	if err := s.store.Set(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleStateDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCollapseBelow replaces a state's paths with a fresh depth cutoff
// computed against the served tree.
func (s *Server) handleCollapseBelow(w http.ResponseWriter, r *http.Request) {
	rec := s.getRecord(w, r)
	if rec == nil {
		return
	}

	var payload struct {
		Depth int `json:"depth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if payload.Depth < 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "depth must be non-negative"))
		return
	}

	rec.SetState(collapse.BelowDepth(s.tree, payload.Depth))
	if err := s.store.Set(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// getRecord loads the record named by the {id} route parameter, writing the
// error response itself when the record is missing or the store fails.
func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) *statestore.Record {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return nil
	}
	if rec == nil {
		s.writeError(w, errors.New(errors.ErrCodeStateNotFound, "state %q not found", id))
		return nil
	}
	return rec
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body for error replies.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

// writeError maps structured error codes onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidTheme:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeStateNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}
