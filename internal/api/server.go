package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ajitpratap0/techlingo/internal/dictionary"
	"github.com/ajitpratap0/techlingo/internal/gateway"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/internal/search"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dictionary is the set of dictionary operations the API exposes.
type Dictionary interface {
	Search(q search.Query) []models.Term
	Get(id string) (models.Term, error)
	IsFavorite(id string) bool
	Lookup(ctx context.Context, query string) (models.Term, bool, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) error
	Translate(ctx context.Context, id string) (models.Translation, error)
	ProcessCode(ctx context.Context, req models.CodeRequest) (models.CodeArtifact, error)
	Stats() models.DictionaryStats
}

// KeySetter replaces the AI service API key at runtime.
type KeySetter interface {
	SetAPIKey(key string)
}

// Server is an HTTP API server that exposes dictionary operations.
type Server struct {
	dict      Dictionary
	keys      KeySetter // nil = credential endpoint disabled
	logger    *slog.Logger
	authToken string // empty = no auth required
}

// NewServer creates a new Server with the given dependencies.
func NewServer(dict Dictionary, logger *slog.Logger, authToken string) *Server {
	return &Server{
		dict:      dict,
		logger:    logger,
		authToken: authToken,
	}
}

// WithKeySetter enables PUT /v1/credentials.
func (s *Server) WithKeySetter(k KeySetter) *Server {
	s.keys = k
	return s
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check, no auth required.
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("GET /v1/terms", s.auth(s.handleSearch))
	mux.HandleFunc("GET /v1/terms/{id}", s.auth(s.handleGetTerm))
	mux.HandleFunc("DELETE /v1/terms/{id}", s.auth(s.handleDeleteTerm))
	mux.HandleFunc("POST /v1/terms/{id}/favorite", s.auth(s.handleToggleFavorite))
	mux.HandleFunc("POST /v1/terms/{id}/translate", s.auth(s.handleTranslate))
	mux.HandleFunc("POST /v1/lookup", s.auth(s.handleLookup))
	mux.HandleFunc("POST /v1/code", s.auth(s.handleCode))
	mux.HandleFunc("GET /v1/categories", s.auth(s.handleCategories))
	mux.HandleFunc("GET /v1/stats", s.auth(s.handleStats))
	mux.HandleFunc("PUT /v1/credentials", s.auth(s.handleCredentials))

	return mux
}

// --- middleware ---

// auth wraps a handler with Bearer token authentication when authToken is set.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authToken == "" {
			next(w, r)
			return
		}
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
			s.writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --- handlers ---

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// termView is a term plus its favorite state.
type termView struct {
	models.Term
	Favorite bool `json:"favorite"`
}

func (s *Server) view(t models.Term) termView {
	return termView{Term: t, Favorite: s.dict.IsFavorite(t.ID)}
}

// searchResponse is returned by GET /v1/terms.
type searchResponse struct {
	Terms []termView `json:"terms"`
	Count int        `json:"count"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	cat, err := search.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	found := s.dict.Search(search.Query{Text: r.URL.Query().Get("q"), Category: cat})

	out := make([]termView, 0, len(found))
	for _, t := range found {
		out = append(out, s.view(t))
	}
	s.writeJSON(w, http.StatusOK, searchResponse{Terms: out, Count: len(out)})
}

func (s *Server) handleGetTerm(w http.ResponseWriter, r *http.Request) {
	t, err := s.dict.Get(r.PathValue("id"))
	if err != nil {
		s.writeDictError(w, err, "failed to get term")
		return
	}
	s.writeJSON(w, http.StatusOK, s.view(t))
}

func (s *Server) handleDeleteTerm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.dict.Remove(r.Context(), id); err != nil {
		s.writeDictError(w, err, "failed to delete term")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// favoriteResponse is returned by POST /v1/terms/{id}/favorite.
type favoriteResponse struct {
	ID       string `json:"id"`
	Favorite bool   `json:"favorite"`
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	on, err := s.dict.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.writeDictError(w, err, "failed to toggle favorite")
		return
	}
	s.writeJSON(w, http.StatusOK, favoriteResponse{ID: id, Favorite: on})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	tr, err := s.dict.Translate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDictError(w, err, "failed to translate term")
		return
	}
	s.writeJSON(w, http.StatusOK, tr)
}

// lookupRequest is the body accepted by POST /v1/lookup.
type lookupRequest struct {
	Query string `json:"query"`
}

// lookupResponse is returned by POST /v1/lookup. Term is null for a blank
// query.
type lookupResponse struct {
	Term  *termView `json:"term"`
	Added bool      `json:"added"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if !s.decode(w, r, &req) {
		return
	}
	t, added, err := s.dict.Lookup(r.Context(), req.Query)
	if errors.Is(err, dictionary.ErrEmptyQuery) {
		s.writeJSON(w, http.StatusOK, lookupResponse{})
		return
	}
	if err != nil {
		s.writeDictError(w, err, "failed to look up term")
		return
	}
	v := s.view(t)
	s.writeJSON(w, http.StatusOK, lookupResponse{Term: &v, Added: added})
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	var req models.CodeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Mode != "" && !req.Mode.IsValid() {
		s.writeError(w, http.StatusBadRequest, "invalid mode")
		return
	}
	art, err := s.dict.ProcessCode(r.Context(), req)
	if err != nil {
		s.writeDictError(w, err, "failed to process code")
		return
	}
	s.writeJSON(w, http.StatusOK, art)
}

// categoryView describes one category.
type categoryView struct {
	ID    models.Category `json:"id"`
	Label string          `json:"label"`
	Name  string          `json:"name"`
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	out := make([]categoryView, 0, len(models.ValidCategories))
	for _, c := range models.ValidCategories {
		out = append(out, categoryView{ID: c, Label: c.Label(), Name: c.DisplayName()})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.dict.Stats())
}

// credentialsRequest is the body accepted by PUT /v1/credentials.
type credentialsRequest struct {
	APIKey string `json:"api_key"`
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	if s.keys == nil {
		s.writeError(w, http.StatusNotImplemented, "credential selection is not available for this provider")
		return
	}
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		s.writeError(w, http.StatusBadRequest, "api_key is required")
		return
	}
	s.keys.SetAPIKey(req.APIKey)
	s.logger.Info("API key replaced")
	w.WriteHeader(http.StatusNoContent)
}

// --- helpers ---

// decode reads a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// failureResponse is the body of a failed AI call.
type failureResponse struct {
	Error               string `json:"error"`
	LocalError          string `json:"local_error,omitempty"`
	Kind                string `json:"kind"`
	Retryable           bool   `json:"retryable"`
	ReselectCredentials bool   `json:"reselect_credentials"`
}

// writeDictError maps dictionary and gateway errors onto HTTP responses.
func (s *Server) writeDictError(w http.ResponseWriter, err error, msg string) {
	if f, ok := gateway.AsFailure(err); ok {
		s.writeJSON(w, failureStatus(f), failureResponse{
			Error:               f.Message,
			LocalError:          f.LocalMessage,
			Kind:                string(f.Kind),
			Retryable:           f.Retryable,
			ReselectCredentials: f.ReselectCredentials,
		})
		return
	}
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "term not found")
	case errors.Is(err, dictionary.ErrImmutable):
		s.writeError(w, http.StatusConflict, "built-in terms cannot be removed")
	case errors.Is(err, dictionary.ErrEmptyQuery):
		s.writeError(w, http.StatusBadRequest, "query is required")
	default:
		s.logger.Error(msg, "error", err)
		s.writeError(w, http.StatusInternalServerError, msg)
	}
}

func failureStatus(f *gateway.LookupFailure) int {
	if f.Kind == gateway.KindServiceRejection && f.Retryable {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// writeJSON encodes v as JSON and writes it to w with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(v); encErr != nil {
		s.logger.Error("failed to encode response", "error", encErr)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// Shutdown gracefully shuts down an http.Server with the given timeout.
// This is a convenience helper used by the serve command.
func Shutdown(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
