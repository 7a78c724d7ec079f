// Package chi is the HTTP transport for the gateway's uniform vector-store API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/logger"
	"github.com/kailas-cloud/vectorgate/internal/version"
)

// VectorStores is the gateway surface the server exposes.
type VectorStores interface {
	Search(
		ctx context.Context, providerName, vectorStoreID string,
		query []string, params map[string]any,
	) (domain.SearchResponse, error)
	Create(
		ctx context.Context, providerName string, params domain.CreateParams,
	) (domain.CreateResponse, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server handles the uniform vector-store HTTP API. Handlers log through the
// request-scoped logger installed by RequestLoggerMiddleware.
type Server struct {
	stores          VectorStores
	defaultProvider string
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server. defaultProvider is used when a
// request names none.
func NewServer(stores VectorStores, defaultProvider string) *Server {
	s := &Server{
		stores:          stores,
		defaultProvider: defaultProvider,
	}
	s.errorHandlers = []errorHandler{
		providerResponseHandler,
		sentinelHandler(domain.ErrConfiguration, http.StatusBadRequest, codeInvalidConfiguration),
		sentinelHandler(domain.ErrUnknownProvider, http.StatusNotFound, codeUnknownProvider),
		sentinelHandler(domain.ErrEmbeddingGeneration, http.StatusBadGateway, codeEmbeddingFailed),
	}
	return s
}

// Register mounts the API routes on a router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.handleHealth)
	r.Post("/v1/vector_stores", s.handleCreate)
	r.Post("/v1/vector_stores/{vectorStoreID}/search", s.handleSearch)
}

// queryField accepts a JSON string or list of strings.
type queryField []string

func (q *queryField) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*q = queryField{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("query must be a string or a list of strings")
	}
	*q = queryField(list)
	return nil
}

type searchRequest struct {
	Provider string         `json:"provider,omitempty"`
	Query    queryField     `json:"query"`
	Params   map[string]any `json:"params,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	vectorStoreID := chi.URLParam(r, "vectorStoreID")

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Query) == 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "query is required")
		return
	}

	providerName := req.Provider
	if providerName == "" {
		providerName = s.defaultProvider
	}

	resp, err := s.stores.Search(r.Context(), providerName, vectorStoreID, req.Query, req.Params)
	if err != nil {
		s.respondError(w, r, err, "search vector store")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type createRequest struct {
	Provider string         `json:"provider,omitempty"`
	Name     string         `json:"name"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	providerName := req.Provider
	if providerName == "" {
		providerName = s.defaultProvider
	}

	resp, err := s.stores.Create(r.Context(), providerName, domain.CreateParams{
		Name:     req.Name,
		Metadata: req.Metadata,
	})
	if err != nil {
		s.respondError(w, r, err, "create vector store")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// respondError walks the handler chain; unhandled errors become a 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	for _, handle := range s.errorHandlers {
		if handle(w, err, msg) {
			return
		}
	}
	logger.FromContext(r.Context()).Error("Unhandled error", zap.String("op", msg), zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, msg+" failed")
}

// sentinelHandler maps a sentinel error to a status code.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// providerResponseHandler surfaces the provider's own status alongside 502.
func providerResponseHandler(w http.ResponseWriter, err error, _ string) bool {
	var provErr *domain.ProviderResponseError
	if !errors.As(err, &provErr) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Code:           codeProviderUnreadable,
		Message:        provErr.Message,
		ProviderStatus: provErr.StatusCode,
	})
	return true
}
