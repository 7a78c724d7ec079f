// Package gateway orchestrates provider adapters: it resolves configuration,
// runs the request/response transformations, and executes the provider HTTP
// calls the adapters themselves never make.
package gateway

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/provider"
)

// Service routes uniform vector-store calls to a provider adapter selected by
// name and executes the resulting HTTP requests.
type Service struct {
	registry *provider.Registry
	settings map[string]Settings
	client   Doer
	env      provider.EnvLookup
	logger   *zap.Logger
	retry    retryConfig
}

// New creates a gateway service.
func New(
	registry *provider.Registry,
	settings map[string]Settings,
	client Doer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		settings: settings,
		client:   client,
		env:      os.Getenv,
		logger:   logger,
		retry:    defaultRetryConfig(),
	}
}

// WithEnvLookup overrides the environment lookup (used in tests).
func (s *Service) WithEnvLookup(env provider.EnvLookup) *Service {
	s.env = env
	return s
}

// WithRetry overrides the retry policy for provider calls.
func (s *Service) WithRetry(cfg retryConfig) *Service {
	s.retry = cfg
	return s
}

// Search runs a uniform vector-store search against the named provider.
// Optional params are filtered through the adapter's allow-list before the
// request is built, so only provider-recognized knobs go over the wire.
func (s *Service) Search(
	ctx context.Context, providerName, vectorStoreID string,
	query []string, params map[string]any,
) (domain.SearchResponse, error) {
	adapter, err := s.registry.Get(providerName)
	if err != nil {
		return domain.SearchResponse{}, err
	}
	st := s.settings[providerName]

	baseURL, err := adapter.ResolveBaseURL(st.APIBase, s.env)
	if err != nil {
		return domain.SearchResponse{}, err
	}
	headers := adapter.ResolveAuth(st.APIKey, s.env)

	call := domain.NewCallContext()
	req, err := adapter.BuildSearchRequest(ctx, provider.SearchInput{
		VectorStoreID:   vectorStoreID,
		Query:           query,
		Params:          adapter.FilterSearchParams(params),
		BaseURL:         baseURL,
		EmbeddingModel:  st.EmbeddingModel,
		EmbeddingConfig: st.EmbeddingConfig,
		Call:            call,
	})
	if err != nil {
		return domain.SearchResponse{}, err
	}

	raw, err := s.execute(ctx, providerName, "search", req, headers)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	resp, err := adapter.ParseSearchResponse(raw, call)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	s.logger.Info("Vector store search completed",
		zap.String("provider", providerName),
		zap.String("vector_store_id", vectorStoreID),
		zap.Int("results", len(resp.Data)),
	)
	return resp, nil
}

// Create creates a vector store with the named provider and fills the
// caller-side fields of the acknowledgment.
func (s *Service) Create(
	ctx context.Context, providerName string, params domain.CreateParams,
) (domain.CreateResponse, error) {
	adapter, err := s.registry.Get(providerName)
	if err != nil {
		return domain.CreateResponse{}, err
	}
	st := s.settings[providerName]

	baseURL, err := adapter.ResolveBaseURL(st.APIBase, s.env)
	if err != nil {
		return domain.CreateResponse{}, err
	}
	headers := adapter.ResolveAuth(st.APIKey, s.env)

	req, err := adapter.BuildCreateRequest(provider.CreateInput{
		Params:  params,
		BaseURL: baseURL,
	})
	if err != nil {
		return domain.CreateResponse{}, err
	}

	raw, err := s.execute(ctx, providerName, "create", req, headers)
	if err != nil {
		return domain.CreateResponse{}, err
	}

	resp, err := adapter.ParseCreateResponse(raw)
	if err != nil {
		return domain.CreateResponse{}, err
	}

	// Providers returning bare acknowledgments leave these blank.
	if resp.ID == "" {
		resp.ID = params.Name
	}
	if resp.Name == "" {
		resp.Name = params.Name
	}

	s.logger.Info("Vector store created",
		zap.String("provider", providerName),
		zap.String("name", params.Name),
	)
	return resp, nil
}
