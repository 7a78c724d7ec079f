// Package vectorgate is an SDK for searching and creating vector stores
// through provider adapters that translate a uniform API into each
// provider's REST dialect. Qdrant is the built-in provider.
package vectorgate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	embcache "github.com/kailas-cloud/vectorgate/internal/embedding/cache"
	cachevalkey "github.com/kailas-cloud/vectorgate/internal/embedding/cache/valkey"
	openaiemb "github.com/kailas-cloud/vectorgate/internal/embedding/openai"
	"github.com/kailas-cloud/vectorgate/internal/gateway"
	"github.com/kailas-cloud/vectorgate/internal/provider"
	"github.com/kailas-cloud/vectorgate/internal/provider/qdrant"
)

// Client is the vectorgate SDK entry point.
type Client struct {
	gw         *gateway.Service
	cacheStore *cachevalkey.Store
}

// New creates a vectorgate Client wired for the Qdrant provider.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	embedder := cfg.embedder
	if embedder == nil {
		if cfg.openaiAPIKey == "" {
			return nil, errors.New(
				"vectorgate: an embedding capability is required (use WithOpenAIEmbedder or WithEmbedder)")
		}
		embedder = openaiemb.NewEmbedder(&openaiemb.Config{
			APIKey:   cfg.openaiAPIKey,
			BaseURL:  cfg.openaiBaseURL,
			Provider: "openai",
			Logger:   logger,
		})
	}

	var cacheStore *cachevalkey.Store
	if len(cfg.cacheAddrs) > 0 {
		var err error
		cacheStore, err = cachevalkey.NewStore(cachevalkey.Config{
			Addrs:    cfg.cacheAddrs,
			Password: cfg.cachePassword,
			TTL:      cfg.cacheTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("vectorgate: create embedding cache store: %w", err)
		}
		embedder = embcache.New(embedder, cacheStore, nil, logger)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	registry := provider.NewRegistry(qdrant.New(embedder, logger))
	settings := map[string]gateway.Settings{
		qdrant.ProviderName: {
			APIKey:          cfg.qdrantAPIKey,
			APIBase:         cfg.qdrantAPIBase,
			EmbeddingModel:  cfg.embeddingModel,
			EmbeddingConfig: cfg.embeddingConfig,
		},
	}

	return &Client{
		gw:         gateway.New(registry, settings, httpClient, logger),
		cacheStore: cacheStore,
	}, nil
}

// Search runs a semantic search against a vector store. params accepts the
// provider's optional knobs (limit, filter, score_threshold, ...); unknown
// keys are dropped.
func (c *Client) Search(
	ctx context.Context, vectorStoreID, query string, params map[string]any,
) (SearchResponse, error) {
	resp, err := c.gw.Search(ctx, qdrant.ProviderName, vectorStoreID, []string{query}, params)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}
	return fromSearchResponse(resp), nil
}

// CreateVectorStore creates a vector store. Metadata keys vector_size and
// distance configure the collection schema; the rest are forwarded verbatim.
func (c *Client) CreateVectorStore(
	ctx context.Context, name string, metadata map[string]any,
) (CreateResponse, error) {
	resp, err := c.gw.Create(ctx, qdrant.ProviderName, domain.CreateParams{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		return CreateResponse{}, fmt.Errorf("create vector store: %w", err)
	}
	return fromCreateResponse(resp), nil
}

// Close releases the embedding cache connection, if any.
func (c *Client) Close() {
	if c.cacheStore != nil {
		c.cacheStore.Close()
	}
}
