package vectorgate

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/embedding"
	"github.com/kailas-cloud/vectorgate/internal/gateway"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	qdrantAPIBase   string
	qdrantAPIKey    string
	embeddingModel  string
	embeddingConfig map[string]any

	openaiAPIKey  string
	openaiBaseURL string

	embedder embedding.Embedder

	cacheAddrs    []string
	cachePassword string
	cacheTTL      time.Duration

	httpClient gateway.Doer
	logger     *zap.Logger
}

// WithQdrant sets the Qdrant endpoint and API key explicitly. Left unset,
// both fall back to QDRANT_API_BASE / QDRANT_API_KEY.
func WithQdrant(apiBase, apiKey string) Option {
	return func(c *clientConfig) {
		c.qdrantAPIBase = apiBase
		c.qdrantAPIKey = apiKey
	}
}

// WithEmbeddingModel sets the model used to vectorize search queries,
// with optional provider knobs such as "dimensions".
func WithEmbeddingModel(model string, config map[string]any) Option {
	return func(c *clientConfig) {
		c.embeddingModel = model
		c.embeddingConfig = config
	}
}

// WithOpenAIEmbedder uses an OpenAI-compatible embeddings endpoint as the
// embedding capability. baseURL may be empty for api.openai.com.
func WithOpenAIEmbedder(apiKey, baseURL string) Option {
	return func(c *clientConfig) {
		c.openaiAPIKey = apiKey
		c.openaiBaseURL = baseURL
	}
}

// WithEmbedder supplies a custom embedding capability, replacing
// WithOpenAIEmbedder.
func WithEmbedder(e embedding.Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithEmbeddingCache caches query embeddings in Valkey/Redis. ttl of zero
// means no expiry.
func WithEmbeddingCache(addrs []string, password string, ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.cacheAddrs = addrs
		c.cachePassword = password
		c.cacheTTL = ttl
	}
}

// WithHTTPClient overrides the HTTP client used for provider calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
