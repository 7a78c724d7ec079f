// Package openai provides an embedding capability backed by any
// OpenAI-compatible embeddings endpoint.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/embedding"
	"github.com/kailas-cloud/vectorgate/internal/metrics"
)

// Embedder calls an OpenAI-compatible embeddings API.
type Embedder struct {
	client   *openai.Client
	provider string
	logger   *zap.Logger
}

// Config holds the embedding endpoint settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Provider string // label for metrics, e.g. "openai", "nebius"
	Logger   *zap.Logger
}

// NewEmbedder creates an OpenAI-compatible embedding capability.
func NewEmbedder(cfg *Config) *Embedder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		client:   openai.NewClientWithConfig(clientCfg),
		provider: cfg.Provider,
		logger:   logger,
	}
}

// Embed implements embedding.Embedder. Returns one vector per input with
// transport-level metrics.
func (e *Embedder) Embed(ctx context.Context, req embedding.Request) ([][]float32, error) {
	model := string(req.Model)

	apiReq := openai.EmbeddingRequest{
		Input:          req.Inputs,
		Model:          openai.EmbeddingModel(req.Model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	applyConfig(&apiReq, req.Config)

	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, apiReq)

	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, model, "api_error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Data) < len(req.Inputs) {
		metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(e.provider, model, "short_response").Inc()
		return nil, fmt.Errorf("embedding response has %d vectors for %d inputs", len(resp.Data), len(req.Inputs))
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(e.provider, model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(e.provider, model).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues(e.provider, model, "prompt").
			Add(float64(resp.Usage.PromptTokens))
		metrics.EmbeddingTokensTotal.WithLabelValues(e.provider, model, "total").
			Add(float64(resp.Usage.TotalTokens))
	}

	vectors := make([][]float32, len(req.Inputs))
	for i := range req.Inputs {
		vectors[i] = resp.Data[i].Embedding
	}
	return vectors, nil
}

// applyConfig maps recognized per-call config keys onto the API request.
// Unknown keys are ignored.
func applyConfig(req *openai.EmbeddingRequest, config map[string]any) {
	for key, value := range config {
		switch key {
		case "dimensions":
			switch v := value.(type) {
			case int:
				req.Dimensions = v
			case float64:
				req.Dimensions = int(v)
			}
		case "user":
			if s, ok := value.(string); ok {
				req.User = s
			}
		}
	}
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("embedding API error %d: %s", reqErr.HTTPStatusCode, detail)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("embedding request failed: %w", err)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
