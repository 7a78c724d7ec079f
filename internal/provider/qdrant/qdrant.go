// Package qdrant adapts the Qdrant REST dialect to the provider-agnostic
// vector-store contract. Vector store IDs map one-to-one onto Qdrant
// collection names; query vectors come from the external embedding capability.
package qdrant

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/embedding"
	"github.com/kailas-cloud/vectorgate/internal/provider"
)

const (
	// ProviderName is the registry discriminant for this adapter.
	ProviderName = "qdrant"

	envAPIKey  = "QDRANT_API_KEY"
	envAPIBase = "QDRANT_API_BASE"

	authHeader = "api-key"

	defaultLimit      = 10
	defaultVectorSize = 1536
	defaultDistance   = "Cosine"
)

// optionalParams are the search knobs Qdrant recognizes. Everything else is
// dropped by FilterSearchParams.
var optionalParams = map[string]struct{}{
	"limit":           {},
	"offset":          {},
	"filter":          {},
	"search_params":   {},
	"with_payload":    {},
	"with_vectors":    {},
	"score_threshold": {},
}

// Compile-time check: Adapter implements provider.Adapter.
var _ provider.Adapter = (*Adapter)(nil)

// Adapter is the Qdrant provider adapter. Stateless; safe for concurrent use.
type Adapter struct {
	embedder embedding.Embedder
	logger   *zap.Logger
}

// New creates a Qdrant adapter. The embedder vectorizes search queries.
func New(embedder embedding.Embedder, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{embedder: embedder, logger: logger}
}

// Name implements provider.Adapter.
func (a *Adapter) Name() string { return ProviderName }

// ResolveAuth returns the api-key header when a key is configured explicitly
// or via QDRANT_API_KEY. No key means anonymous access, not an error.
func (a *Adapter) ResolveAuth(explicitAPIKey string, env provider.EnvLookup) map[string]string {
	apiKey := explicitAPIKey
	if apiKey == "" && env != nil {
		apiKey = env(envAPIKey)
	}

	headers := make(map[string]string)
	if apiKey != "" {
		headers[authHeader] = apiKey
	}
	return headers
}

// ResolveBaseURL prefers the explicit base, falls back to QDRANT_API_BASE,
// and strips trailing slashes. The base URL is mandatory.
func (a *Adapter) ResolveBaseURL(explicitBase string, env provider.EnvLookup) (string, error) {
	base := explicitBase
	if base == "" && env != nil {
		base = env(envAPIBase)
	}

	if base == "" {
		return "", fmt.Errorf(
			"%w: qdrant API base URL is required; set %s or pass an api_base",
			domain.ErrConfiguration, envAPIBase,
		)
	}

	return strings.TrimRight(base, "/"), nil
}

// FilterSearchParams copies through only Qdrant-recognized optional knobs.
// The input map is not mutated; unknown keys are silently dropped.
func (a *Adapter) FilterSearchParams(params map[string]any) map[string]any {
	accepted := make(map[string]any, len(params))
	for key, value := range params {
		if _, ok := optionalParams[key]; ok {
			accepted[key] = value
		}
	}
	return accepted
}

// mergeParams overlays src onto dst in place, later keys overwriting earlier.
func mergeParams(dst, src map[string]any) {
	for key, value := range src {
		dst[key] = value
	}
}
