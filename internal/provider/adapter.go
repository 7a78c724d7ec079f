// Package provider defines the contract a vector-store provider adapter must
// satisfy: pure request/response transformations between the uniform gateway
// shapes and one provider's REST dialect.
package provider

import (
	"context"
	"net/http"

	"github.com/kailas-cloud/vectorgate/internal/domain"
)

// EnvLookup resolves an environment variable, os.Getenv-shaped. Injected so
// adapters stay testable without mutating the process environment.
type EnvLookup func(name string) string

// Request is a provider-bound HTTP request produced by a builder. The
// transport executes it; adapters never perform I/O themselves.
type Request struct {
	Method string
	URL    string
	Body   map[string]any
}

// RawResponse is the provider's HTTP response as seen by a parser.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// SearchInput carries everything a search request builder needs.
type SearchInput struct {
	// VectorStoreID identifies the store; providers without a separate
	// collection lookup use it as the collection name directly.
	VectorStoreID string
	// Query is one or more text fragments; builders join fragments with a
	// single space before embedding.
	Query []string
	// Params are optional provider knobs overlaid onto the request body.
	// Callers decide whether to pass them through FilterSearchParams first.
	Params map[string]any
	// BaseURL is the resolved provider base URL (no trailing slash).
	BaseURL string
	// EmbeddingModel is the model used to vectorize the query. Required by
	// adapters that delegate embedding generation.
	EmbeddingModel string
	// EmbeddingConfig carries extra knobs for the embedding capability.
	EmbeddingConfig map[string]any
	// Call is the caller-owned logging record; may be nil.
	Call *domain.CallContext
}

// CreateInput carries everything a create request builder needs.
type CreateInput struct {
	Params  domain.CreateParams
	BaseURL string
}

// Adapter translates between the uniform vector-store API and one provider's
// wire dialect. Implementations are stateless; every method is a pure
// transformation except BuildSearchRequest, which invokes the embedding
// capability and writes observability details into the call context.
type Adapter interface {
	// Name returns the provider discriminant used for registry selection.
	Name() string

	// ResolveAuth returns the auth headers for the provider. An empty map is
	// valid: absence of credentials means anonymous access.
	ResolveAuth(explicitAPIKey string, env EnvLookup) map[string]string

	// ResolveBaseURL resolves and normalizes the provider base URL. Fails
	// with domain.ErrConfiguration when none resolves.
	ResolveBaseURL(explicitBase string, env EnvLookup) (string, error)

	// FilterSearchParams copies through only the provider-recognized optional
	// search knobs. Unknown keys are dropped, never rejected.
	FilterSearchParams(params map[string]any) map[string]any

	// BuildSearchRequest builds the provider search request, vectorizing the
	// query via the embedding capability.
	BuildSearchRequest(ctx context.Context, in SearchInput) (Request, error)

	// ParseSearchResponse maps the provider response to the uniform envelope.
	ParseSearchResponse(resp RawResponse, call *domain.CallContext) (domain.SearchResponse, error)

	// BuildCreateRequest builds the provider create-collection request.
	BuildCreateRequest(in CreateInput) (Request, error)

	// ParseCreateResponse maps the provider response to the uniform
	// acknowledgment.
	ParseCreateResponse(resp RawResponse) (domain.CreateResponse, error)
}
