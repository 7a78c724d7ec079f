package gateway

import "net/http"

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Settings holds per-provider configuration resolved at wiring time.
// Empty APIKey and APIBase fall back to the adapter's environment lookups.
type Settings struct {
	APIKey          string
	APIBase         string
	EmbeddingModel  string
	EmbeddingConfig map[string]any
}
