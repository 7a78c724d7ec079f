// Package embedding defines the contract for the external embedding
// capability that turns text into vectors for similarity search.
package embedding

import "context"

// Request describes one embedding call.
type Request struct {
	// Model is the embedding model identifier, e.g. "text-embedding-3-large".
	Model string
	// Inputs are the texts to vectorize. Provider adapters send exactly one
	// input and read exactly one output vector.
	Inputs []string
	// Config carries optional provider knobs such as "dimensions" or "user".
	Config map[string]any
}

// Embedder vectorizes text. Implementations return one vector per input, in
// input order.
type Embedder interface {
	Embed(ctx context.Context, req Request) ([][]float32, error)
}
