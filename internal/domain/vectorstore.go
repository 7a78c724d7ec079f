// Package domain holds the provider-agnostic vector-store value objects and
// the error taxonomy shared by adapters, the gateway, and the transports.
package domain

// Envelope object discriminants in the uniform API.
const (
	SearchResponseObject = "vector_store.search_results.page"
	CreateResponseObject = "vector_store"
)

// ContentBlock is one piece of result content.
type ContentBlock struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// SearchResult is a single search hit in the uniform shape.
type SearchResult struct {
	Score      float64        `json:"score"`
	Content    []ContentBlock `json:"content"`
	FileID     string         `json:"file_id"`
	Filename   string         `json:"filename,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// SearchResponse is the uniform search result page.
type SearchResponse struct {
	Object      string         `json:"object"`
	SearchQuery string         `json:"search_query"`
	Data        []SearchResult `json:"data"`
}

// FileCounts is the per-status file breakdown in a vector store.
type FileCounts struct {
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

// CreateResponse acknowledges a created vector store. Providers that return
// bare acknowledgments leave ID and Name blank for the caller to fill.
type CreateResponse struct {
	ID           string         `json:"id"`
	Object       string         `json:"object"`
	CreatedAt    int64          `json:"created_at"`
	Name         string         `json:"name"`
	Bytes        int64          `json:"bytes"`
	FileCounts   FileCounts     `json:"file_counts"`
	Status       string         `json:"status"`
	ExpiresAt    *int64         `json:"expires_at,omitempty"`
	LastActiveAt *int64         `json:"last_active_at,omitempty"`
	Metadata     map[string]any `json:"metadata"`
}

// CreateParams are the caller inputs for creating a vector store. Metadata
// keys the provider recognizes configure the store; the rest are forwarded.
type CreateParams struct {
	Name     string
	Metadata map[string]any
}
