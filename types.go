package vectorgate

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

// CreateResponse acknowledges a created vector store.
type CreateResponse struct {
	ID         string         `json:"id"`
	Object     string         `json:"object"`
	CreatedAt  int64          `json:"created_at"`
	Name       string         `json:"name"`
	Bytes      int64          `json:"bytes"`
	FileCounts FileCounts     `json:"file_counts"`
	Status     string         `json:"status"`
	Metadata   map[string]any `json:"metadata"`
}
