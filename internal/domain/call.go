package domain

// Keys written to a CallContext by provider adapters.
const (
	CallDetailInput          = "input"
	CallDetailEmbeddingModel = "embedding_model"
)

// CallContext is a mutable per-call record owned by the caller. Adapters write
// observability details into it while building requests and read them back
// while parsing responses. It is not safe for concurrent use; each call gets
// its own.
type CallContext struct {
	details map[string]any
}

// NewCallContext creates an empty call context.
func NewCallContext() *CallContext {
	return &CallContext{details: make(map[string]any)}
}

// Set records a detail. A nil context is a no-op so adapters can be called
// without one.
func (c *CallContext) Set(key string, value any) {
	if c == nil {
		return
	}
	c.details[key] = value
}

// Get returns a recorded detail.
func (c *CallContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.details[key]
	return v, ok
}

// GetString returns a recorded string detail, or "" if absent or not a string.
func (c *CallContext) GetString(key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
