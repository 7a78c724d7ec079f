package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrConfiguration signals a missing required input from the caller or
	// environment. Always raised before any network call.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrEmbeddingGeneration signals that the embedding capability failed.
	ErrEmbeddingGeneration = errors.New("embedding generation failed")
	// ErrProviderResponse signals a provider response this module could not interpret.
	ErrProviderResponse = errors.New("unreadable provider response")
	// ErrUnknownProvider signals a provider name with no registered adapter.
	ErrUnknownProvider = errors.New("unknown provider")
)

// ProviderResponseError wraps ErrProviderResponse with the HTTP status code
// and headers of the triggering response for upstream diagnostics.
type ProviderResponseError struct {
	Message    string
	StatusCode int
	Header     http.Header
}

func (e *ProviderResponseError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", ErrProviderResponse.Error(), e.StatusCode, e.Message)
}

func (e *ProviderResponseError) Unwrap() error { return ErrProviderResponse }

// NewProviderResponseError creates a provider response error from the parts
// of the failed response.
func NewProviderResponseError(message string, statusCode int, header http.Header) error {
	return &ProviderResponseError{Message: message, StatusCode: statusCode, Header: header}
}
