package chi

import (
	"encoding/json"
	"net/http"
)

// Error codes returned by the API.
const (
	codeBadRequest           = "bad_request"
	codeUnauthorized         = "unauthorized"
	codeInvalidConfiguration = "invalid_configuration"
	codeUnknownProvider      = "unknown_provider"
	codeEmbeddingFailed      = "embedding_generation_failed"
	codeProviderUnreadable   = "provider_response_unreadable"
	codeInternal             = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// ProviderStatus carries the upstream status code for provider errors.
	ProviderStatus int `json:"provider_status,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
