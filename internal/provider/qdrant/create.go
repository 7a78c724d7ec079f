package qdrant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/provider"
)

// Metadata keys the adapter consumes to configure the collection's vector
// schema rather than forwarding verbatim.
const (
	metaVectorSize = "vector_size"
	metaDistance   = "distance"
)

// BuildCreateRequest builds the Qdrant create-collection request (PUT).
// Vector size defaults to 1536 and distance to "Cosine"; metadata may
// override both, and its remaining keys merge into the body top level.
func (a *Adapter) BuildCreateRequest(in provider.CreateInput) (provider.Request, error) {
	name := in.Params.Name
	if name == "" {
		return provider.Request{}, fmt.Errorf(
			"%w: a collection name is required to create a qdrant vector store",
			domain.ErrConfiguration,
		)
	}

	vectorParams := map[string]any{
		"size":     defaultVectorSize,
		"distance": defaultDistance,
	}
	if size, ok := in.Params.Metadata[metaVectorSize]; ok {
		vectorParams["size"] = size
	}
	if distance, ok := in.Params.Metadata[metaDistance]; ok {
		vectorParams["distance"] = distance
	}

	body := map[string]any{"vectors": vectorParams}
	for key, value := range in.Params.Metadata {
		if key == metaVectorSize || key == metaDistance {
			continue
		}
		body[key] = value
	}

	return provider.Request{
		Method: http.MethodPut,
		URL:    fmt.Sprintf("%s/collections/%s", in.BaseURL, name),
		Body:   body,
	}, nil
}

// ParseCreateResponse checks the response body is valid JSON and synthesizes
// the uniform acknowledgment. Qdrant returns a bare boolean result on create,
// so ID and Name are left blank for the caller to fill.
func (a *Adapter) ParseCreateResponse(resp provider.RawResponse) (domain.CreateResponse, error) {
	var ack any
	if err := json.Unmarshal(resp.Body, &ack); err != nil {
		return domain.CreateResponse{}, domain.NewProviderResponseError(
			fmt.Sprintf("decode qdrant create response: %v", err),
			resp.StatusCode, resp.Header,
		)
	}

	return domain.CreateResponse{
		Object:    domain.CreateResponseObject,
		CreatedAt: time.Now().UTC().Unix(),
		Status:    "completed",
		Metadata:  map[string]any{},
	}, nil
}
