package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/embedding"
	"github.com/kailas-cloud/vectorgate/internal/provider"
)

// payloadTextKeys are checked in priority order for a point's display text.
// They are reserved: everything else in the payload becomes attributes.
var payloadTextKeys = []string{"text", "content", "document"}

// BuildSearchRequest vectorizes the query and builds the Qdrant points/search
// request. The vector store ID is used as the collection name directly.
func (a *Adapter) BuildSearchRequest(ctx context.Context, in provider.SearchInput) (provider.Request, error) {
	query := normalizeQuery(in.Query)

	if in.EmbeddingModel == "" {
		return provider.Request{}, fmt.Errorf(
			"%w: an embedding model is required for qdrant search because qdrant "+
				"receives query vectors, not text; set embedding_model to any "+
				"embedding provider model, e.g. \"text-embedding-3-large\"",
			domain.ErrConfiguration,
		)
	}

	vectors, err := a.embedder.Embed(ctx, embedding.Request{
		Model:  in.EmbeddingModel,
		Inputs: []string{query},
		Config: in.EmbeddingConfig,
	})
	if err != nil {
		return provider.Request{}, fmt.Errorf(
			"%w for query: %w", domain.ErrEmbeddingGeneration, err,
		)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return provider.Request{}, fmt.Errorf(
			"%w for query: embedder returned no vector", domain.ErrEmbeddingGeneration,
		)
	}

	limit := any(defaultLimit)
	if v, ok := in.Params["limit"]; ok {
		limit = v
	}

	body := map[string]any{
		"vector": vectors[0],
		"limit":  limit,
	}
	mergeParams(body, in.Params)

	in.Call.Set(domain.CallDetailInput, query)
	in.Call.Set(domain.CallDetailEmbeddingModel, in.EmbeddingModel)

	a.logger.Debug("Built qdrant search request",
		zap.String("collection", in.VectorStoreID),
		zap.String("embedding_model", in.EmbeddingModel),
	)

	return provider.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/collections/%s/points/search", in.BaseURL, in.VectorStoreID),
		Body:   body,
	}, nil
}

// searchEnvelope mirrors the Qdrant search response shape. Missing levels
// decode to zero values, so an empty result is not an error.
type searchEnvelope struct {
	Result struct {
		Points []searchPoint `json:"points"`
	} `json:"result"`
}

type searchPoint struct {
	ID      any            `json:"id"`
	Payload map[string]any `json:"payload"`
	Score   float64        `json:"score"`
}

// ParseSearchResponse maps a Qdrant points/search response onto the uniform
// envelope. Result order is preserved. Malformed bodies become a
// ProviderResponseError carrying the response status and headers.
func (a *Adapter) ParseSearchResponse(
	resp provider.RawResponse, call *domain.CallContext,
) (domain.SearchResponse, error) {
	var envelope searchEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return domain.SearchResponse{}, domain.NewProviderResponseError(
			fmt.Sprintf("decode qdrant search response: %v", err),
			resp.StatusCode, resp.Header,
		)
	}

	points := envelope.Result.Points
	results := make([]domain.SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, domain.SearchResult{
			Score:      point.Score,
			Content:    []domain.ContentBlock{{Text: payloadText(point.Payload), Type: "text"}},
			FileID:     stringifyID(point.ID),
			Attributes: payloadAttributes(point.Payload),
		})
	}

	return domain.SearchResponse{
		Object:      domain.SearchResponseObject,
		SearchQuery: call.GetString(domain.CallDetailInput),
		Data:        results,
	}, nil
}

// normalizeQuery joins query fragments with a single space.
func normalizeQuery(query []string) string {
	return strings.Join(query, " ")
}

// payloadText returns the first reserved-key value present in the payload,
// stringified, or "" when none is.
func payloadText(payload map[string]any) string {
	for _, key := range payloadTextKeys {
		if value, ok := payload[key]; ok {
			if s, isStr := value.(string); isStr {
				return s
			}
			return fmt.Sprint(value)
		}
	}
	return ""
}

// payloadAttributes copies the payload minus the reserved content keys.
func payloadAttributes(payload map[string]any) map[string]any {
	attributes := make(map[string]any, len(payload))
	for key, value := range payload {
		if slices.Contains(payloadTextKeys, key) {
			continue
		}
		attributes[key] = value
	}
	return attributes
}

// stringifyID renders a point ID, which Qdrant returns as either an unsigned
// integer (decoded as float64) or a UUID string.
func stringifyID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
