package vectorgate

import (
	"context"
	"reflect"
	"testing"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/embedding"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, req embedding.Request) ([][]float32, error) {
	out := make([][]float32, len(req.Inputs))
	for i := range out {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func TestFromSearchResponse(t *testing.T) {
	in := domain.SearchResponse{
		Object:      domain.SearchResponseObject,
		SearchQuery: "hello",
		Data: []domain.SearchResult{
			{
				Score:      0.87,
				Content:    []domain.ContentBlock{{Text: "hi", Type: "text"}},
				FileID:     "point-1",
				Attributes: map[string]any{"tag": "x"},
			},
		},
	}

	got := fromSearchResponse(in)

	if got.Object != "vector_store.search_results.page" {
		t.Errorf("object = %q", got.Object)
	}
	if got.SearchQuery != "hello" {
		t.Errorf("search query = %q", got.SearchQuery)
	}
	if len(got.Data) != 1 {
		t.Fatalf("data length = %d", len(got.Data))
	}
	want := SearchResult{
		Score:      0.87,
		Content:    []ContentBlock{{Text: "hi", Type: "text"}},
		FileID:     "point-1",
		Attributes: map[string]any{"tag": "x"},
	}
	if !reflect.DeepEqual(got.Data[0], want) {
		t.Errorf("result = %+v, want %+v", got.Data[0], want)
	}
}

func TestFromSearchResponse_Empty(t *testing.T) {
	got := fromSearchResponse(domain.SearchResponse{Object: domain.SearchResponseObject})
	if got.Data == nil {
		t.Error("data should be an empty slice, not nil")
	}
}

func TestFromCreateResponse(t *testing.T) {
	in := domain.CreateResponse{
		ID:        "docs",
		Object:    domain.CreateResponseObject,
		CreatedAt: 1700000000,
		Name:      "docs",
		FileCounts: domain.FileCounts{
			Completed: 3,
			Total:     3,
		},
		Status:   "completed",
		Metadata: map[string]any{"team": "search"},
	}

	got := fromCreateResponse(in)

	if got.ID != "docs" || got.Name != "docs" {
		t.Errorf("id/name = %q/%q", got.ID, got.Name)
	}
	if got.Object != "vector_store" {
		t.Errorf("object = %q", got.Object)
	}
	if got.CreatedAt != 1700000000 {
		t.Errorf("created_at = %d", got.CreatedAt)
	}
	if got.FileCounts.Completed != 3 || got.FileCounts.Total != 3 {
		t.Errorf("file counts = %+v", got.FileCounts)
	}
	if got.Status != "completed" {
		t.Errorf("status = %q", got.Status)
	}
	if !reflect.DeepEqual(got.Metadata, map[string]any{"team": "search"}) {
		t.Errorf("metadata = %v", got.Metadata)
	}
}
