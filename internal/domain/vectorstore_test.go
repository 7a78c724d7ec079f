package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSearchResponse_JSONShape(t *testing.T) {
	resp := SearchResponse{
		Object:      SearchResponseObject,
		SearchQuery: "q",
		Data: []SearchResult{{
			Score:      0.5,
			Content:    []ContentBlock{{Text: "hi", Type: "text"}},
			FileID:     "1",
			Attributes: map[string]any{},
		}},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	if !strings.Contains(body, `"object":"vector_store.search_results.page"`) {
		t.Errorf("envelope object missing: %s", body)
	}
	if !strings.Contains(body, `"search_query":"q"`) {
		t.Errorf("search_query missing: %s", body)
	}
	if strings.Contains(body, "filename") {
		t.Errorf("empty filename must be omitted: %s", body)
	}
}

func TestCreateResponse_OmitsUnsetTimestamps(t *testing.T) {
	resp := CreateResponse{
		Object:   CreateResponseObject,
		Status:   "completed",
		Metadata: map[string]any{},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	if strings.Contains(body, "expires_at") || strings.Contains(body, "last_active_at") {
		t.Errorf("unset timestamps must be omitted: %s", body)
	}
	if !strings.Contains(body, `"file_counts"`) {
		t.Errorf("file_counts must always be present: %s", body)
	}
}
