package vectorgate

import "github.com/kailas-cloud/vectorgate/internal/domain"

func fromSearchResponse(in domain.SearchResponse) SearchResponse {
	data := make([]SearchResult, len(in.Data))
	for i, r := range in.Data {
		content := make([]ContentBlock, len(r.Content))
		for j, c := range r.Content {
			content[j] = ContentBlock{Text: c.Text, Type: c.Type}
		}
		data[i] = SearchResult{
			Score:      r.Score,
			Content:    content,
			FileID:     r.FileID,
			Filename:   r.Filename,
			Attributes: r.Attributes,
		}
	}
	return SearchResponse{
		Object:      in.Object,
		SearchQuery: in.SearchQuery,
		Data:        data,
	}
}

func fromCreateResponse(in domain.CreateResponse) CreateResponse {
	return CreateResponse{
		ID:        in.ID,
		Object:    in.Object,
		CreatedAt: in.CreatedAt,
		Name:      in.Name,
		Bytes:     in.Bytes,
		FileCounts: FileCounts{
			InProgress: in.FileCounts.InProgress,
			Completed:  in.FileCounts.Completed,
			Failed:     in.FileCounts.Failed,
			Cancelled:  in.FileCounts.Cancelled,
			Total:      in.FileCounts.Total,
		},
		Status:   in.Status,
		Metadata: in.Metadata,
	}
}
