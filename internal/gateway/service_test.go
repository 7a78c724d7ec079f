package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kailas-cloud/vectorgate/internal/domain"
	"github.com/kailas-cloud/vectorgate/internal/provider"
)

// --- Mocks ---

// mockAdapter records what the service hands it.
type mockAdapter struct {
	name string

	baseURLErr error
	buildErr   error
	parseErr   error

	lastSearchInput provider.SearchInput
	lastCreateInput provider.CreateInput
	filterCalled    bool

	searchResp domain.SearchResponse
	createResp domain.CreateResponse
}

func (m *mockAdapter) Name() string { return m.name }

func (m *mockAdapter) ResolveAuth(explicit string, _ provider.EnvLookup) map[string]string {
	if explicit == "" {
		return map[string]string{}
	}
	return map[string]string{"api-key": explicit}
}

func (m *mockAdapter) ResolveBaseURL(base string, _ provider.EnvLookup) (string, error) {
	if m.baseURLErr != nil {
		return "", m.baseURLErr
	}
	return strings.TrimRight(base, "/"), nil
}

func (m *mockAdapter) FilterSearchParams(params map[string]any) map[string]any {
	m.filterCalled = true
	out := make(map[string]any, len(params))
	for k, v := range params {
		if k != "blocked" {
			out[k] = v
		}
	}
	return out
}

func (m *mockAdapter) BuildSearchRequest(_ context.Context, in provider.SearchInput) (provider.Request, error) {
	m.lastSearchInput = in
	if m.buildErr != nil {
		return provider.Request{}, m.buildErr
	}
	return provider.Request{
		Method: http.MethodPost,
		URL:    in.BaseURL + "/collections/" + in.VectorStoreID + "/points/search",
		Body:   map[string]any{"limit": 10},
	}, nil
}

func (m *mockAdapter) ParseSearchResponse(_ provider.RawResponse, _ *domain.CallContext) (domain.SearchResponse, error) {
	if m.parseErr != nil {
		return domain.SearchResponse{}, m.parseErr
	}
	return m.searchResp, nil
}

func (m *mockAdapter) BuildCreateRequest(in provider.CreateInput) (provider.Request, error) {
	m.lastCreateInput = in
	if m.buildErr != nil {
		return provider.Request{}, m.buildErr
	}
	return provider.Request{
		Method: http.MethodPut,
		URL:    in.BaseURL + "/collections/" + in.Params.Name,
		Body:   map[string]any{},
	}, nil
}

func (m *mockAdapter) ParseCreateResponse(_ provider.RawResponse) (domain.CreateResponse, error) {
	if m.parseErr != nil {
		return domain.CreateResponse{}, m.parseErr
	}
	return m.createResp, nil
}

// mockDoer replays canned responses and records requests.
type mockDoer struct {
	responses []*http.Response
	errs      []error
	requests  []*http.Request
	bodies    []map[string]any
}

func (d *mockDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)

	var body map[string]any
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(data, &body)
	}
	d.bodies = append(d.bodies, body)

	i := len(d.requests) - 1
	if i < len(d.errs) && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	if i < len(d.responses) {
		return d.responses[i], nil
	}
	return okResponse(`{}`), nil
}

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func statusResponse(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(`{}`)),
	}
}

func newTestService(adapter *mockAdapter, doer *mockDoer) *Service {
	reg := provider.NewRegistry(adapter)
	settings := map[string]Settings{
		adapter.name: {
			APIKey:         "k",
			APIBase:        "https://base/",
			EmbeddingModel: "m",
		},
	}
	svc := New(reg, settings, doer, nil).WithEnvLookup(func(string) string { return "" })
	svc.retry.BaseDelay = 0
	return svc
}

// --- Search ---

func TestSearch_FullFlow(t *testing.T) {
	adapter := &mockAdapter{
		name: "mock",
		searchResp: domain.SearchResponse{
			Object: domain.SearchResponseObject,
			Data:   []domain.SearchResult{{FileID: "1"}},
		},
	}
	doer := &mockDoer{}
	svc := newTestService(adapter, doer)

	resp, err := svc.Search(context.Background(), "mock", "docs",
		[]string{"q"}, map[string]any{"limit": 5, "blocked": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Errorf("results: got %d", len(resp.Data))
	}

	if !adapter.filterCalled {
		t.Error("params must be filtered before the builder runs")
	}
	if _, ok := adapter.lastSearchInput.Params["blocked"]; ok {
		t.Error("filtered-out key reached the builder")
	}
	if adapter.lastSearchInput.BaseURL != "https://base" {
		t.Errorf("base url: got %q", adapter.lastSearchInput.BaseURL)
	}
	if adapter.lastSearchInput.EmbeddingModel != "m" {
		t.Errorf("embedding model: got %q", adapter.lastSearchInput.EmbeddingModel)
	}
	if adapter.lastSearchInput.Call == nil {
		t.Error("call context must be supplied")
	}

	if len(doer.requests) != 1 {
		t.Fatalf("expected 1 HTTP request, got %d", len(doer.requests))
	}
	req := doer.requests[0]
	if req.Method != http.MethodPost {
		t.Errorf("method: got %s", req.Method)
	}
	if req.Header.Get("api-key") != "k" {
		t.Errorf("auth header missing: %v", req.Header)
	}
	if req.Header.Get("Content-Type") != "application/json" {
		t.Errorf("content type: got %q", req.Header.Get("Content-Type"))
	}
	if doer.bodies[0]["limit"] != float64(10) {
		t.Errorf("body: got %v", doer.bodies[0])
	}
}

func TestSearch_UnknownProvider(t *testing.T) {
	svc := newTestService(&mockAdapter{name: "mock"}, &mockDoer{})

	_, err := svc.Search(context.Background(), "nope", "docs", []string{"q"}, nil)
	if !errors.Is(err, domain.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestSearch_BaseURLError_NoHTTPCall(t *testing.T) {
	adapter := &mockAdapter{
		name:       "mock",
		baseURLErr: domain.ErrConfiguration,
	}
	doer := &mockDoer{}
	svc := newTestService(adapter, doer)

	_, err := svc.Search(context.Background(), "mock", "docs", []string{"q"}, nil)
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if len(doer.requests) != 0 {
		t.Error("configuration errors must fire before any network call")
	}
}

func TestSearch_RetriesOn5xx(t *testing.T) {
	adapter := &mockAdapter{name: "mock"}
	doer := &mockDoer{
		responses: []*http.Response{
			statusResponse(http.StatusBadGateway),
			okResponse(`{}`),
		},
	}
	svc := newTestService(adapter, doer)

	_, err := svc.Search(context.Background(), "mock", "docs", []string{"q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(doer.requests) != 2 {
		t.Errorf("expected retry, got %d requests", len(doer.requests))
	}
}

func TestSearch_RetriesOnTransportError(t *testing.T) {
	adapter := &mockAdapter{name: "mock"}
	doer := &mockDoer{
		errs:      []error{errors.New("connection refused"), nil},
		responses: []*http.Response{nil, okResponse(`{}`)},
	}
	svc := newTestService(adapter, doer)

	_, err := svc.Search(context.Background(), "mock", "docs", []string{"q"}, nil)
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if len(doer.requests) != 2 {
		t.Errorf("expected retry, got %d requests", len(doer.requests))
	}
}

func TestSearch_4xxNotRetried(t *testing.T) {
	adapter := &mockAdapter{name: "mock"}
	doer := &mockDoer{
		responses: []*http.Response{statusResponse(http.StatusUnauthorized)},
	}
	svc := newTestService(adapter, doer)

	_, err := svc.Search(context.Background(), "mock", "docs", []string{"q"}, nil)
	if !errors.Is(err, domain.ErrProviderResponse) {
		t.Fatalf("expected ErrProviderResponse, got %v", err)
	}
	if len(doer.requests) != 1 {
		t.Errorf("4xx must not be retried, got %d requests", len(doer.requests))
	}
}

func TestSearch_5xxAfterRetries_ProviderResponseError(t *testing.T) {
	adapter := &mockAdapter{name: "mock"}
	doer := &mockDoer{
		responses: []*http.Response{
			statusResponse(http.StatusInternalServerError),
			statusResponse(http.StatusInternalServerError),
			statusResponse(http.StatusInternalServerError),
		},
	}
	svc := newTestService(adapter, doer)

	// A provider outage must never come back as an empty result page.
	_, err := svc.Search(context.Background(), "mock", "docs", []string{"q"}, nil)
	if !errors.Is(err, domain.ErrProviderResponse) {
		t.Fatalf("expected ErrProviderResponse, got %v", err)
	}

	var provErr *domain.ProviderResponseError
	if !errors.As(err, &provErr) {
		t.Fatal("expected *ProviderResponseError")
	}
	if provErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d", provErr.StatusCode)
	}
	if len(doer.requests) != 3 {
		t.Errorf("expected initial call plus 2 retries, got %d requests", len(doer.requests))
	}
}

// --- Create ---

func TestCreate_FillsCallerFields(t *testing.T) {
	adapter := &mockAdapter{
		name: "mock",
		createResp: domain.CreateResponse{
			Object: domain.CreateResponseObject,
			Status: "completed",
		},
	}
	doer := &mockDoer{}
	svc := newTestService(adapter, doer)

	resp, err := svc.Create(context.Background(), "mock", domain.CreateParams{Name: "my-store"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.ID != "my-store" || resp.Name != "my-store" {
		t.Errorf("caller fields not filled: id=%q name=%q", resp.ID, resp.Name)
	}
	if doer.requests[0].Method != http.MethodPut {
		t.Errorf("method: got %s, want PUT", doer.requests[0].Method)
	}
}

func TestCreate_BuildError_Propagates(t *testing.T) {
	adapter := &mockAdapter{
		name:     "mock",
		buildErr: domain.ErrConfiguration,
	}
	doer := &mockDoer{}
	svc := newTestService(adapter, doer)

	_, err := svc.Create(context.Background(), "mock", domain.CreateParams{})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if len(doer.requests) != 0 {
		t.Error("build errors must fire before any network call")
	}
}
