package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarseek/scholar-search-service/internal/domain"
)

// ---------------------------------------------------------------------------
// Mock implementations
// ---------------------------------------------------------------------------

// mockSource implements scholarly.Source for handler tests.
type mockSource struct {
	searchWorksFn   func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error)
	searchAuthorsFn func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error)
	enabled         bool
}

func (m *mockSource) SearchWorks(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
	if m.searchWorksFn != nil {
		return m.searchWorksFn(ctx, req)
	}
	return &domain.Page[domain.WorkSummary]{Items: []domain.WorkSummary{}, Page: req.Page, PerPage: req.PerPage}, nil
}

func (m *mockSource) SearchAuthors(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error) {
	if m.searchAuthorsFn != nil {
		return m.searchAuthorsFn(ctx, req)
	}
	return &domain.Page[domain.AuthorSummary]{Items: []domain.AuthorSummary{}, Page: req.Page, PerPage: req.PerPage}, nil
}

func (m *mockSource) Name() string    { return "MockSource" }
func (m *mockSource) IsEnabled() bool { return m.enabled }

// newTestServer creates a server with the given source and metrics disabled.
func newTestServer(source *mockSource) *Server {
	return NewServer(Config{
		Address:      "127.0.0.1:0",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, source, zerolog.Nop(), nil)
}

func doRequest(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Works search
// ---------------------------------------------------------------------------

func TestSearchWorks_Success(t *testing.T) {
	var gotReq domain.SearchRequest
	source := &mockSource{
		enabled: true,
		searchWorksFn: func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
			gotReq = req
			return &domain.Page[domain.WorkSummary]{
				Items: []domain.WorkSummary{
					{
						Title:         "Attention Is All You Need",
						AuthorNames:   []string{"Ashish Vaswani", "Noam Shazeer"},
						Year:          2017,
						Venue:         "NeurIPS",
						CitationCount: 90000,
						DOI:           "https://doi.org/10.48550/arXiv.1706.03762",
						OpenAlexID:    "https://openalex.org/W2963403868",
					},
				},
				TotalCount: 1,
				Page:       req.Page,
				PerPage:    req.PerPage,
			}, nil
		},
	}

	rec := doRequest(t, newTestServer(source), "/api/v1/works/search?q=transformers&per_page=25&page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "transformers", gotReq.Query)
	assert.Equal(t, 25, gotReq.PerPage)
	assert.Equal(t, 2, gotReq.Page)

	var resp struct {
		Works []struct {
			Title          string   `json:"title"`
			Authors        []string `json:"authors"`
			DisplayAuthors []string `json:"display_authors"`
			CitationCount  int      `json:"citation_count"`
			DOI            string   `json:"doi"`
		} `json:"works"`
		TotalCount int `json:"total_count"`
		Page       int `json:"page"`
		PerPage    int `json:"per_page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Works, 1)
	assert.Equal(t, "Attention Is All You Need", resp.Works[0].Title)
	assert.Equal(t, []string{"Ashish Vaswani", "Noam Shazeer"}, resp.Works[0].Authors)
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 25, resp.PerPage)
}

func TestSearchWorks_EmptyQuery(t *testing.T) {
	called := false
	source := &mockSource{
		enabled: true,
		searchWorksFn: func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
			called = true
			return nil, nil
		},
	}

	for _, target := range []string{
		"/api/v1/works/search",
		"/api/v1/works/search?q=",
		"/api/v1/works/search?q=%20%20",
	} {
		rec := doRequest(t, newTestServer(source), target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	// Rejected before any upstream call.
	assert.False(t, called)
}

func TestSearchWorks_InvalidPagination(t *testing.T) {
	source := &mockSource{enabled: true}
	s := newTestServer(source)

	rec := doRequest(t, s, "/api/v1/works/search?q=ml&per_page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, "/api/v1/works/search?q=ml&page=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchWorks_ClampsAndCoerces(t *testing.T) {
	var gotReq domain.SearchRequest
	source := &mockSource{
		enabled: true,
		searchWorksFn: func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
			gotReq = req
			return &domain.Page[domain.WorkSummary]{Items: []domain.WorkSummary{}, Page: req.Page, PerPage: req.PerPage}, nil
		},
	}

	rec := doRequest(t, newTestServer(source), "/api/v1/works/search?q=ml&per_page=500&page=-2")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.MaxPerPage, gotReq.PerPage)
	assert.Equal(t, 1, gotReq.Page)
}

func TestSearchWorks_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"malformed upstream payload", domain.NewMalformedResponseError("OpenAlex", "missing results"), http.StatusBadGateway},
		{"upstream api error", domain.NewExternalAPIError("OpenAlex", 500, "boom", nil), http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"upstream unreachable", fmt.Errorf("executing request: %w: request failed: connection refused", domain.ErrServiceUnavailable), http.StatusBadGateway},
		{"upstream rate limited", fmt.Errorf("executing request: %w: max retries exhausted after 4 attempts, last status: 429", domain.ErrRateLimited), http.StatusTooManyRequests},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockSource{
				enabled: true,
				searchWorksFn: func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.WorkSummary], error) {
					return nil, tt.err
				},
			}

			rec := doRequest(t, newTestServer(source), "/api/v1/works/search?q=ml")
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

// ---------------------------------------------------------------------------
// Authors search
// ---------------------------------------------------------------------------

func TestSearchAuthors_Success(t *testing.T) {
	source := &mockSource{
		enabled: true,
		searchAuthorsFn: func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error) {
			return &domain.Page[domain.AuthorSummary]{
				Items: []domain.AuthorSummary{
					{
						Name:          "Jennifer Doudna",
						ORCID:         "https://orcid.org/0000-0001-9161-999X",
						Institution:   "UC Berkeley",
						WorksCount:    789,
						CitationCount: 120000,
						HIndex:        140,
						I10Index:      520,
						Concepts:      []string{"Biology", "Genetics"},
						OpenAlexID:    "https://openalex.org/A5023888391",
					},
				},
				TotalCount: 1,
				Page:       req.Page,
				PerPage:    req.PerPage,
			}, nil
		},
	}

	rec := doRequest(t, newTestServer(source), "/api/v1/authors/search?q=doudna")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Authors []struct {
			Name     string `json:"name"`
			HIndex   int    `json:"h_index"`
			I10Index int    `json:"i10_index"`
		} `json:"authors"`
		TotalCount int `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Authors, 1)
	assert.Equal(t, "Jennifer Doudna", resp.Authors[0].Name)
	assert.Equal(t, 140, resp.Authors[0].HIndex)
	assert.Equal(t, 520, resp.Authors[0].I10Index)
}

func TestSearchAuthors_EmptyQuery(t *testing.T) {
	rec := doRequest(t, newTestServer(&mockSource{enabled: true}), "/api/v1/authors/search?q=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAuthors_ZeroMetricsRenderAsZero(t *testing.T) {
	source := &mockSource{
		enabled: true,
		searchAuthorsFn: func(ctx context.Context, req domain.SearchRequest) (*domain.Page[domain.AuthorSummary], error) {
			return &domain.Page[domain.AuthorSummary]{
				Items:      []domain.AuthorSummary{{Name: "Sparse Author"}},
				TotalCount: 1,
				Page:       req.Page,
				PerPage:    req.PerPage,
			}, nil
		},
	}

	rec := doRequest(t, newTestServer(source), "/api/v1/authors/search?q=sparse")
	require.Equal(t, http.StatusOK, rec.Code)

	// h_index and i10_index serialize explicitly as 0, not omitted.
	assert.Contains(t, rec.Body.String(), `"h_index":0`)
	assert.Contains(t, rec.Body.String(), `"i10_index":0`)
}

// ---------------------------------------------------------------------------
// Health endpoints
// ---------------------------------------------------------------------------

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestServer(&mockSource{enabled: true}), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestReadyz(t *testing.T) {
	t.Run("ready when source enabled", func(t *testing.T) {
		rec := doRequest(t, newTestServer(&mockSource{enabled: true}), "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready when source disabled", func(t *testing.T) {
		rec := doRequest(t, newTestServer(&mockSource{enabled: false}), "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
