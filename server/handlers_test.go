package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrismlittle123/finchly/ai/mock"
	"github.com/chrismlittle123/finchly/core"
	"github.com/chrismlittle123/finchly/enrich"
	"github.com/chrismlittle123/finchly/extract"
	"github.com/chrismlittle123/finchly/search"
	"github.com/chrismlittle123/finchly/storage"
	"github.com/chrismlittle123/finchly/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, config *Config) (*Server, storage.LinkRepository, *mock.MockProvider) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	provider := mock.NewMockProvider()
	pipeline, err := enrich.NewPipeline(repo, provider, extract.NewSet(extract.NewConfig()))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	searcher, err := search.NewSearcher(repo, provider)
	require.NoError(t, err)
	rag, err := search.NewRAG(searcher, provider)
	require.NoError(t, err)

	return NewServer(repo, pipeline, searcher, rag, config), repo, provider
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s, _, _ := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleCreateLink(t *testing.T) {
	s, repo, _ := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/v1/links", map[string]string{"url": "https://example.com/post"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID     string `json:"id"`
		URL    string `json:"url"`
		Source string `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "https://example.com/post", created.URL)
	assert.Equal(t, "webpage", created.Source)

	stored, err := repo.FindByURL(context.Background(), "https://example.com/post")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/post", stored.URL)

	t.Run("duplicate URL conflicts", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/v1/links", map[string]string{"url": "https://example.com/post"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid URL rejected", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/v1/links", map[string]string{"url": "not-a-url"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleGetAndDeleteLink(t *testing.T) {
	s, repo, _ := newTestServer(t, nil)

	link := &core.Link{URL: "https://example.com/a", Source: core.SourceWebpage}
	_, err := repo.InsertIfAbsent(context.Background(), link)
	require.NoError(t, err)
	path := fmt.Sprintf("/v1/links/%d", link.Id)

	rec := doRequest(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("bad id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/links/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleListLinks(t *testing.T) {
	s, repo, _ := newTestServer(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.InsertIfAbsent(ctx, &core.Link{
			URL:    fmt.Sprintf("https://example.com/%d", i),
			Source: core.SourceWebpage,
		})
		require.NoError(t, err)
	}

	rec := doRequest(t, s, http.MethodGet, "/v1/links?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Links []json.RawMessage `json:"links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Links, 2)
}

func TestHandleSearch(t *testing.T) {
	s, repo, _ := newTestServer(t, nil)
	ctx := context.Background()

	text := "a post about Go generics"
	_, err := repo.InsertIfAbsent(ctx, &core.Link{URL: "https://example.com/go", Source: core.SourceWebpage})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateEnrichment(ctx, "https://example.com/go", &core.Enrichment{
		RawContent: text,
		Vector:     mock.DeterministicVector(text, 384),
	}))

	rec := doRequest(t, s, http.MethodPost, "/v1/search", map[string]any{"query": text})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []struct {
			URL        string  `json:"url"`
			Similarity float32 `json:"similarity"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "https://example.com/go", body.Results[0].URL)
	assert.InDelta(t, 1.0, body.Results[0].Similarity, 0.0001)

	t.Run("missing query", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/v1/search", map[string]any{"limit": 3})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleAsk(t *testing.T) {
	s, _, provider := newTestServer(t, nil)

	rec := doRequest(t, s, http.MethodPost, "/v1/ask", map[string]string{"question": "what was shared?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Answer  string            `json:"answer"`
		Sources []json.RawMessage `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "I don't have any relevant links to answer that question.", body.Answer)
	assert.Empty(t, body.Sources)
	assert.Equal(t, 0, provider.GetMockAnswerer().CallCount())
}
