package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrismlittle123/finchly/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebpageExtract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/scrape", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req scrapeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com/post", req.URL)
		assert.Equal(t, []string{"markdown"}, req.Formats)

		w.Write([]byte(`{
			"success": true,
			"data": {
				"markdown": "# Heading\n\nBody text.",
				"metadata": {"title": "A Post", "description": "About things", "ogImage": "https://example.com/og.png"}
			}
		}`))
	}))
	defer server.Close()

	extractor := NewWebpage(NewConfig(
		WithScrapeAPIKey("test-key"),
		WithScrapeBaseURL(server.URL),
	))

	result, err := extractor.Extract(context.Background(), "https://example.com/post")
	require.NoError(t, err)
	assert.Equal(t, "A Post", result.Title)
	assert.Equal(t, "About things", result.Description)
	assert.Equal(t, "https://example.com/og.png", result.ImageURL)
	assert.Equal(t, "# Heading\n\nBody text.", result.RawContent)
	assert.Equal(t, core.SourceWebpage, result.Source)
}

func TestWebpageExtractBareResults(t *testing.T) {
	t.Run("no API key", func(t *testing.T) {
		extractor := NewWebpage(NewConfig())
		result, err := extractor.Extract(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, &core.ExtractionResult{Source: core.SourceWebpage}, result)
	})

	t.Run("scrape error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		extractor := NewWebpage(NewConfig(
			WithScrapeAPIKey("test-key"),
			WithScrapeBaseURL(server.URL),
		))
		result, err := extractor.Extract(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, &core.ExtractionResult{Source: core.SourceWebpage}, result)
	})

	t.Run("unsuccessful scrape body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false}`))
		}))
		defer server.Close()

		extractor := NewWebpage(NewConfig(
			WithScrapeAPIKey("test-key"),
			WithScrapeBaseURL(server.URL),
		))
		result, err := extractor.Extract(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, &core.ExtractionResult{Source: core.SourceWebpage}, result)
	})
}

func TestSetForSource(t *testing.T) {
	set := NewSet(NewConfig())

	assert.IsType(t, &CodeHost{}, set.ForSource(core.SourceCodeHost))
	assert.IsType(t, &Social{}, set.ForSource(core.SourceSocialPost))
	assert.IsType(t, &Webpage{}, set.ForSource(core.SourceWebpage))
	assert.IsType(t, &Webpage{}, set.Fallback())
}
