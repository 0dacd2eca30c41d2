package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chrismlittle123/finchly/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialExtract(t *testing.T) {
	syndication := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123456", r.URL.Query().Get("id"))
		assert.Equal(t, "0", r.URL.Query().Get("token"))
		w.Write([]byte(`{
			"text": "Short text",
			"user": {"name": "Ada", "screen_name": "ada"},
			"entities": {"urls": [
				{"expanded_url": "https://example.com/paper"},
				{"expanded_url": "https://x.com/i/article/789"}
			]},
			"photos": [{"url": "https://img.example.com/p.jpg"}]
		}`))
	}))
	defer syndication.Close()

	fullText := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 200, "tweet": {"text": "Short text but actually much longer untruncated version"}}`))
	}))
	defer fullText.Close()

	extractor := NewSocial(NewConfig(
		WithSyndicationBaseURL(syndication.URL),
		WithFullTextBaseURL(fullText.URL),
	))

	result, err := extractor.Extract(context.Background(), "https://x.com/ada/status/123456")
	require.NoError(t, err)

	assert.Equal(t, "Ada (@ada)", result.Title)
	assert.Equal(t, core.SourceSocialPost, result.Source)
	assert.Contains(t, result.RawContent, "untruncated version")
	assert.Equal(t, "https://img.example.com/p.jpg", result.ImageURL)
	// Article self-links are filtered out of discovered URLs
	assert.Equal(t, []string{"https://example.com/paper"}, result.ExtractedURLs)
}

func TestSocialExtractShorterFullText(t *testing.T) {
	syndication := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "The longer syndication text wins here", "user": {"name": "Ada", "screen_name": "ada"}, "entities": {"urls": []}}`))
	}))
	defer syndication.Close()

	fullText := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 200, "tweet": {"text": "tiny"}}`))
	}))
	defer fullText.Close()

	extractor := NewSocial(NewConfig(
		WithSyndicationBaseURL(syndication.URL),
		WithFullTextBaseURL(fullText.URL),
	))

	result, err := extractor.Extract(context.Background(), "https://x.com/ada/status/1")
	require.NoError(t, err)
	assert.Contains(t, result.RawContent, "The longer syndication text wins here")
}

func TestSocialExtractArticle(t *testing.T) {
	syndication := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"text": "check out my article",
			"user": {"name": "Ada", "screen_name": "ada"},
			"entities": {"urls": []},
			"photos": [{"url": "https://img.example.com/p.jpg"}],
			"article": {
				"title": "On Computation",
				"preview_text": "A preview.",
				"cover_media": {"media_info": {"original_img_url": "https://img.example.com/cover.jpg"}}
			}
		}`))
	}))
	defer syndication.Close()

	extractor := NewSocial(NewConfig(
		WithSyndicationBaseURL(syndication.URL),
		WithFullTextBaseURL("http://127.0.0.1:1"),
	))

	result, err := extractor.Extract(context.Background(), "https://x.com/ada/status/2")
	require.NoError(t, err)
	assert.Equal(t, "On Computation", result.Title)
	assert.Equal(t, "On Computation\n\nA preview.", result.Description)
	// Article cover takes priority over the photo
	assert.Equal(t, "https://img.example.com/cover.jpg", result.ImageURL)
	assert.Contains(t, result.RawContent, "Article: On Computation")
}

func TestSocialExtractBareResults(t *testing.T) {
	t.Run("no post ID in URL", func(t *testing.T) {
		extractor := NewSocial(NewConfig())
		result, err := extractor.Extract(context.Background(), "https://x.com/ada")
		require.NoError(t, err)
		assert.Equal(t, &core.ExtractionResult{Source: core.SourceSocialPost}, result)
	})

	t.Run("syndication returns non-success", func(t *testing.T) {
		syndication := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer syndication.Close()

		extractor := NewSocial(NewConfig(
			WithSyndicationBaseURL(syndication.URL),
			WithFullTextBaseURL("http://127.0.0.1:1"),
		))
		result, err := extractor.Extract(context.Background(), "https://x.com/ada/status/3")
		require.NoError(t, err)
		assert.Equal(t, &core.ExtractionResult{Source: core.SourceSocialPost}, result)
	})

	t.Run("full-text failure is ignored", func(t *testing.T) {
		syndication := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"text": "hello", "user": {"name": "Ada", "screen_name": "ada"}, "entities": {"urls": []}}`))
		}))
		defer syndication.Close()

		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer slow.Close()

		config := NewConfig(
			WithSyndicationBaseURL(syndication.URL),
			WithFullTextBaseURL(slow.URL),
		)
		config.FullTextTimeout = 10 * time.Millisecond

		extractor := NewSocial(config)
		result, err := extractor.Extract(context.Background(), "https://x.com/ada/status/4")
		require.NoError(t, err)
		assert.Contains(t, result.RawContent, "hello")
	})
}
