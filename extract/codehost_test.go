package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chrismlittle123/finchly/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCodeHostServer serves repo metadata plus file contents keyed by
// "path@ref". The enterprise client prefixes requests with /api/v3.
func newCodeHostServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v3/repos/ada/engine", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"full_name": "ada/engine",
			"description": "An analytical engine",
			"owner": {"avatar_url": "https://avatars.example.com/ada.png"},
			"default_branch": "main"
		}`))
	})

	mux.HandleFunc("/api/v3/repos/ada/engine/contents/", func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path[len("/api/v3/repos/ada/engine/contents/"):]
		key := path + "@" + r.URL.Query().Get("ref")
		content, ok := files[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
			return
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(content))
		fmt.Fprintf(w, `{"type": "file", "path": %q, "content": %q, "encoding": "base64"}`, path, encoded)
	})

	return httptest.NewServer(mux)
}

func TestCodeHostExtractRoot(t *testing.T) {
	server := newCodeHostServer(t, map[string]string{
		"README.md@main": "# Engine\n\nThe readme.",
	})
	defer server.Close()

	extractor := NewCodeHost(NewConfig(WithGitHubBaseURL(server.URL + "/")))

	result, err := extractor.Extract(context.Background(), "https://github.com/ada/engine")
	require.NoError(t, err)
	assert.Equal(t, "ada/engine", result.Title)
	assert.Equal(t, "An analytical engine", result.Description)
	assert.Equal(t, "https://avatars.example.com/ada.png", result.ImageURL)
	assert.Equal(t, "# Engine\n\nThe readme.", result.RawContent)
	assert.Equal(t, core.SourceCodeHost, result.Source)
}

func TestCodeHostExtractBlob(t *testing.T) {
	server := newCodeHostServer(t, map[string]string{
		"pkg/loop.go@v1.2.0": "package pkg\n",
	})
	defer server.Close()

	extractor := NewCodeHost(NewConfig(WithGitHubBaseURL(server.URL + "/")))

	result, err := extractor.Extract(context.Background(), "https://github.com/ada/engine/blob/v1.2.0/pkg/loop.go")
	require.NoError(t, err)
	assert.Equal(t, "ada/engine/pkg/loop.go", result.Title)
	assert.Equal(t, "package pkg\n", result.RawContent)
}

func TestCodeHostExtractTree(t *testing.T) {
	server := newCodeHostServer(t, map[string]string{
		"docs/README.md@main": "docs readme",
	})
	defer server.Close()

	extractor := NewCodeHost(NewConfig(WithGitHubBaseURL(server.URL + "/")))

	result, err := extractor.Extract(context.Background(), "https://github.com/ada/engine/tree/main/docs")
	require.NoError(t, err)
	assert.Equal(t, "ada/engine", result.Title)
	assert.Equal(t, "docs readme", result.RawContent)

	t.Run("missing directory readme keeps metadata", func(t *testing.T) {
		result, err := extractor.Extract(context.Background(), "https://github.com/ada/engine/tree/main/cmd")
		require.NoError(t, err)
		assert.Equal(t, "ada/engine", result.Title)
		assert.Empty(t, result.RawContent)
	})
}

func TestCodeHostExtractUnparseableURL(t *testing.T) {
	extractor := NewCodeHost(NewConfig())

	result, err := extractor.Extract(context.Background(), "https://github.com/ada")
	require.NoError(t, err)
	assert.Equal(t, &core.ExtractionResult{Source: core.SourceCodeHost}, result)
}
