package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSourceKind(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want SourceKind
	}{
		{"github repo", "https://github.com/acme/widgets", SourceCodeHost},
		{"github with www", "https://www.github.com/acme/widgets", SourceCodeHost},
		{"github uppercase host", "https://GitHub.com/acme/widgets", SourceCodeHost},
		{"x post", "https://x.com/someone/status/123", SourceSocialPost},
		{"twitter mirror", "https://twitter.com/someone/status/123", SourceSocialPost},
		{"mobile twitter", "https://mobile.twitter.com/someone/status/123", SourceSocialPost},
		{"www x", "https://www.x.com/someone/status/123", SourceSocialPost},
		{"plain webpage", "https://example.com/article", SourceWebpage},
		{"github lookalike", "https://notgithub.com/acme/widgets", SourceWebpage},
		{"unparsable", "http://[::1]:namedport", SourceWebpage},
		{"empty", "", SourceWebpage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSourceKind(tt.url))
		})
	}
}

func TestParseCodeHostURL(t *testing.T) {
	t.Run("owner and repo", func(t *testing.T) {
		ref := ParseCodeHostURL("https://github.com/acme/widgets")
		require.NotNil(t, ref)
		assert.Equal(t, "acme", ref.Owner)
		assert.Equal(t, "widgets", ref.Repo)
		assert.Equal(t, RefRoot, ref.Kind)
		assert.Empty(t, ref.Ref)
		assert.Empty(t, ref.Path)
	})

	t.Run("blob with path", func(t *testing.T) {
		ref := ParseCodeHostURL("https://github.com/acme/widgets/blob/main/src/index.ts")
		require.NotNil(t, ref)
		assert.Equal(t, RefBlob, ref.Kind)
		assert.Equal(t, "main", ref.Ref)
		assert.Equal(t, "src/index.ts", ref.Path)
	})

	t.Run("tree with path", func(t *testing.T) {
		ref := ParseCodeHostURL("https://github.com/acme/widgets/tree/v2.1.0/docs")
		require.NotNil(t, ref)
		assert.Equal(t, RefTree, ref.Kind)
		assert.Equal(t, "v2.1.0", ref.Ref)
		assert.Equal(t, "docs", ref.Path)
	})

	t.Run("three segments stays root", func(t *testing.T) {
		ref := ParseCodeHostURL("https://github.com/acme/widgets/issues")
		require.NotNil(t, ref)
		assert.Equal(t, RefRoot, ref.Kind)
	})

	t.Run("third segment not blob or tree", func(t *testing.T) {
		ref := ParseCodeHostURL("https://github.com/acme/widgets/pull/42")
		require.NotNil(t, ref)
		assert.Equal(t, RefRoot, ref.Kind)
		assert.Empty(t, ref.Ref)
	})

	t.Run("bare host", func(t *testing.T) {
		assert.Nil(t, ParseCodeHostURL("https://github.com"))
	})

	t.Run("owner only", func(t *testing.T) {
		assert.Nil(t, ParseCodeHostURL("https://github.com/acme"))
	})

	t.Run("wrong host", func(t *testing.T) {
		assert.Nil(t, ParseCodeHostURL("https://example.com/acme/widgets"))
	})
}

func TestExtractPostID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"user status", "https://x.com/someone/status/1234567890", "1234567890"},
		{"twitter host", "https://twitter.com/someone/status/99", "99"},
		{"i status", "https://x.com/i/status/42", "42"},
		{"query suffix", "https://x.com/someone/status/555?s=20", "555"},
		{"no status segment", "https://x.com/someone", ""},
		{"non numeric", "https://x.com/someone/status/abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPostID(tt.url))
		})
	}
}

func TestExtractURLs(t *testing.T) {
	t.Run("multiple urls", func(t *testing.T) {
		urls := ExtractURLs("check https://a.example/one and http://b.example/two out")
		assert.Equal(t, []string{"https://a.example/one", "http://b.example/two"}, urls)
	})

	t.Run("angle bracket delimited", func(t *testing.T) {
		urls := ExtractURLs("<https://a.example/one>")
		assert.Equal(t, []string{"https://a.example/one"}, urls)
	})

	t.Run("no urls", func(t *testing.T) {
		assert.Empty(t, ExtractURLs("nothing to see here"))
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, ExtractURLs(""))
	})
}
