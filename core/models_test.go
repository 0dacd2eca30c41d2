package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFromURL(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromURL("https://example.com/page")
		b := IDFromURL("https://example.com/page")
		assert.Equal(t, a, b)
	})

	t.Run("distinct urls distinct ids", func(t *testing.T) {
		a := IDFromURL("https://example.com/page")
		b := IDFromURL("https://example.com/other")
		assert.NotEqual(t, a, b)
	})
}

func TestLinkEnriched(t *testing.T) {
	link := &Link{URL: "https://example.com"}
	assert.False(t, link.Enriched())

	link.EnrichedAt = time.Now().UTC()
	assert.True(t, link.Enriched())
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		link    *Link
		wantErr error
	}{
		{"valid https", &Link{URL: "https://example.com/x"}, nil},
		{"valid http", &Link{URL: "http://example.com"}, nil},
		{"nil link", nil, ErrInvalidLink},
		{"empty url", &Link{}, ErrEmptyURL},
		{"bad scheme", &Link{URL: "ftp://example.com/x"}, ErrUnsupportedScheme},
		{"no host", &Link{URL: "https://"}, ErrMalformedURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLink(tt.link)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
