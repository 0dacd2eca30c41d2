package extract

import (
	"context"

	"github.com/chrismlittle123/finchly/core"
)

// Extractor produces normalized content for a URL. Implementations
// degrade to a bare result (just the source kind) rather than failing
// when an upstream service is unavailable or unconfigured; errors are
// reserved for conditions the caller may want to fall back on.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) (*core.ExtractionResult, error)
}

// Set bundles the per-source extractors.
type Set struct {
	webpage  *Webpage
	codeHost *CodeHost
	social   *Social
}

// NewSet creates extractors for every source kind from a shared config.
func NewSet(config *Config) *Set {
	return &Set{
		webpage:  NewWebpage(config),
		codeHost: NewCodeHost(config),
		social:   NewSocial(config),
	}
}

// ForSource returns the extractor for a source kind. Unknown kinds fall
// back to the webpage extractor.
func (s *Set) ForSource(kind core.SourceKind) Extractor {
	switch kind {
	case core.SourceCodeHost:
		return s.codeHost
	case core.SourceSocialPost:
		return s.social
	default:
		return s.webpage
	}
}

// Fallback returns the webpage extractor, which doubles as the
// universal fallback when a specialized extractor fails.
func (s *Set) Fallback() Extractor {
	return s.webpage
}
