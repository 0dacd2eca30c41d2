package extract

import "time"

// Config holds settings for the content extractors. Base URLs are
// overridable so tests can point extractors at local servers.
type Config struct {
	// GitHubToken authenticates code-host API calls. Optional; unauthenticated
	// requests work with lower rate limits.
	GitHubToken string

	// GitHubBaseURL overrides the code-host API endpoint.
	GitHubBaseURL string

	// ScrapeAPIKey authenticates the scrape service. When empty the
	// webpage extractor returns bare results.
	ScrapeAPIKey string

	// ScrapeBaseURL is the scrape service endpoint.
	ScrapeBaseURL string

	// SyndicationBaseURL is the social syndication endpoint.
	SyndicationBaseURL string

	// FullTextBaseURL is the full-text social endpoint.
	FullTextBaseURL string

	// HTTPTimeout bounds each external call.
	HTTPTimeout time.Duration

	// FullTextTimeout bounds the best-effort full-text fetch.
	FullTextTimeout time.Duration
}

// DefaultConfig returns a Config with production endpoints.
func DefaultConfig() *Config {
	return &Config{
		ScrapeBaseURL:      "https://api.firecrawl.dev",
		SyndicationBaseURL: "https://cdn.syndication.twimg.com",
		FullTextBaseURL:    "https://api.fxtwitter.com",
		HTTPTimeout:        30 * time.Second,
		FullTextTimeout:    5 * time.Second,
	}
}

// Option is a functional option for configuring extractors.
type Option func(*Config)

// WithGitHubToken sets the code-host API token.
func WithGitHubToken(token string) Option {
	return func(c *Config) {
		c.GitHubToken = token
	}
}

// WithGitHubBaseURL overrides the code-host API endpoint.
func WithGitHubBaseURL(url string) Option {
	return func(c *Config) {
		c.GitHubBaseURL = url
	}
}

// WithScrapeAPIKey sets the scrape service key.
func WithScrapeAPIKey(key string) Option {
	return func(c *Config) {
		c.ScrapeAPIKey = key
	}
}

// WithScrapeBaseURL overrides the scrape service endpoint.
func WithScrapeBaseURL(url string) Option {
	return func(c *Config) {
		c.ScrapeBaseURL = url
	}
}

// WithSyndicationBaseURL overrides the social syndication endpoint.
func WithSyndicationBaseURL(url string) Option {
	return func(c *Config) {
		c.SyndicationBaseURL = url
	}
}

// WithFullTextBaseURL overrides the full-text social endpoint.
func WithFullTextBaseURL(url string) Option {
	return func(c *Config) {
		c.FullTextBaseURL = url
	}
}

// WithHTTPTimeout sets the per-call timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// NewConfig creates a Config with defaults and applies options.
func NewConfig(opts ...Option) *Config {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}
