// Copyright 2025 The Finchly Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import "errors"

// Config holds configuration for the model services. A service with
// neither an API key nor a host override is treated as unconfigured and
// its operations degrade per the interface contracts.
type Config struct {
	// EmbeddingHost is an optional base URL for the embedding service.
	// Empty means the default host of an OpenAI-compatible API.
	EmbeddingHost string

	// EmbeddingModel is the model identifier for text embeddings.
	EmbeddingModel string

	// EmbeddingAPIKey authenticates against the embedding service.
	EmbeddingAPIKey string

	// LLMHost is an optional base URL for the chat/completion service.
	LLMHost string

	// LLMModel is the model identifier for summarization and answers.
	LLMModel string

	// LLMAPIKey authenticates against the chat/completion service.
	LLMAPIKey string

	// FallbackModels is an ordered list of models to try when the
	// primary LLMModel fails on an answer-generation call.
	FallbackModels []string

	// SummaryMaxChars bounds the content prefix sent for summarization.
	// Default: 4000
	SummaryMaxChars int

	// EmbedMaxChars bounds the text prefix sent for embedding, matching
	// the embedding model's input limit. Default: 8000
	EmbedMaxChars int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithEmbeddingAPIKey sets the embedding service API key.
func WithEmbeddingAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingAPIKey = key
	}
}

// WithLLMHost sets the chat/completion service host URL.
func WithLLMHost(host string) ConfigOption {
	return func(c *Config) {
		c.LLMHost = host
	}
}

// WithLLMModel sets the chat/completion model identifier.
func WithLLMModel(model string) ConfigOption {
	return func(c *Config) {
		c.LLMModel = model
	}
}

// WithLLMAPIKey sets the chat/completion service API key.
func WithLLMAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.LLMAPIKey = key
	}
}

// WithFallbackModels sets the ordered fallback model list for answers.
func WithFallbackModels(models ...string) ConfigOption {
	return func(c *Config) {
		c.FallbackModels = models
	}
}

// DefaultConfig returns a Config with sensible defaults. Both services
// start unconfigured; keys or host overrides come from options.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel:  "text-embedding-3-small",
		LLMModel:        "gpt-4o-mini",
		SummaryMaxChars: 4000,
		EmbedMaxChars:   8000,
	}
}

// NewConfig creates a Config with default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// EmbeddingConfigured reports whether the embedding service is reachable.
func (c *Config) EmbeddingConfigured() bool {
	return c.EmbeddingAPIKey != "" || c.EmbeddingHost != ""
}

// LLMConfigured reports whether the chat/completion service is reachable.
func (c *Config) LLMConfigured() bool {
	return c.LLMAPIKey != "" || c.LLMHost != ""
}

// Validate checks that the configuration is complete enough to build a
// provider. Unconfigured services are allowed; missing model names for a
// configured service are not.
func (c *Config) Validate() error {
	if c.EmbeddingConfigured() && c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.LLMConfigured() && c.LLMModel == "" {
		return errors.New("ai config: LLMModel is required")
	}
	if c.SummaryMaxChars < 1 {
		return errors.New("ai config: SummaryMaxChars must be positive")
	}
	if c.EmbedMaxChars < 1 {
		return errors.New("ai config: EmbedMaxChars must be positive")
	}
	return nil
}
