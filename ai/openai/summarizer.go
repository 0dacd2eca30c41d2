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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements ai.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client   llms.Model // nil when the LLM service is unconfigured
	maxChars int
	logger   *slog.Logger
}

// summaryPayload matches the strict JSON the model is instructed to return.
type summaryPayload struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Summarizer{
		maxChars: config.SummaryMaxChars,
		logger:   slog.Default().With("component", "openai-summarizer"),
	}

	if !config.LLMConfigured() {
		return s, nil
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	s.client = client

	return s, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize derives a summary and taxonomy-filtered tags for the content.
// Returns (nil, nil) when no model is configured or the model output is
// not parseable JSON. It never retries.
func (s *Summarizer) Summarize(ctx context.Context, content string) (*core.SummaryResult, error) {
	if s.client == nil {
		s.logger.Debug("no LLM configured, skipping summarization")
		return nil, nil
	}

	truncated := truncateWithEllipsis(content, s.maxChars)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSummarySystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(truncated),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, messages,
		llms.WithTemperature(0.0), llms.WithMaxTokens(256))
	if err != nil {
		s.logger.Error("summary generation failed", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		s.logger.Debug("no choices returned from model")
		return nil, nil
	}

	result := parseSummaryResponse(response.Choices[0].Content)
	if result == nil {
		s.logger.Warn("failed to parse summary response as JSON",
			"response", response.Choices[0].Content)
		return nil, nil
	}

	return result, nil
}

// parseSummaryResponse parses raw model output into a SummaryResult.
// Markdown code fences are stripped before parsing; tags outside the
// taxonomy are dropped. Returns nil if the payload is not valid JSON.
func parseSummaryResponse(raw string) *core.SummaryResult {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload summaryPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil
	}

	return &core.SummaryResult{
		Summary: payload.Summary,
		Tags:    ai.ValidTags(payload.Tags),
	}
}

// newChatClient builds an OpenAI-compatible chat client from the config.
// Uses "none" as token for local services that don't require authentication.
func newChatClient(config *ai.Config) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(config.LLMModel),
		openai.WithToken(tokenOrNone(config.LLMAPIKey)),
	}
	if config.LLMHost != "" {
		opts = append(opts, openai.WithBaseURL(config.LLMHost))
	}
	return openai.New(opts...)
}

func tokenOrNone(token string) string {
	if token == "" {
		return "none"
	}
	return token
}
