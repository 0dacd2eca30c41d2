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


package reembed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/core"
	"github.com/chrismlittle123/finchly/storage"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of links to embed in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of links)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Stats summarizes a reembedding run.
type Stats struct {
	// Total is the number of stored links examined.
	Total int

	// Embedded is the number of links that received a fresh vector.
	Embedded int

	// Skipped is the number of links without embeddable text.
	Skipped int
}

// Reembedder regenerates the embedding vector for every stored link.
// Used after switching embedding models, when stored vectors are no
// longer comparable to fresh ones.
type Reembedder struct {
	repo     storage.LinkRepository
	embedder ai.Embedder
	config   *Config
	progress io.Writer
}

// NewReembedder creates a new reembedder.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(repo storage.LinkRepository, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		repo:     repo,
		embedder: embedder,
		config:   config,
		progress: progress,
	}
}

// Run executes the reembedding operation over every stored link.
// Links without embeddable text are skipped; their stale vectors are
// left in place.
func (r *Reembedder) Run(ctx context.Context) (*Stats, error) {
	// Collect the work list up front; the set of links is small enough
	// that holding IDs and texts in memory is fine
	var ids []core.ID
	var texts []string
	stats := &Stats{}

	err := r.repo.IterateLinks(ctx, func(link *core.Link) error {
		stats.Total++
		text := EmbeddingText(link)
		if text == "" {
			stats.Skipped++
			return nil
		}
		ids = append(ids, link.Id)
		texts = append(texts, text)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate links: %w", err)
	}

	if len(ids) == 0 {
		fmt.Fprintf(r.progress, "No embeddable links found (%d links total)\n", stats.Total)
		return stats, nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d links (batch size: %d)\n",
		len(ids), r.config.BatchSize)

	reporter := newProgressReporter(r.progress, len(ids), r.config.ReportInterval)

	for start := 0; start < len(ids); start += r.config.BatchSize {
		end := start + r.config.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		if err := r.processBatch(ctx, ids[start:end], texts[start:end]); err != nil {
			return nil, err
		}

		stats.Embedded += end - start
		reporter.Advance(end - start)
	}

	elapsed := reporter.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d links in %v (%.1f links/sec)\n",
		stats.Embedded, elapsed.Round(time.Second), float64(stats.Embedded)/elapsed.Seconds())

	return stats, nil
}

// processBatch embeds one batch of texts with retry and persists the
// resulting vectors.
func (r *Reembedder) processBatch(ctx context.Context, ids []core.ID, texts []string) error {
	var embeddings [][]float32
	err := retryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = r.embedder.EmbedTexts(ctx, texts)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", r.config.MaxRetries, err)
	}

	if len(embeddings) != len(ids) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(ids), len(embeddings))
	}

	for i, id := range ids {
		if err := retryWithBackoff(ctx, func() error {
			return r.repo.UpdateVector(ctx, id, embeddings[i])
		}, r.config.MaxRetries, r.config.RetryDelay); err != nil {
			return fmt.Errorf("failed to update vector for link %d: %w", id, err)
		}
	}

	return nil
}

// EmbeddingText joins a link's textual fields into the document that
// gets embedded. Returns "" when the link has no text at all.
func EmbeddingText(link *core.Link) string {
	var parts []string
	for _, s := range []string{link.Title, link.Description, link.Summary, link.RawContent} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}
