package enrich

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/core"
	"github.com/chrismlittle123/finchly/extract"
	"github.com/chrismlittle123/finchly/storage"
	"github.com/panjf2000/ants/v2"
)

// maxDiscoveryDepth bounds recursive enrichment of URLs discovered
// inside content. Depth 0 is the saved link itself; its discovered URLs
// are enriched at depth 1 and their own discoveries are not followed.
const maxDiscoveryDepth = 1

// Pipeline orchestrates link enrichment: classification, extraction,
// summarization, embedding, persistence, and bounded discovery of
// nested URLs.
type Pipeline struct {
	repository storage.LinkRepository
	provider   ai.AIProvider
	extractors *extract.Set
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for asynchronous enrichment.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new enrichment pipeline.
func NewPipeline(
	repository storage.LinkRepository,
	provider ai.AIProvider,
	extractors *extract.Set,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if extractors == nil {
		return nil, ErrExtractorsRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		provider:   provider,
		extractors: extractors,
		pool:       pool,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Submit schedules asynchronous enrichment for a URL. Errors during
// processing are logged but never surface to the caller.
func (p *Pipeline) Submit(url string) {
	p.pool.Submit(func() {
		if err := p.enrich(context.Background(), url, 0); err != nil {
			p.logger.Error("error enriching link", "url", url, "err", err)
		}
	})
}

// EnrichLink runs a full enrichment pass for a URL synchronously.
// Extraction and model failures degrade the result rather than failing
// the run; only persistence errors are returned.
func (p *Pipeline) EnrichLink(ctx context.Context, url string) error {
	return p.enrich(ctx, url, 0)
}

func (p *Pipeline) enrich(ctx context.Context, url string, depth int) error {
	kind := core.DetectSourceKind(url)
	result := p.extract(ctx, url, kind)

	enrichment := &core.Enrichment{
		Title:       result.Title,
		Description: result.Description,
		ImageURL:    result.ImageURL,
		RawContent:  result.RawContent,
		Source:      result.Source,
	}

	if summary := p.summarize(ctx, url, result); summary != nil {
		enrichment.Summary = summary.Summary
		enrichment.Tags = summary.Tags
	}

	enrichment.Vector = p.embed(ctx, url, result, enrichment.Summary)

	if err := p.repository.UpdateEnrichment(ctx, url, enrichment); err != nil {
		return err
	}

	p.logger.Info("link enriched", "url", url, "source", result.Source.String(),
		"depth", depth, "discovered", len(result.ExtractedURLs))

	if depth < maxDiscoveryDepth {
		p.discover(ctx, result.ExtractedURLs, depth+1)
	}

	return nil
}

// extract runs the source-specific extractor with the webpage extractor
// as fallback. A successful fallback persists as a webpage; only when
// both fail does the link keep its original classification alone.
func (p *Pipeline) extract(ctx context.Context, url string, kind core.SourceKind) *core.ExtractionResult {
	result, err := p.extractors.ForSource(kind).Extract(ctx, url)
	if err == nil {
		return result
	}
	p.logger.Warn("extraction failed, falling back to webpage", "url", url,
		"source", kind.String(), "err", err)

	if kind != core.SourceWebpage {
		result, err = p.extractors.Fallback().Extract(ctx, url)
		if err == nil {
			return result
		}
		p.logger.Warn("fallback extraction failed", "url", url, "err", err)
	}

	return &core.ExtractionResult{Source: kind}
}

// summarize picks the richest available text and asks the model for a
// summary and tags. A nil result means there was nothing to summarize
// or the model declined.
func (p *Pipeline) summarize(ctx context.Context, url string, result *core.ExtractionResult) *core.SummaryResult {
	input := result.RawContent
	if input == "" {
		input = result.Description
	}
	if input == "" {
		input = result.Title
	}
	if input == "" {
		return nil
	}

	summary, err := p.provider.Summarizer().Summarize(ctx, input)
	if err != nil {
		p.logger.Warn("summarization failed", "url", url, "err", err)
		return nil
	}
	return summary
}

// embed joins the textual fields into a single document and embeds it.
// Returns nil when there is no text or no embedding service.
func (p *Pipeline) embed(ctx context.Context, url string, result *core.ExtractionResult, summary string) []float32 {
	var parts []string
	for _, s := range []string{result.Title, result.Description, summary, result.RawContent} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	vector, err := p.provider.Embedder().EmbedText(ctx, strings.Join(parts, "\n\n"))
	if err != nil {
		p.logger.Warn("embedding failed", "url", url, "err", err)
		return nil
	}
	return vector
}

// discover inserts URLs found inside content and schedules them for
// enrichment at the next depth. URLs that were already saved are
// scheduled too, so a stale link rediscovered inside a post gets
// refreshed. Child failures are logged only.
func (p *Pipeline) discover(ctx context.Context, urls []string, depth int) {
	for _, discovered := range urls {
		link := &core.Link{
			URL:    discovered,
			Source: core.DetectSourceKind(discovered),
		}

		if _, err := p.repository.InsertIfAbsent(ctx, link); err != nil {
			p.logger.Warn("could not insert discovered link", "url", discovered, "err", err)
			continue
		}

		childURL := discovered
		p.pool.Submit(func() {
			if err := p.enrich(context.Background(), childURL, depth); err != nil {
				p.logger.Error("error enriching discovered link", "url", childURL, "err", err)
			}
		})
	}
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
