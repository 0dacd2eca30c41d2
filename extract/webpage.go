package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/chrismlittle123/finchly/core"
)

// scrapeRequest is the scrape service request body.
type scrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
}

// scrapeResponse is the scrape service response body.
type scrapeResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OGImage     string `json:"ogImage"`
		} `json:"metadata"`
	} `json:"data"`
}

// Webpage extracts page content through an external scrape service.
// It is also the universal fallback for failed specialized extractors.
type Webpage struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Extractor = (*Webpage)(nil)

// NewWebpage creates a webpage extractor.
func NewWebpage(config *Config) *Webpage {
	return &Webpage{
		config:     config,
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		logger:     slog.Default().With("component", "extract.webpage"),
	}
}

// Extract scrapes the page as markdown. A missing API key or an
// unsuccessful scrape yields a bare result so the pipeline can still
// store the link with source classification only.
func (e *Webpage) Extract(ctx context.Context, rawURL string) (*core.ExtractionResult, error) {
	bare := &core.ExtractionResult{Source: core.SourceWebpage}

	if e.config.ScrapeAPIKey == "" {
		e.logger.Debug("scrape key not set, skipping webpage extraction")
		return bare, nil
	}

	body, err := json.Marshal(scrapeRequest{URL: rawURL, Formats: []string{"markdown"}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.config.ScrapeBaseURL+"/v1/scrape", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.config.ScrapeAPIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.logger.Warn("scrape failed", "status", resp.StatusCode, "url", rawURL)
		return bare, nil
	}

	var scraped scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&scraped); err != nil {
		return nil, err
	}
	if !scraped.Success || scraped.Data == nil {
		e.logger.Warn("scrape returned unsuccessful response", "url", rawURL)
		return bare, nil
	}

	return &core.ExtractionResult{
		Title:       scraped.Data.Metadata.Title,
		Description: scraped.Data.Metadata.Description,
		ImageURL:    scraped.Data.Metadata.OGImage,
		RawContent:  scraped.Data.Markdown,
		Source:      core.SourceWebpage,
	}, nil
}
