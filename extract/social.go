package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chrismlittle123/finchly/core"
	"golang.org/x/sync/errgroup"
)

// syndicationPost mirrors the syndication CDN payload. Text may be
// truncated around 280 chars for long posts, which is why the full-text
// endpoint is consulted as well.
type syndicationPost struct {
	Text string `json:"text"`
	User struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	Entities struct {
		URLs []struct {
			ExpandedURL string `json:"expanded_url"`
		} `json:"urls"`
	} `json:"entities"`
	Photos []struct {
		URL string `json:"url"`
	} `json:"photos"`
	Video *struct {
		Poster string `json:"poster"`
	} `json:"video"`
	Article *struct {
		Title       string `json:"title"`
		PreviewText string `json:"preview_text"`
		CoverMedia  *struct {
			MediaInfo struct {
				OriginalImgURL string `json:"original_img_url"`
			} `json:"media_info"`
		} `json:"cover_media"`
	} `json:"article"`
}

// fullTextResponse mirrors the full-text API payload.
type fullTextResponse struct {
	Code  int `json:"code"`
	Tweet *struct {
		Text string `json:"text"`
	} `json:"tweet"`
}

// Social extracts post content from social URLs via the public
// syndication CDN, with a parallel full-text lookup for long posts.
type Social struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Extractor = (*Social)(nil)

// NewSocial creates a social post extractor.
func NewSocial(config *Config) *Social {
	return &Social{
		config:     config,
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		logger:     slog.Default().With("component", "extract.social"),
	}
}

// Extract fetches the syndication record and the full post text
// concurrently and merges them, preferring the longer text. A URL
// without a post ID or an empty syndication response yields a bare
// result, not an error.
func (e *Social) Extract(ctx context.Context, rawURL string) (*core.ExtractionResult, error) {
	postID := core.ExtractPostID(rawURL)
	if postID == "" {
		e.logger.Warn("could not extract post ID", "url", rawURL)
		return &core.ExtractionResult{Source: core.SourceSocialPost}, nil
	}

	var post *syndicationPost
	var fullText string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		post, err = e.fetchSyndication(gctx, postID)
		return err
	})
	g.Go(func() error {
		// Best-effort; failures never abort the syndication fetch
		fullText = e.fetchFullText(gctx, postID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if post == nil {
		e.logger.Warn("syndication returned no data", "url", rawURL, "post_id", postID)
		return &core.ExtractionResult{Source: core.SourceSocialPost}, nil
	}

	text := post.Text
	if len(fullText) > len(text) {
		e.logger.Info("using full-text endpoint", "post_id", postID,
			"syndication_len", len(post.Text), "full_len", len(fullText))
		text = fullText
	}

	return buildSocialResult(post, text), nil
}

// fetchSyndication retrieves the structured post record. A non-success
// status maps to a nil post, not an error.
func (e *Social) fetchSyndication(ctx context.Context, postID string) (*syndicationPost, error) {
	url := fmt.Sprintf("%s/tweet-result?id=%s&token=0", e.config.SyndicationBaseURL, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var post syndicationPost
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

// fetchFullText retrieves the untruncated post text. Best-effort: any
// failure returns "".
func (e *Social) fetchFullText(ctx context.Context, postID string) string {
	ctx, cancel := context.WithTimeout(ctx, e.config.FullTextTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/status/%s", e.config.FullTextBaseURL, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var body fullTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	if body.Tweet == nil {
		return ""
	}
	return body.Tweet.Text
}

// buildSocialResult assembles the extraction result from a post record
// and the chosen text.
func buildSocialResult(post *syndicationPost, text string) *core.ExtractionResult {
	// Syndication pre-resolves shortener URLs; article self-links are
	// dropped since the article content is already inlined.
	var externalURLs []string
	for _, u := range post.Entities.URLs {
		if strings.Contains(u.ExpandedURL, "x.com/i/article/") ||
			strings.Contains(u.ExpandedURL, "twitter.com/i/article/") {
			continue
		}
		externalURLs = append(externalURLs, u.ExpandedURL)
	}

	// Best image: article cover > first photo > video poster
	var imageURL string
	switch {
	case post.Article != nil && post.Article.CoverMedia != nil:
		imageURL = post.Article.CoverMedia.MediaInfo.OriginalImgURL
	case len(post.Photos) > 0:
		imageURL = post.Photos[0].URL
	case post.Video != nil:
		imageURL = post.Video.Poster
	}

	title := fmt.Sprintf("%s (@%s)", post.User.Name, post.User.ScreenName)
	description := text
	if post.Article != nil {
		title = post.Article.Title
		description = fmt.Sprintf("%s\n\n%s", post.Article.Title, post.Article.PreviewText)
	}

	var content strings.Builder
	fmt.Fprintf(&content, "@%s: %s", post.User.ScreenName, text)
	if post.Article != nil {
		fmt.Fprintf(&content, "\nArticle: %s\n%s", post.Article.Title, post.Article.PreviewText)
	}
	if len(externalURLs) > 0 {
		fmt.Fprintf(&content, "\nLinks: %s", strings.Join(externalURLs, ", "))
	}

	return &core.ExtractionResult{
		Title:         title,
		Description:   description,
		ImageURL:      imageURL,
		RawContent:    content.String(),
		Source:        core.SourceSocialPost,
		ExtractedURLs: externalURLs,
	}
}
