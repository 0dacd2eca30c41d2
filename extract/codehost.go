package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"github.com/chrismlittle123/finchly/core"
	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// CodeHost extracts repository metadata and readme or file content from
// code-host URLs.
type CodeHost struct {
	client *gh.Client
	logger *slog.Logger
}

var _ Extractor = (*CodeHost)(nil)

// NewCodeHost creates a code-host extractor. An empty token means
// unauthenticated API access.
func NewCodeHost(config *Config) *CodeHost {
	var httpClient *http.Client
	if config.GitHubToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.GitHubToken})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = config.HTTPTimeout

	client := gh.NewClient(httpClient)
	if config.GitHubBaseURL != "" {
		client, _ = client.WithEnterpriseURLs(config.GitHubBaseURL, config.GitHubBaseURL)
	}

	return &CodeHost{
		client: client,
		logger: slog.Default().With("component", "extract.codehost"),
	}
}

// Extract fetches repository metadata plus the most relevant piece of
// content for the URL: the referenced file for blob URLs, the
// subdirectory readme for tree URLs, and the repository readme
// otherwise. Content fetches are best-effort; metadata alone is still a
// useful result.
func (e *CodeHost) Extract(ctx context.Context, rawURL string) (*core.ExtractionResult, error) {
	ref := core.ParseCodeHostURL(rawURL)
	if ref == nil {
		return &core.ExtractionResult{Source: core.SourceCodeHost}, nil
	}

	repo, _, err := e.client.Repositories.Get(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, fmt.Errorf("fetch repository %s/%s: %w", ref.Owner, ref.Repo, err)
	}

	result := &core.ExtractionResult{
		Title:       repo.GetFullName(),
		Description: repo.GetDescription(),
		ImageURL:    repo.GetOwner().GetAvatarURL(),
		Source:      core.SourceCodeHost,
	}

	switch ref.Kind {
	case core.RefBlob:
		content, err := e.fetchFile(ctx, ref.Owner, ref.Repo, ref.Path, ref.Ref)
		if err != nil {
			e.logger.Warn("file fetch failed", "url", rawURL, "path", ref.Path, "error", err)
			break
		}
		result.Title = fmt.Sprintf("%s/%s", repo.GetFullName(), ref.Path)
		result.RawContent = content
	case core.RefTree:
		readmePath := path.Join(ref.Path, "README.md")
		content, err := e.fetchFile(ctx, ref.Owner, ref.Repo, readmePath, ref.Ref)
		if err != nil {
			e.logger.Debug("directory readme not found", "url", rawURL, "path", readmePath)
			break
		}
		result.RawContent = content
	default:
		branch := ref.Ref
		if branch == "" {
			branch = repo.GetDefaultBranch()
		}
		content, err := e.fetchFile(ctx, ref.Owner, ref.Repo, "README.md", branch)
		if err != nil {
			e.logger.Debug("repository readme not found", "url", rawURL)
			break
		}
		result.RawContent = content
	}

	return result, nil
}

// fetchFile retrieves a single file's decoded content at a ref.
func (e *CodeHost) fetchFile(ctx context.Context, owner, repo, filePath, ref string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	fileContent, _, _, err := e.client.Repositories.GetContents(ctx, owner, repo, filePath, opts)
	if err != nil {
		return "", err
	}
	if fileContent == nil {
		return "", fmt.Errorf("%s is not a file", filePath)
	}
	return fileContent.GetContent()
}
