package core

import (
	"net/url"
	"regexp"
	"strings"
)

// SourceKind identifies which extractor handles a URL.
type SourceKind int

const (
	// SourceWebpage is the generic kind and the system-wide fallback.
	SourceWebpage SourceKind = iota + 1
	// SourceCodeHost covers repository URLs on github.com.
	SourceCodeHost
	// SourceSocialPost covers post URLs on x.com and its mirrors.
	SourceSocialPost
)

// String returns the storable name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceCodeHost:
		return "codehost"
	case SourceSocialPost:
		return "social"
	default:
		return "webpage"
	}
}

var socialHosts = map[string]bool{
	"x.com":              true,
	"www.x.com":          true,
	"twitter.com":        true,
	"www.twitter.com":    true,
	"mobile.twitter.com": true,
}

// DetectSourceKind classifies a URL by hostname. Any URL that fails to
// parse, or matches neither known host, classifies as SourceWebpage.
func DetectSourceKind(rawURL string) SourceKind {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return SourceWebpage
	}
	host := strings.ToLower(parsed.Hostname())

	if host == "github.com" || host == "www.github.com" {
		return SourceCodeHost
	}
	if socialHosts[host] {
		return SourceSocialPost
	}
	return SourceWebpage
}

// RefKind describes what part of a repository a code-host URL points at.
type RefKind int

const (
	// RefRoot is the repository root.
	RefRoot RefKind = iota + 1
	// RefBlob is a specific file.
	RefBlob
	// RefTree is a subdirectory.
	RefTree
)

// CodeHostRef is the decomposition of a code-host URL into repository
// coordinates plus an optional file or directory reference.
type CodeHostRef struct {
	Owner string
	Repo  string
	Kind  RefKind
	Ref   string // branch, tag, or commit; only set for blob/tree URLs
	Path  string // path within the repo; only set for blob/tree URLs
}

// ParseCodeHostURL splits a code-host URL into owner/repo coordinates.
// Returns nil for non-codehost hosts, a bare host, or an owner-only path.
func ParseCodeHostURL(rawURL string) *CodeHostRef {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return nil
	}

	segments := splitPath(parsed.Path)
	if len(segments) < 2 {
		return nil
	}

	ref := &CodeHostRef{
		Owner: segments[0],
		Repo:  segments[1],
		Kind:  RefRoot,
	}

	// /owner/repo/blob/ref/path/to/file
	// /owner/repo/tree/ref/path/to/dir
	if len(segments) >= 4 {
		switch segments[2] {
		case "blob":
			ref.Kind = RefBlob
		case "tree":
			ref.Kind = RefTree
		default:
			return ref
		}
		ref.Ref = segments[3]
		ref.Path = strings.Join(segments[4:], "/")
	}

	return ref
}

var postIDPattern = regexp.MustCompile(`status/(\d+)`)

// ExtractPostID extracts the numeric post identifier following the
// literal segment "status/". Returns "" if the pattern is absent.
// Supports x.com/user/status/ID, twitter.com/user/status/ID and
// x.com/i/status/ID forms.
func ExtractPostID(rawURL string) string {
	match := postIDPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}

var urlPattern = regexp.MustCompile(`https?://[^\s>]+`)

// ExtractURLs returns every URL found in free-form message text.
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
