package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/core"
)

const (
	// ragThreshold is the minimum similarity for a link to participate
	// in answer grounding.
	ragThreshold = 0.3

	// ragLimit caps how many links go into the context block.
	ragLimit = 5

	// ragContentMax caps per-link content in the context block.
	ragContentMax = 2000

	// noMatchesAnswer is returned without consulting a model when
	// nothing relevant is stored.
	noMatchesAnswer = "I don't have any relevant links to answer that question."
)

// Answer is a grounded answer plus the links it drew from.
type Answer struct {
	Answer  string
	Sources []*core.RetrievalMatch
}

// RAG answers questions grounded in saved links.
type RAG struct {
	searcher *Searcher
	answerer ai.Answerer
	logger   *slog.Logger
}

// NewRAG creates a retrieval-augmented answerer on top of a searcher.
func NewRAG(searcher *Searcher, provider ai.AIProvider) (*RAG, error) {
	if searcher == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	return &RAG{
		searcher: searcher,
		answerer: provider.Answerer(),
		logger:   slog.Default().With("component", "search.rag"),
	}, nil
}

// Ask retrieves the links most similar to the question and asks the
// model to answer from them. With no relevant links stored, a canned
// answer comes back immediately and no model is consulted.
func (r *RAG) Ask(ctx context.Context, question string) (*Answer, error) {
	matches, err := r.searcher.Search(ctx, question, ragLimit, ragThreshold)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		r.logger.Info("no relevant links for question", "question", question)
		return &Answer{Answer: noMatchesAnswer}, nil
	}

	answer, err := r.answerer.GenerateAnswer(ctx, question, buildContextBlock(matches))
	if err != nil {
		return nil, err
	}

	r.logger.Info("question answered", "question", question, "sources", len(matches))
	return &Answer{Answer: answer, Sources: matches}, nil
}

// buildContextBlock renders matches as numbered source sections so the
// model can cite them by bracket number.
func buildContextBlock(matches []*core.RetrievalMatch) string {
	sections := make([]string, len(matches))
	for i, match := range matches {
		link := match.Link

		title := link.Title
		if title == "" {
			title = link.URL
		}

		content := link.RawContent
		if len(content) > ragContentMax {
			content = content[:ragContentMax]
		}
		if content == "" {
			content = link.Summary
		}
		if content == "" {
			content = "No content available"
		}

		sections[i] = fmt.Sprintf("[%d] %s\nURL: %s\n%s", i+1, title, link.URL, content)
	}
	return strings.Join(sections, "\n\n---\n\n")
}
