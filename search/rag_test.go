package search

import (
	"context"
	"strings"
	"testing"

	"github.com/chrismlittle123/finchly/ai/mock"
	"github.com/chrismlittle123/finchly/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskWithNoMatches(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()

	searcher, err := NewSearcher(repo, provider)
	require.NoError(t, err)
	rag, err := NewRAG(searcher, provider)
	require.NoError(t, err)

	answer, err := rag.Ask(context.Background(), "what do I know about Go?")
	require.NoError(t, err)

	assert.Equal(t, "I don't have any relevant links to answer that question.", answer.Answer)
	assert.Empty(t, answer.Sources)
	// The canned answer must not cost a model call
	assert.Equal(t, 0, provider.GetMockAnswerer().CallCount())
}

func TestAskWithMatches(t *testing.T) {
	repo := newTestRepo(t)
	provider := mock.NewMockProvider()

	text := "a detailed post about Go concurrency patterns"
	insertEmbedded(t, repo, "https://example.com/go", text)

	var captured string
	provider.GetMockAnswerer().GenerateAnswerFunc = func(ctx context.Context, question, contextBlock string) (string, error) {
		captured = contextBlock
		return "Concurrency is covered in [1].", nil
	}

	searcher, err := NewSearcher(repo, provider)
	require.NoError(t, err)
	rag, err := NewRAG(searcher, provider)
	require.NoError(t, err)

	answer, err := rag.Ask(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, "Concurrency is covered in [1].", answer.Answer)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "https://example.com/go", answer.Sources[0].Link.URL)

	// Untitled links fall back to the URL in the context block
	assert.Contains(t, captured, "[1] https://example.com/go")
	assert.Contains(t, captured, "URL: https://example.com/go")
	assert.Contains(t, captured, text)
}

func TestBuildContextBlock(t *testing.T) {
	matches := []*core.RetrievalMatch{
		{Link: &core.Link{URL: "https://a.example.com", Title: "A Title", RawContent: strings.Repeat("x", 3000)}},
		{Link: &core.Link{URL: "https://b.example.com", Summary: "Only a summary"}},
		{Link: &core.Link{URL: "https://c.example.com"}},
	}

	block := buildContextBlock(matches)
	sections := strings.Split(block, "\n\n---\n\n")
	require.Len(t, sections, 3)

	assert.True(t, strings.HasPrefix(sections[0], "[1] A Title\nURL: https://a.example.com\n"))
	// Content is capped at 2000 chars
	assert.Len(t, sections[0], len("[1] A Title\nURL: https://a.example.com\n")+2000)

	assert.Contains(t, sections[1], "[2] https://b.example.com")
	assert.Contains(t, sections[1], "Only a summary")

	assert.Contains(t, sections[2], "No content available")
}
