package openai

import (
	"fmt"
	"strings"

	"github.com/chrismlittle123/finchly/ai"
)

const summaryPromptTemplate = `You are a link categorizer. Given the content of a web page, social post, or repository, provide:
1. A concise 1-2 sentence summary of what this content is about.
2. 1-3 tags from ONLY this fixed list: %s

Respond with valid JSON only, no markdown:
{"summary": "...", "tags": ["..."]}`

const answerSystemPrompt = `You are Finchly, a helpful assistant that answers questions based on the user's saved links. Use ONLY the provided context to answer. Reference sources by their number [1], [2], etc. If the context doesn't contain enough information, say so honestly. Be concise.`

// buildSummarySystemPrompt creates the summarizer system prompt with the
// tag taxonomy embedded.
func buildSummarySystemPrompt() string {
	return fmt.Sprintf(summaryPromptTemplate, strings.Join(ai.TagTaxonomy, ", "))
}

// buildAnswerPrompt assembles the user message for answer generation.
func buildAnswerPrompt(question, contextBlock string) string {
	return fmt.Sprintf("Context from saved links:\n\n%s\n\n---\n\nQuestion: %s",
		contextBlock, question)
}
