package rag

import (
	"strings"

	"praxis-chat-be/internal/dto"
)

// maxSources is how many titles accompany an answer. Top-3 by retrieval
// rank, intentionally not deduplicated: surfacing the same strongly
// relevant document three times is acceptable.
const maxSources = 3

// Assemble turns retrieved chunks into the prompt context and the short
// source list. Retrieval order is preserved; no re-ranking, no dedup, no
// truncation (token budgeting is the model provider's concern). Empty input
// yields an empty context and an empty source list; the system prompt's
// "no information" directive then produces the answer.
func Assemble(chunks []dto.RetrievedChunk) (contextText string, sources []string) {
	parts := make([]string, len(chunks))
	sources = []string{}

	for i, chunk := range chunks {
		parts[i] = "• " + chunk.Content

		if len(sources) < maxSources {
			title := chunk.Title
			if title == "" {
				title = "Unknown"
			}
			sources = append(sources, title)
		}
	}

	return strings.Join(parts, "\n"), sources
}
