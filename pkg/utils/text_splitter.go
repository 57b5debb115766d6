package utils

import "strings"

// 1 token is roughly 0.75 words for typical prose.
const wordsPerToken = 0.75

// SplitText splits a text into chunks of approximately 'targetTokens' tokens
// with an 'overlapTokens' overlap to preserve context at boundaries. The
// split is word-based; token counts are approximated, not tokenizer-exact.
func SplitText(text string, targetTokens int, overlapTokens int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	targetWords := int(float64(targetTokens) * wordsPerToken)
	overlapWords := int(float64(overlapTokens) * wordsPerToken)
	if targetWords <= 0 {
		targetWords = 1
	}

	step := targetWords - overlapWords
	if step <= 0 {
		step = targetWords // fallback if overlap >= chunk size
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + targetWords
		if end > len(words) {
			end = len(words)
		}

		chunk := strings.Join(words[start:end], " ")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(words) {
			break
		}
	}

	return chunks
}
