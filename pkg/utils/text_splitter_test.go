package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Nil(t, SplitText("", 700, 100))
	assert.Nil(t, SplitText("   \n\t ", 700, 100))
}

func TestSplitTextShortTextSingleChunk(t *testing.T) {
	text := "Rezepte können telefonisch bestellt werden"

	chunks := SplitText(text, 700, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestSplitTextChunkBoundaries(t *testing.T) {
	// 4 tokens at 0.75 words per token gives chunks of 3 words.
	text := "eins zwei drei vier fünf sechs sieben"

	chunks := SplitText(text, 4, 0)

	assert.Equal(t, []string{
		"eins zwei drei",
		"vier fünf sechs",
		"sieben",
	}, chunks)
}

func TestSplitTextOverlap(t *testing.T) {
	// Chunk size 3 words, overlap 1 word, so consecutive chunks share a word.
	text := "eins zwei drei vier fünf"

	chunks := SplitText(text, 4, 2)

	assert.Equal(t, []string{
		"eins zwei drei",
		"drei vier fünf",
	}, chunks)
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	// Degenerate overlap must not stall the scan.
	text := "eins zwei drei vier fünf sechs"

	chunks := SplitText(text, 4, 8)

	assert.Equal(t, []string{
		"eins zwei drei",
		"vier fünf sechs",
	}, chunks)
}

func TestSplitTextNormalizesWhitespace(t *testing.T) {
	chunks := SplitText("eins\n\nzwei\t drei", 700, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, "eins zwei drei", chunks[0])
}

func TestSplitTextCoversAllWords(t *testing.T) {
	words := make([]string, 950)
	for i := range words {
		words[i] = "wort"
	}
	text := strings.Join(words, " ")

	chunks := SplitText(text, 700, 100)

	require.NotEmpty(t, chunks)
	total := 0
	for i, chunk := range chunks {
		n := len(strings.Fields(chunk))
		if i < len(chunks)-1 {
			assert.Equal(t, 525, n, "chunk %d", i)
		}
		total += n
	}
	// Every word appears; overlapping words are counted once per chunk.
	overlap := 75 * (len(chunks) - 1)
	assert.Equal(t, 950, total-overlap)
}
