package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInput(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("One short paragraph.", 1000, 100)
	require.Len(t, chunks, 1)
	assert.Equal(t, "One short paragraph.", chunks[0])
}

func TestChunkTextSplitsParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	paragraphs := make([]string, 10)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("word ", 30)
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := chunker.ChunkText(text, 400, 50)
	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 400+50)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("alpha beta gamma. ", 100)
	chunks := chunker.ChunkText(text, 200, 40)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with the tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		tail := lastNRunes(chunks[i-1], 40)
		assert.True(t, strings.HasPrefix(chunks[i], tail))
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()
	assert.Empty(t, chunker.ChunkText("", 1000, 100))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 100))
}
