package search

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSemanticChunks(t *testing.T) {
	chunker := NewChunker(DefaultLimits())

	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := chunker.CreateSemanticChunks("Texto curto.", "doc-1")

		require.Len(t, chunks, 1)
		assert.Equal(t, "Texto curto.", chunks[0].Text)
		assert.Equal(t, "doc-1", chunks[0].DocID)
		assert.Equal(t, 0, chunks[0].ChunkID)
	})

	t.Run("long text splits on sentence boundaries", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&sb, "Esta é a frase número %d com conteúdo suficiente para ocupar espaço. ", i)
		}

		chunks := chunker.CreateSemanticChunks(sb.String(), "doc-1")

		require.NotEmpty(t, chunks)
		limits := DefaultLimits()
		assert.LessOrEqual(t, len(chunks), limits.MaxChunksPerDoc)
		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.ChunkID)
			assert.NotEmpty(t, chunk.Text)
		}
	})

	t.Run("sentences are covered in order", func(t *testing.T) {
		limits := DefaultLimits()
		limits.MaxChunkSize = 80
		limits.MaxChunksPerDoc = 100
		chunker := NewChunker(limits)

		sentences := []string{
			"Primeira frase sobre aprendizado de máquina",
			"Segunda frase sobre redes neurais profundas",
			"Terceira frase sobre mineração de dados",
			"Quarta frase sobre visão computacional",
		}
		text := strings.Join(sentences, ". ") + "."

		chunks := chunker.CreateSemanticChunks(text, "doc-1")
		joined := ""
		for _, chunk := range chunks {
			joined += chunk.Text + " "
		}

		lastIdx := -1
		for _, sentence := range sentences {
			idx := strings.Index(joined, sentence)
			require.GreaterOrEqual(t, idx, 0, "sentence %q must appear", sentence)
			assert.Greater(t, idx, lastIdx, "sentences keep their order")
			lastIdx = idx
		}
	})

	t.Run("chunk count never exceeds the maximum", func(t *testing.T) {
		limits := DefaultLimits()
		limits.MaxChunkSize = 40
		limits.MaxChunksPerDoc = 3
		chunker := NewChunker(limits)

		var sb strings.Builder
		for i := 0; i < 50; i++ {
			fmt.Fprintf(&sb, "Frase de enchimento número %d. ", i)
		}

		chunks := chunker.CreateSemanticChunks(sb.String(), "doc-1")
		assert.Len(t, chunks, 3)
	})

	t.Run("consecutive chunks share overlap text", func(t *testing.T) {
		limits := DefaultLimits()
		limits.MaxChunkSize = 80
		limits.ChunkOverlap = 20
		limits.MaxChunksPerDoc = 10
		chunker := NewChunker(limits)

		var sb strings.Builder
		for i := 0; i < 6; i++ {
			fmt.Fprintf(&sb, "Conteúdo da frase longa de número %d aqui. ", i)
		}

		chunks := chunker.CreateSemanticChunks(sb.String(), "doc-1")
		require.Greater(t, len(chunks), 1)

		first := []rune(chunks[0].Text)
		tail := string(first[len(first)-limits.ChunkOverlap:])
		assert.True(t, strings.HasPrefix(chunks[1].Text, strings.TrimSpace(tail)),
			"second chunk starts with the overlap of the first")
	})

	t.Run("size budget counts characters, not bytes", func(t *testing.T) {
		limits := DefaultLimits()
		limits.MaxChunkSize = 60
		chunker := NewChunker(limits)

		// Two accented sentences that fit the budget in characters but
		// blow past it in bytes.
		sentence := strings.Repeat("ção", 9) + "ç"
		require.Greater(t, len(sentence)*2, limits.MaxChunkSize)
		require.LessOrEqual(t, utf8.RuneCountInString(sentence)*2, limits.MaxChunkSize)

		chunks := chunker.CreateSemanticChunks(sentence+". "+sentence+".", "doc-1")
		assert.Len(t, chunks, 1)
	})

	t.Run("empty text", func(t *testing.T) {
		chunks := chunker.CreateSemanticChunks("", "doc-1")
		require.Len(t, chunks, 1)
		assert.Empty(t, chunks[0].Text)
	})
}
