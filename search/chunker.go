package search

import (
	"strings"
	"unicode/utf8"

	"github.com/acadsearch/acadsearch/core"
)

// minChunkableLength is the text length below which chunking is
// pointless and the whole text becomes a single chunk.
const minChunkableLength = 50

// Chunker splits document text into overlapping sentence-bounded
// chunks for fine-grained relevance matching.
type Chunker struct {
	limits Limits
}

// NewChunker creates a chunker with the given limits.
func NewChunker(limits Limits) *Chunker {
	return &Chunker{limits: limits}
}

// CreateSemanticChunks splits text on sentence boundaries and
// accumulates sentences into chunks of at most MaxChunkSize characters,
// seeding each new chunk with a trailing overlap of the previous one.
// At most MaxChunksPerDoc chunks are kept; later sentences are dropped.
// Text under the minimum length comes back as one unsplit chunk.
//
// Splitting on ., ! and ? is deliberately cheap rule-based
// segmentation; abbreviation-induced false splits are tolerated.
func (c *Chunker) CreateSemanticChunks(text, docID string) []core.Chunk {
	if utf8.RuneCountInString(text) < minChunkableLength {
		return []core.Chunk{{Text: text, DocID: docID, ChunkID: 0}}
	}

	sentences := splitSentences(text)

	var chunks []core.Chunk
	current := ""
	chunkID := 0

	for _, sentence := range sentences {
		// Size limits are in characters, not bytes: accented text must
		// not close chunks early.
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence) > c.limits.MaxChunkSize && current != "" {
			chunks = append(chunks, core.Chunk{
				Text:    strings.TrimSpace(current),
				DocID:   docID,
				ChunkID: chunkID,
			})
			chunkID++

			if runes := []rune(current); len(runes) > c.limits.ChunkOverlap {
				current = string(runes[len(runes)-c.limits.ChunkOverlap:]) + " " + sentence
			} else {
				current = sentence
			}
		} else if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, core.Chunk{
			Text:    strings.TrimSpace(current),
			DocID:   docID,
			ChunkID: chunkID,
		})
	}

	if len(chunks) > c.limits.MaxChunksPerDoc {
		chunks = chunks[:c.limits.MaxChunksPerDoc]
	}
	return chunks
}

// splitSentences splits text on sentence-ending punctuation, dropping
// empty fragments.
func splitSentences(text string) []string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if trimmed := strings.TrimSpace(fragment); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
