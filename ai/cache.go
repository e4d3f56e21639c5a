package ai

import (
	"context"
	"sync"

	"github.com/acadsearch/acadsearch/core"
)

// EmbeddingCache memoizes text-to-vector embedding calls by content
// hash, avoiding redundant provider calls. It is unbounded and lives
// for the process lifetime; with multiple worker processes each keeps
// its own independent cache.
type EmbeddingCache struct {
	mu      sync.RWMutex
	entries map[core.ID][]float32
}

// NewEmbeddingCache creates an empty embedding cache.
func NewEmbeddingCache() *EmbeddingCache {
	return &EmbeddingCache{
		entries: make(map[core.ID][]float32),
	}
}

// GetOrCreate returns the cached embedding for text, invoking the
// embedder once on a miss. Identical text (by exact byte content)
// always maps to the same cached vector.
func (c *EmbeddingCache) GetOrCreate(ctx context.Context, text string, embedder Embedder) ([]float32, error) {
	key := core.IDFromContent(text)

	c.mu.RLock()
	vector, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return vector, nil
	}

	vector, err := embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = vector
	c.mu.Unlock()
	return vector, nil
}

// GetOrCreateBatch returns embeddings for all texts, embedding only the
// cache misses in a single batched provider call. The result is
// index-aligned with texts.
func (c *EmbeddingCache) GetOrCreateBatch(ctx context.Context, texts []string, embedder Embedder) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	missing := make([]int, 0, len(texts))

	c.mu.RLock()
	for i, text := range texts {
		if vector, ok := c.entries[core.IDFromContent(text)]; ok {
			vectors[i] = vector
		} else {
			missing = append(missing, i)
		}
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return vectors, nil
	}

	missingTexts := make([]string, len(missing))
	for i, idx := range missing {
		missingTexts[i] = texts[idx]
	}

	embedded, err := embedder.EmbedDocuments(ctx, missingTexts)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missingTexts) {
		return nil, ErrEmbeddingCountMismatch
	}

	c.mu.Lock()
	for i, idx := range missing {
		c.entries[core.IDFromContent(texts[idx])] = embedded[i]
		vectors[idx] = embedded[i]
	}
	c.mu.Unlock()

	return vectors, nil
}

// Len returns the number of cached embeddings.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
