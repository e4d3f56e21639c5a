// Copyright 2025 Acadsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"context"
	"log/slog"
	"slices"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/core"
)

// SimilarityFilter ranks and truncates candidate pools by cosine
// similarity to a query embedding. Relevance ranking is best-effort:
// a provider failure degrades to original-order truncation, never an
// error.
type SimilarityFilter struct {
	limits   Limits
	cache    *ai.EmbeddingCache
	embedder ai.Embedder
	chunker  *Chunker
	logger   *slog.Logger
}

// NewSimilarityFilter creates a similarity filter sharing the given
// embedding cache.
func NewSimilarityFilter(limits Limits, cache *ai.EmbeddingCache, embedder ai.Embedder) *SimilarityFilter {
	return &SimilarityFilter{
		limits:   limits,
		cache:    cache,
		embedder: embedder,
		chunker:  NewChunker(limits),
		logger:   slog.Default().With("component", "similarity-filter"),
	}
}

// RelevantDocuments returns the maxDocs documents most similar to the
// query, most similar first. On any embedding failure it returns the
// first maxDocs documents in original order.
func (f *SimilarityFilter) RelevantDocuments(ctx context.Context, query string, docs []core.Document, maxDocs int) []core.Document {
	if maxDocs <= 0 {
		maxDocs = f.limits.MaxDocsForTags
	}
	if len(docs) == 0 || query == "" {
		return headDocs(docs, maxDocs)
	}

	queryVector, err := f.cache.GetOrCreate(ctx, query, f.embedder)
	if err != nil {
		f.logger.Warn("document ranking degraded to original order", "err", err)
		return headDocs(docs, maxDocs)
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	vectors, err := f.cache.GetOrCreateBatch(ctx, texts, f.embedder)
	if err != nil {
		f.logger.Warn("document ranking degraded to original order", "err", err)
		return headDocs(docs, maxDocs)
	}

	type scored struct {
		doc        core.Document
		similarity float32
	}
	ranked := make([]scored, len(docs))
	for i, doc := range docs {
		ranked[i] = scored{doc: doc, similarity: core.CosineSimilarity(queryVector, vectors[i])}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		if a.similarity > b.similarity {
			return -1
		}
		if a.similarity < b.similarity {
			return 1
		}
		return 0
	})

	if len(ranked) > maxDocs {
		ranked = ranked[:maxDocs]
	}
	result := make([]core.Document, len(ranked))
	for i, s := range ranked {
		result[i] = s.doc
	}
	return result
}

// RelevantChunks chunks every document and returns the maxChunks chunks
// most similar to the query. Chunks below the similarity threshold are
// pruned first; if nothing clears the threshold the full pool is ranked
// instead, so a non-empty input never yields an empty result. Embedding
// failures degrade to the first maxChunks chunks in original order.
func (f *SimilarityFilter) RelevantChunks(ctx context.Context, query string, docs []core.Document, maxChunks int) []core.Chunk {
	if maxChunks <= 0 {
		maxChunks = f.limits.MaxChunksTotal
	}

	var pool []core.Chunk
	for _, doc := range docs {
		for _, chunk := range f.chunker.CreateSemanticChunks(doc.Content, doc.ID) {
			chunk.Record = doc.Record
			pool = append(pool, chunk)
		}
	}
	if len(pool) == 0 || query == "" {
		return headChunks(pool, maxChunks)
	}

	queryVector, err := f.cache.GetOrCreate(ctx, query, f.embedder)
	if err != nil {
		f.logger.Warn("chunk ranking degraded to original order", "err", err)
		return headChunks(pool, maxChunks)
	}

	texts := make([]string, len(pool))
	for i, chunk := range pool {
		texts[i] = chunk.Text
	}
	vectors, err := f.cache.GetOrCreateBatch(ctx, texts, f.embedder)
	if err != nil {
		f.logger.Warn("chunk ranking degraded to original order", "err", err)
		return headChunks(pool, maxChunks)
	}

	type scored struct {
		chunk      core.Chunk
		similarity float32
	}
	all := make([]scored, len(pool))
	for i, chunk := range pool {
		all[i] = scored{chunk: chunk, similarity: core.CosineSimilarity(queryVector, vectors[i])}
	}

	ranked := make([]scored, 0, len(all))
	for _, s := range all {
		if s.similarity >= f.limits.SimilarityThreshold {
			ranked = append(ranked, s)
		}
	}
	// An overly strict threshold never empties the result.
	if len(ranked) == 0 {
		ranked = all
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		if a.similarity > b.similarity {
			return -1
		}
		if a.similarity < b.similarity {
			return 1
		}
		return 0
	})

	if len(ranked) > maxChunks {
		ranked = ranked[:maxChunks]
	}
	result := make([]core.Chunk, len(ranked))
	for i, s := range ranked {
		result[i] = s.chunk
	}
	return result
}

func headDocs(docs []core.Document, max int) []core.Document {
	if len(docs) > max {
		return docs[:max]
	}
	return docs
}

func headChunks(chunks []core.Chunk, max int) []core.Chunk {
	if len(chunks) > max {
		return chunks[:max]
	}
	return chunks
}
