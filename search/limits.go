package search

// Limits centralizes the sizing knobs of the retrieval pipeline:
// truncation ceilings for formatted text, chunking bounds and the
// relevance threshold. Zero values are never valid; use DefaultLimits.
type Limits struct {
	// Document-count bounds for context building.
	MaxDocsForSummary      int
	MaxDocsForTags         int
	MaxProducoesForTags    int
	MaxProducoesForProfile int

	// Character ceilings applied by the formatter.
	MaxTituloChars         int
	MaxTituloProducaoChars int
	MaxJournalChars        int
	MaxJournalTagsChars    int
	MaxAbstractChars       int
	MaxResumoChars         int

	// Semantic chunking bounds.
	MaxChunkSize        int
	MaxChunksPerDoc     int
	ChunkOverlap        int
	SimilarityThreshold float32
	MaxChunksTotal      int

	// MinQueryLength gates chunked context building: shorter queries
	// use the traditional whole-document path.
	MinQueryLength int

	// OverfetchMultiplier widens hybrid vector searches to leave
	// headroom for post-filtering.
	OverfetchMultiplier int
}

// DefaultLimits returns the limits the system was tuned with.
func DefaultLimits() Limits {
	return Limits{
		MaxDocsForSummary:      5,
		MaxDocsForTags:         5,
		MaxProducoesForTags:    5,
		MaxProducoesForProfile: 10,

		MaxTituloChars:         100,
		MaxTituloProducaoChars: 80,
		MaxJournalChars:        50,
		MaxJournalTagsChars:    30,
		MaxAbstractChars:       200,
		MaxResumoChars:         300,

		MaxChunkSize:        300,
		MaxChunksPerDoc:     3,
		ChunkOverlap:        50,
		SimilarityThreshold: 0.3,
		MaxChunksTotal:      10,

		MinQueryLength: 10,

		OverfetchMultiplier: 4,
	}
}
