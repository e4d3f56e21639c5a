package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedQuery generates a vector embedding for a single query text.
	// Returns an error if the embedding generation fails.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedDocuments generates vector embeddings for multiple texts in a batch.
	// Batch processing is more efficient than calling EmbedQuery multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates prose from a prompt. The retrieval core never
// depends on it; only the summarization path does.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete generates a text completion for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Completer instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Completer returns the text completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
