package indexer

import "errors"

var (
	// ErrStoreRequired is returned when a record store is not provided.
	ErrStoreRequired = errors.New("record store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndicesRequired is returned when no vector index is provided.
	ErrIndicesRequired = errors.New("at least one vector index required")

	// ErrNoIndexForKind is returned when a record kind has no vector index.
	ErrNoIndexForKind = errors.New("no vector index for record kind")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
