package ai

import "errors"

var (
	// ErrEmbeddingCountMismatch is returned when a batch embedding call
	// yields a different number of vectors than texts submitted.
	ErrEmbeddingCountMismatch = errors.New("embedding result count mismatch")
)
