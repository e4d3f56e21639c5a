package httpapi

import "errors"

var (
	// ErrSearcherRequired is returned when a searcher is not provided.
	ErrSearcherRequired = errors.New("searcher required")

	// ErrPipelineRequired is returned when an indexing pipeline is not provided.
	ErrPipelineRequired = errors.New("indexing pipeline required")
)
