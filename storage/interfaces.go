package storage

import (
	"context"

	"github.com/acadsearch/acadsearch/core"
)

// Matcher decides whether a record satisfies a set of structured filters.
// Implementations must be safe for concurrent use.
type Matcher interface {
	// Matches reports whether record satisfies every filter (conjunction).
	Matches(record core.Record, filters []core.Filter) bool
}

// RecordStore provides operations for managing academic records.
// Implementations must be thread-safe and support concurrent access.
type RecordStore interface {
	// AddArticles adds one or more articles to storage.
	// Each article is validated before writing; an existing article with
	// the same ID is overwritten.
	AddArticles(ctx context.Context, articles ...*core.Article) error

	// AddResearchers adds one or more researchers to storage.
	// Each researcher is validated before writing; an existing researcher
	// with the same ID is overwritten.
	AddResearchers(ctx context.Context, researchers ...*core.Researcher) error

	// GetArticle retrieves a single article by ID.
	// Returns ErrNotFound if the article doesn't exist.
	GetArticle(ctx context.Context, id string) (*core.Article, error)

	// GetResearcher retrieves a single researcher by ID.
	// Returns ErrNotFound if the researcher doesn't exist.
	GetResearcher(ctx context.Context, id string) (*core.Researcher, error)

	// ListRecords retrieves all records of the given kind.
	// Order is stable across calls (key order) but otherwise unspecified.
	ListRecords(ctx context.Context, kind core.RecordKind) ([]core.Record, error)

	// ListRecordsFiltered retrieves records of the given kind that satisfy
	// every filter. With no filters it is equivalent to ListRecords.
	ListRecordsFiltered(ctx context.Context, kind core.RecordKind, filters []core.Filter) ([]core.Record, error)

	// Count returns the number of stored records of the given kind.
	Count(ctx context.Context, kind core.RecordKind) (int, error)

	// Close closes the store and releases resources.
	Close() error
}
