package badger

import (
	"context"
	"errors"

	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/storage"
	"github.com/dgraph-io/badger/v4"
)

// RecordStore implements storage.RecordStore for BadgerDB.
type RecordStore struct {
	backend *Backend
	matcher storage.Matcher
}

var _ storage.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a record store on the backend. The matcher is
// used by ListRecordsFiltered; it may be nil, in which case filtered
// listing degrades to ListRecords.
func NewRecordStore(backend *Backend, matcher storage.Matcher) *RecordStore {
	return &RecordStore{
		backend: backend,
		matcher: matcher,
	}
}

// Close is a no-op; the backend is owned by the caller.
func (s *RecordStore) Close() error {
	return nil
}

// AddArticles adds one or more articles to storage.
func (s *RecordStore) AddArticles(ctx context.Context, articles ...*core.Article) error {
	for _, article := range articles {
		if err := core.ValidateArticle(article); err != nil {
			return err
		}
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, article := range articles {
			key := makeArticleKey(article.Id)
			if err := tx.Set(key, storage.MarshalArticle(article)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// AddResearchers adds one or more researchers to storage.
func (s *RecordStore) AddResearchers(ctx context.Context, researchers ...*core.Researcher) error {
	for _, researcher := range researchers {
		if err := core.ValidateResearcher(researcher); err != nil {
			return err
		}
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, researcher := range researchers {
			key := makeResearcherKey(researcher.Id)
			if err := tx.Set(key, storage.MarshalResearcher(researcher)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetArticle retrieves a single article by ID.
func (s *RecordStore) GetArticle(ctx context.Context, id string) (*core.Article, error) {
	var article *core.Article

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArticleKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			article, err = storage.UnmarshalArticle(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return article, nil
}

// GetResearcher retrieves a single researcher by ID.
func (s *RecordStore) GetResearcher(ctx context.Context, id string) (*core.Researcher, error) {
	var researcher *core.Researcher

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeResearcherKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			researcher, err = storage.UnmarshalResearcher(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return researcher, nil
}

// ListRecords retrieves all records of the given kind.
func (s *RecordStore) ListRecords(ctx context.Context, kind core.RecordKind) ([]core.Record, error) {
	return s.listRecords(ctx, kind, nil)
}

// ListRecordsFiltered retrieves records of the given kind that satisfy
// every filter.
func (s *RecordStore) ListRecordsFiltered(ctx context.Context, kind core.RecordKind, filters []core.Filter) ([]core.Record, error) {
	if len(filters) == 0 || s.matcher == nil {
		return s.listRecords(ctx, kind, nil)
	}
	return s.listRecords(ctx, kind, func(record core.Record) bool {
		return s.matcher.Matches(record, filters)
	})
}

// Count returns the number of stored records of the given kind.
func (s *RecordStore) Count(ctx context.Context, kind core.RecordKind) (int, error) {
	prefix, err := recordPrefix(kind)
	if err != nil {
		return 0, err
	}

	count := 0
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *RecordStore) listRecords(ctx context.Context, kind core.RecordKind, keep func(core.Record) bool) ([]core.Record, error) {
	prefix, err := recordPrefix(kind)
	if err != nil {
		return nil, err
	}

	var records []core.Record
	err = s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record core.Record
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = unmarshalRecord(kind, val)
				return err
			})
			if err != nil {
				return err
			}
			if keep == nil || keep(record) {
				records = append(records, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func unmarshalRecord(kind core.RecordKind, val []byte) (core.Record, error) {
	switch kind {
	case core.KindArticle:
		return storage.UnmarshalArticle(val)
	case core.KindResearcher:
		return storage.UnmarshalResearcher(val)
	default:
		return nil, core.ErrInvalidRecordKind
	}
}
