package index

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/storage/badger"
)

// entry is one indexed document with its embedding.
type entry struct {
	doc    core.Document
	vector []float32
}

// Hit is a similarity-search result: a document and its raw distance
// (smaller = more similar). Use core.DistanceToSimilarity for a
// normalized score.
type Hit struct {
	Document core.Document
	Distance float32
}

// VectorIndex is a persistent nearest-neighbor index over documents of
// one record kind. Entries survive restarts in the badger backend; the
// in-memory copy is the search structure. Concurrent searches are safe;
// AddDocuments serializes against them with a write lock.
type VectorIndex struct {
	kind    core.RecordKind
	backend *badger.Backend
	cache   *ai.EmbeddingCache
	logger  *slog.Logger

	mu      sync.RWMutex
	entries []entry
	ids     map[string]struct{}
}

// Option is a functional option for configuring a VectorIndex.
type Option func(*VectorIndex)

// WithLogger sets the index logger.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *VectorIndex) {
		idx.logger = logger
	}
}

// NewVectorIndex opens the index for one record kind, loading any
// previously persisted entries. A missing or empty index is not an
// error; corrupt entries are skipped with a warning so one bad row
// never takes down the whole index.
func NewVectorIndex(backend *badger.Backend, kind core.RecordKind, cache *ai.EmbeddingCache, opts ...Option) (*VectorIndex, error) {
	idx := &VectorIndex{
		kind:    kind,
		backend: backend,
		cache:   cache,
		logger:  slog.Default().With("component", "vector-index", "kind", kind.String()),
		ids:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(idx)
	}

	if err := idx.load(); err != nil {
		return nil, err
	}

	idx.logger.Info("vector index ready", "entries", len(idx.entries))
	return idx, nil
}

// Kind returns the record kind this index covers.
func (idx *VectorIndex) Kind() core.RecordKind {
	return idx.kind
}

// Len returns the number of indexed documents.
func (idx *VectorIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// AddDocuments indexes the given documents, skipping any whose ID is
// already present. New entries are embedded in one batched provider
// call and persisted before becoming searchable. Returns the number of
// documents actually added.
func (idx *VectorIndex) AddDocuments(ctx context.Context, embedder ai.Embedder, docs []core.Document) (int, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	fresh := make([]core.Document, 0, len(docs))
	for _, doc := range docs {
		if _, exists := idx.ids[doc.ID]; exists {
			continue
		}
		fresh = append(fresh, doc)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	texts := make([]string, len(fresh))
	for i, doc := range fresh {
		texts[i] = doc.Content
	}

	vectors, err := idx.cache.GetOrCreateBatch(ctx, texts, embedder)
	if err != nil {
		return 0, err
	}

	err = idx.backend.WithTx(func(tx *badgerdb.Txn) error {
		for i, doc := range fresh {
			key := badger.MakeVectorKey(idx.kind, doc.ID)
			value, err := marshalEntry(doc, vectors[i])
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return 0, err
	}

	for i, doc := range fresh {
		idx.entries = append(idx.entries, entry{doc: doc, vector: vectors[i]})
		idx.ids[doc.ID] = struct{}{}
	}

	idx.logger.Debug("documents indexed", "added", len(fresh), "skipped", len(docs)-len(fresh))
	return len(fresh), nil
}

// Search embeds the query and returns the k nearest documents by L2
// distance, closest first.
func (idx *VectorIndex) Search(ctx context.Context, embedder ai.Embedder, query string, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}

	queryVector, err := idx.cache.GetOrCreate(ctx, query, embedder)
	if err != nil {
		return nil, err
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]Hit, 0, len(idx.entries))
	for _, e := range idx.entries {
		hits = append(hits, Hit{
			Document: e.doc,
			Distance: core.L2Distance(queryVector, e.vector),
		})
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Rebuild drops every persisted entry and re-indexes the given
// documents from scratch. Used for full reindexing, where stale entries
// from superseded records must not survive.
func (idx *VectorIndex) Rebuild(ctx context.Context, embedder ai.Embedder, docs []core.Document) (int, error) {
	idx.mu.Lock()
	idx.entries = nil
	idx.ids = make(map[string]struct{})
	idx.mu.Unlock()

	if err := idx.backend.DropPrefix(badger.VectorKeyPrefix(idx.kind)); err != nil {
		return 0, err
	}

	return idx.AddDocuments(ctx, embedder, docs)
}

// load reads all persisted entries for this kind into memory.
func (idx *VectorIndex) load() error {
	prefix := badger.VectorKeyPrefix(idx.kind)

	return idx.backend.WithTx(func(tx *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			err := item.Value(func(val []byte) error {
				doc, vector, err := unmarshalEntry(idx.kind, val)
				if err != nil {
					return err
				}
				idx.entries = append(idx.entries, entry{doc: doc, vector: vector})
				idx.ids[doc.ID] = struct{}{}
				return nil
			})
			if err != nil {
				// A corrupt entry is dropped; it will be re-created on
				// the next reindex.
				idx.logger.Warn("skipping corrupt index entry",
					"key", string(item.Key()), "err", err)
			}
		}
		return nil
	}, false)
}
