package search

import (
	"context"
	"log/slog"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/index"
	"github.com/acadsearch/acadsearch/selfquery"
	"github.com/acadsearch/acadsearch/storage"
)

const defaultK = 10

// Searcher composes filter extraction, vector search and predicate
// evaluation into the retrieval operations exposed to the API layer.
// One Searcher serves all concurrent requests; it holds no per-request
// state.
type Searcher struct {
	store     storage.RecordStore
	extractor *selfquery.Extractor
	engine    *selfquery.Engine
	indices   map[core.RecordKind]*index.VectorIndex
	embedder  ai.Embedder
	formatter *Formatter
	limits    Limits
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithLimits overrides the default pipeline limits.
func WithLimits(limits Limits) Option {
	return func(s *Searcher) error {
		s.limits = limits
		s.formatter = NewFormatter(limits)
		return nil
	}
}

// NewSearcher creates a new searcher. The indices map holds one vector
// index per searchable record kind.
func NewSearcher(
	store storage.RecordStore,
	extractor *selfquery.Extractor,
	engine *selfquery.Engine,
	indices map[core.RecordKind]*index.VectorIndex,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if engine == nil {
		return nil, ErrEngineRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		store:     store,
		extractor: extractor,
		engine:    engine,
		indices:   indices,
		embedder:  embedder,
		formatter: NewFormatter(DefaultLimits()),
		limits:    DefaultLimits(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Formatter returns the document formatter the searcher indexes with.
func (s *Searcher) Formatter() *Formatter {
	return s.formatter
}

// SemanticSearch runs a pure vector search over the kind's index and
// returns up to k results, most relevant first. A vector-search or
// provider failure degrades to an unranked listing rather than failing
// the request; only store errors surface.
func (s *Searcher) SemanticSearch(ctx context.Context, query string, k int, kind core.RecordKind) ([]core.SearchResult, error) {
	if k <= 0 {
		k = defaultK
	}

	idx, ok := s.indices[kind]
	if !ok {
		return nil, ErrNoIndexForKind
	}

	hits, err := idx.Search(ctx, s.embedder, query, k)
	if err != nil {
		s.logger.Warn("semantic search degraded to unranked listing",
			"kind", kind.String(), "err", err)
		return s.listUniform(ctx, kind, nil, k)
	}

	results := make([]core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, core.SearchResult{
			Record: hit.Document.Record,
			Score:  core.DistanceToSimilarity(hit.Distance),
		})
	}
	return results, nil
}

// SelfQuery extracts structured filters from the query and runs the
// appropriate retrieval path over the article index: hybrid when
// residual free text remains, filter pushdown when the query was
// consumed entirely by filters, and a plain listing when the query
// carries neither.
func (s *Searcher) SelfQuery(ctx context.Context, query string, k int) (*core.SelfQueryResult, error) {
	return s.SelfQueryWithMonitor(ctx, query, k, nil)
}

// SelfQueryWithMonitor is SelfQuery with per-stage observation hooks.
func (s *Searcher) SelfQueryWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) (*core.SelfQueryResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k <= 0 {
		k = defaultK
	}

	monitor.Start(query)

	filters := s.extractor.ExtractFilters(ctx, query)
	monitor.AfterFilterExtraction(filters)

	residual := selfquery.CleanQuery(query, filters)
	monitor.AfterQueryCleaning(residual)

	result := &core.SelfQueryResult{
		Query:   residual,
		Filters: filters,
	}

	if residual != "" {
		results, err := s.hybridSearch(ctx, residual, filters, k, monitor)
		if err == nil {
			result.Mode = core.ModeHybrid
			result.Results = results
			result.TotalFound = len(results)
			if len(result.Results) > k {
				result.Results = result.Results[:k]
			}
			monitor.Finish(result)
			return result, nil
		}

		// Vector search is best-effort: fall back to the filter paths
		// below with whatever predicates we have.
		s.logger.Warn("hybrid search failed, falling back to filters", "err", err)
		monitor.Degraded(err)
		result.Degraded = true
	}

	var (
		records []core.Record
		err     error
	)
	if len(filters) > 0 {
		result.Mode = core.ModeFiltered
		records, err = s.store.ListRecordsFiltered(ctx, core.KindArticle, filters)
	} else {
		result.Mode = core.ModeListAll
		records, err = s.store.ListRecords(ctx, core.KindArticle)
	}
	if err != nil {
		return nil, err
	}

	result.TotalFound = len(records)
	for _, record := range records {
		if len(result.Results) == k {
			break
		}
		result.Results = append(result.Results, core.SearchResult{Record: record, Score: 1})
	}

	monitor.Finish(result)
	return result, nil
}

// hybridSearch over-fetches from the article index and prunes by the
// extracted filters in similarity order.
func (s *Searcher) hybridSearch(ctx context.Context, residual string, filters []core.Filter, k int, monitor SearchMonitor) ([]core.SearchResult, error) {
	idx, ok := s.indices[core.KindArticle]
	if !ok {
		return nil, ErrNoIndexForKind
	}

	hits, err := idx.Search(ctx, s.embedder, residual, k*s.limits.OverfetchMultiplier)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.Document.ID
	}
	monitor.AfterVectorSearch(ids)

	results := make([]core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		if !s.engine.Matches(hit.Document.Record, filters) {
			monitor.FilteredOut(hit.Document.ID)
			continue
		}
		results = append(results, core.SearchResult{
			Record: hit.Document.Record,
			Score:  core.DistanceToSimilarity(hit.Distance),
		})
	}
	return results, nil
}

// IndexDocuments incrementally indexes the given records into the
// kind's vector index, skipping identifiers already present. Returns
// the number of documents actually added.
func (s *Searcher) IndexDocuments(ctx context.Context, records []core.Record, kind core.RecordKind) (int, error) {
	idx, ok := s.indices[kind]
	if !ok {
		return 0, ErrNoIndexForKind
	}

	docs := make([]core.Document, 0, len(records))
	for _, record := range records {
		if record.Kind() != kind {
			continue
		}
		docs = append(docs, s.formatter.BuildDocument(record))
	}

	return idx.AddDocuments(ctx, s.embedder, docs)
}

// IndexAll rebuilds every vector index from the record store, dropping
// stale entries left behind by superseded records.
func (s *Searcher) IndexAll(ctx context.Context) error {
	for kind, idx := range s.indices {
		records, err := s.store.ListRecords(ctx, kind)
		if err != nil {
			return err
		}

		docs := make([]core.Document, 0, len(records))
		for _, record := range records {
			docs = append(docs, s.formatter.BuildDocument(record))
		}

		added, err := idx.Rebuild(ctx, s.embedder, docs)
		if err != nil {
			return err
		}
		s.logger.Info("index rebuilt", "kind", kind.String(), "documents", added)
	}
	return nil
}

// listUniform returns up to k records of the kind with a uniform score,
// optionally filtered.
func (s *Searcher) listUniform(ctx context.Context, kind core.RecordKind, filters []core.Filter, k int) ([]core.SearchResult, error) {
	var (
		records []core.Record
		err     error
	)
	if len(filters) > 0 {
		records, err = s.store.ListRecordsFiltered(ctx, kind, filters)
	} else {
		records, err = s.store.ListRecords(ctx, kind)
	}
	if err != nil {
		return nil, err
	}

	results := make([]core.SearchResult, 0, min(len(records), k))
	for _, record := range records {
		if len(results) == k {
			break
		}
		results = append(results, core.SearchResult{Record: record, Score: 1})
	}
	return results, nil
}
