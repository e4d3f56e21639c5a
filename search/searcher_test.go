package search

import (
	"context"
	"errors"
	"testing"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/ai/mock"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/index"
	"github.com/acadsearch/acadsearch/schema"
	"github.com/acadsearch/acadsearch/selfquery"
	"github.com/acadsearch/acadsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchHarness struct {
	searcher *Searcher
	store    *badger.RecordStore
	embedder *mock.MockEmbedder
}

func newHarness(t *testing.T) *searchHarness {
	t.Helper()

	s := schema.Default()
	engine := selfquery.NewEngine(s)

	store, backend, err := badger.NewMemoryStore(engine)
	require.NoError(t, err)
	t.Cleanup(func() {
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	cache := ai.NewEmbeddingCache()

	articles, err := index.NewVectorIndex(backend, core.KindArticle, cache)
	require.NoError(t, err)
	researchers, err := index.NewVectorIndex(backend, core.KindResearcher, cache)
	require.NoError(t, err)

	extractor := selfquery.NewExtractor(s, cache, embedder)

	searcher, err := NewSearcher(store, extractor, engine,
		map[core.RecordKind]*index.VectorIndex{
			core.KindArticle:    articles,
			core.KindResearcher: researchers,
		},
		embedder,
	)
	require.NoError(t, err)

	return &searchHarness{searcher: searcher, store: store, embedder: embedder}
}

func (h *searchHarness) seedArticles(t *testing.T, articles ...*core.Article) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, h.store.AddArticles(ctx, articles...))

	records := make([]core.Record, len(articles))
	for i, a := range articles {
		records[i] = a
	}
	_, err := h.searcher.IndexDocuments(ctx, records, core.KindArticle)
	require.NoError(t, err)
}

func corpusArticles() []*core.Article {
	return []*core.Article{
		{Id: "ml-1", Title: "Aprendizado de máquina supervisionado", Abstract: "Técnicas de machine learning aplicadas à saúde.", Year: 2021, Qualis: "A1", Authors: []core.Author{{Name: "Maria Silva"}}},
		{Id: "ml-2", Title: "Machine learning em larga escala", Abstract: "Aprendizado de máquina distribuído.", Year: 2019, Qualis: "B1"},
		{Id: "bio-1", Title: "Taxonomia de plantas amazônicas", Abstract: "Levantamento botânico.", Year: 2020, Qualis: "B2"},
		{Id: "geo-1", Title: "Sedimentologia fluvial", Abstract: "Análise de sedimentos.", Year: 2018, Qualis: "C"},
		{Id: "med-1", Title: "Epidemiologia de arboviroses", Abstract: "Estudo de caso clínico.", Year: 2022, Qualis: "A2"},
	}
}

func TestSemanticSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns k results ordered by descending score", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		results, err := h.searcher.SemanticSearch(ctx, "aprendizado de máquina", 2, core.KindArticle)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	})

	t.Run("unknown kind", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.searcher.SemanticSearch(ctx, "consulta", 2, core.RecordKind(99))
		require.ErrorIs(t, err, ErrNoIndexForKind)
	})

	t.Run("empty index yields empty results", func(t *testing.T) {
		h := newHarness(t)

		results, err := h.searcher.SemanticSearch(ctx, "consulta", 5, core.KindArticle)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("provider failure degrades to unranked listing", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		h.embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("provider down")
		}

		results, err := h.searcher.SemanticSearch(ctx, "consulta inédita", 3, core.KindArticle)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.Equal(t, float32(1), r.Score)
		}
	})
}

func TestSelfQueryHybrid(t *testing.T) {
	ctx := context.Background()

	t.Run("vector search post-filtered by extracted predicates", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		result, err := h.searcher.SelfQuery(ctx, "aprendizado de máquina publicados após 2020", 10)
		require.NoError(t, err)

		assert.Equal(t, core.ModeHybrid, result.Mode)
		assert.False(t, result.Degraded)
		assert.Equal(t, "aprendizado de máquina publicados", result.Query)
		require.Len(t, result.Filters, 1)
		assert.Equal(t, "year", result.Filters[0].Field)
		assert.Equal(t, core.OpGTE, result.Filters[0].Operator)
		assert.Equal(t, 2020, result.Filters[0].Value)

		for _, r := range result.Results {
			year, ok := r.Record.Field("year")
			require.True(t, ok)
			assert.GreaterOrEqual(t, year.(int), 2020)
		}
	})

	t.Run("results keep similarity order and truncate to k", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		result, err := h.searcher.SelfQuery(ctx, "aprendizado de máquina", 2)
		require.NoError(t, err)

		require.Len(t, result.Results, 2)
		assert.GreaterOrEqual(t, result.Results[0].Score, result.Results[1].Score)
	})
}

func TestSelfQueryFilterPushdown(t *testing.T) {
	ctx := context.Background()

	t.Run("zero residual text bypasses vector search", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		// Break the embedder: the pushdown path must not need it.
		h.embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("provider down")
		}

		result, err := h.searcher.SelfQuery(ctx, "qualis A1", 10)
		require.NoError(t, err)

		assert.Equal(t, core.ModeFiltered, result.Mode)
		assert.Empty(t, result.Query)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "ml-1", result.Results[0].Record.RecordID())
		assert.Equal(t, float32(1), result.Results[0].Score)
	})

	t.Run("hierarchy pushdown", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		result, err := h.searcher.SelfQuery(ctx, "qualis B1 ou superior", 10)
		require.NoError(t, err)

		assert.Equal(t, core.ModeFiltered, result.Mode)
		ids := make([]string, 0, len(result.Results))
		for _, r := range result.Results {
			ids = append(ids, r.Record.RecordID())
		}
		assert.ElementsMatch(t, []string{"ml-1", "ml-2", "med-1"}, ids)
	})
}

func TestSelfQueryListAll(t *testing.T) {
	ctx := context.Background()

	h := newHarness(t)
	h.seedArticles(t, corpusArticles()...)

	result, err := h.searcher.SelfQuery(ctx, "", 3)
	require.NoError(t, err)

	assert.Equal(t, core.ModeListAll, result.Mode)
	assert.Empty(t, result.Filters)
	assert.Equal(t, 5, result.TotalFound)
	assert.Len(t, result.Results, 3)
}

func TestSelfQueryDegradation(t *testing.T) {
	ctx := context.Background()

	t.Run("vector failure falls back to filter pushdown", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		calls := 0
		h.embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
			calls++
			return nil, errors.New("provider down")
		}

		result, err := h.searcher.SelfQuery(ctx, "artigos publicados após 2020", 10)
		require.NoError(t, err)

		assert.True(t, result.Degraded)
		assert.Equal(t, core.ModeFiltered, result.Mode)
		require.NotEmpty(t, result.Results)
		for _, r := range result.Results {
			year, ok := r.Record.Field("year")
			require.True(t, ok)
			assert.GreaterOrEqual(t, year.(int), 2020)
		}
		assert.Greater(t, calls, 0)
	})

	t.Run("zero results is not an error", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		result, err := h.searcher.SelfQuery(ctx, "artigos publicados após 2030", 10)
		require.NoError(t, err)
		assert.Empty(t, result.Results)
		assert.Equal(t, 0, result.TotalFound)
	})
}

func TestSelfQueryWithMonitor(t *testing.T) {
	ctx := context.Background()

	t.Run("hybrid path reports every stage", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		monitor := &recordingMonitor{}
		result, err := h.searcher.SelfQueryWithMonitor(ctx,
			"aprendizado de máquina publicados após 2020", 10, monitor)
		require.NoError(t, err)

		assert.Equal(t,
			[]string{"start", "filters", "clean", "vector", "finish"},
			monitor.stages)
		assert.Equal(t, "aprendizado de máquina publicados após 2020", monitor.query)
		require.Len(t, monitor.filters, 1)
		assert.Equal(t, "year", monitor.filters[0].Field)
		assert.Equal(t, "aprendizado de máquina publicados", monitor.residual)
		assert.NotEmpty(t, monitor.vectorIDs)
		assert.Same(t, result, monitor.result)

		// Every pruned candidate was seen by the vector search and
		// genuinely fails the year filter.
		for _, id := range monitor.filteredOut {
			assert.Contains(t, monitor.vectorIDs, id)
			for _, article := range corpusArticles() {
				if article.Id == id {
					assert.Less(t, article.Year, 2020)
				}
			}
		}
	})

	t.Run("fallback reports degradation before finishing", func(t *testing.T) {
		h := newHarness(t)
		h.seedArticles(t, corpusArticles()...)

		h.embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("provider down")
		}

		monitor := &recordingMonitor{}
		result, err := h.searcher.SelfQueryWithMonitor(ctx,
			"artigos publicados após 2020", 10, monitor)
		require.NoError(t, err)

		assert.Equal(t,
			[]string{"start", "filters", "clean", "degraded", "finish"},
			monitor.stages)
		require.Error(t, monitor.degraded)
		assert.True(t, result.Degraded)
		assert.Same(t, result, monitor.result)
	})
}

// recordingMonitor captures every observation hook for assertions.
type recordingMonitor struct {
	stages      []string
	query       string
	filters     []core.Filter
	residual    string
	vectorIDs   []string
	filteredOut []string
	degraded    error
	result      *core.SelfQueryResult
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(query string) {
	m.stages = append(m.stages, "start")
	m.query = query
}

func (m *recordingMonitor) AfterFilterExtraction(filters []core.Filter) {
	m.stages = append(m.stages, "filters")
	m.filters = filters
}

func (m *recordingMonitor) AfterQueryCleaning(residual string) {
	m.stages = append(m.stages, "clean")
	m.residual = residual
}

func (m *recordingMonitor) AfterVectorSearch(ids []string) {
	m.stages = append(m.stages, "vector")
	m.vectorIDs = ids
}

func (m *recordingMonitor) FilteredOut(id string) {
	m.filteredOut = append(m.filteredOut, id)
}

func (m *recordingMonitor) Degraded(err error) {
	m.stages = append(m.stages, "degraded")
	m.degraded = err
}

func (m *recordingMonitor) Finish(result *core.SelfQueryResult) {
	m.stages = append(m.stages, "finish")
	m.result = result
}

func TestIndexingOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("IndexDocuments skips mismatched kinds", func(t *testing.T) {
		h := newHarness(t)

		records := []core.Record{
			&core.Article{Id: "art-1", Title: "Estudo", Year: 2020},
			&core.Researcher{Id: "res-1", Name: "Ana"},
		}
		added, err := h.searcher.IndexDocuments(ctx, records, core.KindArticle)
		require.NoError(t, err)
		assert.Equal(t, 1, added)
	})

	t.Run("IndexAll rebuilds from the store", func(t *testing.T) {
		h := newHarness(t)

		require.NoError(t, h.store.AddArticles(ctx, corpusArticles()...))
		require.NoError(t, h.searcher.IndexAll(ctx))

		results, err := h.searcher.SemanticSearch(ctx, "taxonomia de plantas", 5, core.KindArticle)
		require.NoError(t, err)
		assert.Len(t, results, 5)
	})
}

func TestNewSearcherValidation(t *testing.T) {
	s := schema.Default()
	engine := selfquery.NewEngine(s)
	store, backend, err := badger.NewMemoryStore(engine)
	require.NoError(t, err)
	t.Cleanup(func() {
		backend.Close()
	})

	cache := ai.NewEmbeddingCache()
	extractor := selfquery.NewExtractor(s, cache, mock.NewMockEmbedder())

	_, err = NewSearcher(nil, extractor, engine, nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewSearcher(store, nil, engine, nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrExtractorRequired)

	_, err = NewSearcher(store, extractor, nil, nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrEngineRequired)

	_, err = NewSearcher(store, extractor, engine, nil, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
