package indexer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/ai/mock"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/index"
	"github.com/acadsearch/acadsearch/search"
	"github.com/acadsearch/acadsearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineHarness struct {
	pipeline *Pipeline
	store    *badger.RecordStore
	indices  map[core.RecordKind]*index.VectorIndex
	embedder *mock.MockEmbedder
}

func newPipelineHarness(t *testing.T, opts ...Option) *pipelineHarness {
	t.Helper()

	store, backend, err := badger.NewMemoryStore(nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		backend.Close()
	})

	articleIdx, err := index.NewVectorIndex(backend, core.KindArticle, ai.NewEmbeddingCache())
	require.NoError(t, err)
	researcherIdx, err := index.NewVectorIndex(backend, core.KindResearcher, ai.NewEmbeddingCache())
	require.NoError(t, err)

	indices := map[core.RecordKind]*index.VectorIndex{
		core.KindArticle:    articleIdx,
		core.KindResearcher: researcherIdx,
	}

	embedder := mock.NewMockEmbedder()
	formatter := search.NewFormatter(search.DefaultLimits())

	opts = append([]Option{WithRetry(3, time.Millisecond)}, opts...)
	pipeline, err := NewPipeline(store, indices, embedder, formatter, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return &pipelineHarness{
		pipeline: pipeline,
		store:    store,
		indices:  indices,
		embedder: embedder,
	}
}

func testArticle(id, title string) *core.Article {
	return &core.Article{
		Id:       id,
		Title:    title,
		Abstract: "resumo de " + title,
		Year:     2021,
	}
}

func testResearcher(id, name string) *core.Researcher {
	return &core.Researcher{Id: id, Name: name, Summary: "pesquisa de " + name}
}

func TestNewPipelineValidation(t *testing.T) {
	store, backend, err := badger.NewMemoryStore(nil)
	require.NoError(t, err)
	defer backend.Close()

	idx, err := index.NewVectorIndex(backend, core.KindArticle, ai.NewEmbeddingCache())
	require.NoError(t, err)
	indices := map[core.RecordKind]*index.VectorIndex{core.KindArticle: idx}

	embedder := mock.NewMockEmbedder()
	formatter := search.NewFormatter(search.DefaultLimits())

	_, err = NewPipeline(nil, indices, embedder, formatter)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewPipeline(store, indices, nil, formatter)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewPipeline(store, nil, embedder, formatter)
	assert.ErrorIs(t, err, ErrIndicesRequired)

	_, err = NewPipeline(store, indices, embedder, formatter, WithRetry(0, time.Millisecond))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestIngestPersistsAndIndexes(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	err := h.pipeline.Ingest(ctx,
		testArticle("art-1", "Aprendizado de máquina"),
		testArticle("art-2", "Botânica amazônica"),
		testResearcher("res-1", "Ana Souza"),
	)
	require.NoError(t, err)

	// Storage writes are synchronous.
	article, err := h.store.GetArticle(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, "Aprendizado de máquina", article.Title)

	researcher, err := h.store.GetResearcher(ctx, "res-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", researcher.Name)

	// Index updates land asynchronously.
	require.Eventually(t, func() bool {
		return h.indices[core.KindArticle].Len() == 2 &&
			h.indices[core.KindResearcher].Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIngestStorageErrorFailsCall(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	// Invalid record: empty ID fails validation in the store.
	err := h.pipeline.Ingest(ctx, &core.Article{Title: "sem id"})
	require.Error(t, err)
	assert.Zero(t, h.indices[core.KindArticle].Len())
}

func TestIngestAfterReleaseStillPersists(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	h.pipeline.Release()

	// A closed pool cannot schedule indexing, but the store write must
	// still go through.
	err := h.pipeline.Ingest(ctx, testArticle("art-1", "Aprendizado de máquina"))
	require.NoError(t, err)

	article, err := h.store.GetArticle(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, "Aprendizado de máquina", article.Title)
	assert.Zero(t, h.indices[core.KindArticle].Len())
}

func TestIndexKind(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	require.NoError(t, h.store.AddArticles(ctx,
		testArticle("art-1", "Aprendizado de máquina"),
		testArticle("art-2", "Botânica amazônica"),
	))

	added, err := h.pipeline.IndexKind(ctx, core.KindArticle)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, h.indices[core.KindArticle].Len())
}

func TestIndexKindUnknownKind(t *testing.T) {
	store, backend, err := badger.NewMemoryStore(nil)
	require.NoError(t, err)
	defer backend.Close()

	idx, err := index.NewVectorIndex(backend, core.KindArticle, ai.NewEmbeddingCache())
	require.NoError(t, err)

	pipeline, err := NewPipeline(store,
		map[core.RecordKind]*index.VectorIndex{core.KindArticle: idx},
		mock.NewMockEmbedder(),
		search.NewFormatter(search.DefaultLimits()))
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.IndexKind(context.Background(), core.KindResearcher)
	assert.ErrorIs(t, err, ErrNoIndexForKind)
}

func TestIndexAllRebuildsEveryKind(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	require.NoError(t, h.store.AddArticles(ctx, testArticle("art-1", "Aprendizado")))
	require.NoError(t, h.store.AddResearchers(ctx, testResearcher("res-1", "Ana Souza")))

	require.NoError(t, h.pipeline.IndexAll(ctx))

	assert.Equal(t, 1, h.indices[core.KindArticle].Len())
	assert.Equal(t, 1, h.indices[core.KindResearcher].Len())
}

func TestIndexKindRetriesProviderFailures(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	require.NoError(t, h.store.AddArticles(ctx, testArticle("art-1", "Aprendizado")))

	var calls atomic.Int32
	h.embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("provider indisponível")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0, 0}
		}
		return vectors, nil
	}

	added, err := h.pipeline.IndexKind(ctx, core.KindArticle)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestIndexKindExhaustedRetriesFail(t *testing.T) {
	ctx := context.Background()
	h := newPipelineHarness(t)

	require.NoError(t, h.store.AddArticles(ctx, testArticle("art-1", "Aprendizado")))

	h.embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("provider indisponível")
	}

	_, err := h.pipeline.IndexKind(ctx, core.KindArticle)
	require.Error(t, err)
	assert.Zero(t, h.indices[core.KindArticle].Len())
}
