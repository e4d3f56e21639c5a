package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/ai/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddingCacheGetOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("caches repeated queries", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		cache := ai.NewEmbeddingCache()

		first, err := cache.GetOrCreate(ctx, "aprendizado de máquina", embedder)
		require.NoError(t, err)
		require.NotEmpty(t, first)

		second, err := cache.GetOrCreate(ctx, "aprendizado de máquina", embedder)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, embedder.CallCount(), "embedder should be invoked once per distinct text")
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("distinct texts get distinct entries", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		cache := ai.NewEmbeddingCache()

		a, err := cache.GetOrCreate(ctx, "redes neurais", embedder)
		require.NoError(t, err)
		b, err := cache.GetOrCreate(ctx, "bioinformática", embedder)
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("propagates embedder errors without caching", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedQueryFunc = func(ctx context.Context, text string) ([]float32, error) {
			return nil, errors.New("service unavailable")
		}
		cache := ai.NewEmbeddingCache()

		_, err := cache.GetOrCreate(ctx, "consulta", embedder)
		require.Error(t, err)
		assert.Equal(t, 0, cache.Len())
	})
}

func TestEmbeddingCacheGetOrCreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds only cache misses", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		cache := ai.NewEmbeddingCache()

		warm, err := cache.GetOrCreate(ctx, "já embarcado", embedder)
		require.NoError(t, err)

		var batchSizes []int
		embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			batchSizes = append(batchSizes, len(texts))
			vectors := make([][]float32, len(texts))
			for i := range texts {
				vectors[i] = []float32{float32(i), 1}
			}
			return vectors, nil
		}

		results, err := cache.GetOrCreateBatch(ctx, []string{"já embarcado", "novo texto", "outro texto"}, embedder)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, warm, results[0], "cached vector must be reused")
		assert.Equal(t, []int{2}, batchSizes, "only the two misses should be embedded")
		assert.Equal(t, 3, cache.Len())
	})

	t.Run("all hits skip the embedder", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		cache := ai.NewEmbeddingCache()

		_, err := cache.GetOrCreateBatch(ctx, []string{"a", "b"}, embedder)
		require.NoError(t, err)
		calls := embedder.CallCount()

		_, err = cache.GetOrCreateBatch(ctx, []string{"a", "b"}, embedder)
		require.NoError(t, err)
		assert.Equal(t, calls, embedder.CallCount())
	})

	t.Run("rejects mismatched embedder output", func(t *testing.T) {
		embedder := mock.NewMockEmbedder()
		embedder.EmbedDocumentsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return [][]float32{{1}}, nil
		}
		cache := ai.NewEmbeddingCache()

		_, err := cache.GetOrCreateBatch(ctx, []string{"um", "dois"}, embedder)
		require.ErrorIs(t, err, ai.ErrEmbeddingCountMismatch)
	})
}
