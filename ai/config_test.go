package ai_test

import (
	"testing"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := ai.NewConfig()
		assert.Equal(t, "https://api.openai.com/v1", cfg.EmbeddingHost)
		assert.Equal(t, "https://api.openai.com/v1", cfg.CompletionHost)
		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-3.5-turbo-instruct", cfg.CompletionModel)
		assert.Empty(t, cfg.APIKey)
	})

	t.Run("options override defaults", func(t *testing.T) {
		cfg := ai.NewConfig(
			ai.WithHost("http://localhost:11434"),
			ai.WithEmbeddingModel("nomic-embed-text"),
			ai.WithCompletionModel("llama3"),
			ai.WithAPIKey("secret"),
		)
		assert.Equal(t, "http://localhost:11434", cfg.EmbeddingHost)
		assert.Equal(t, "http://localhost:11434", cfg.CompletionHost)
		assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
		assert.Equal(t, "llama3", cfg.CompletionModel)
		assert.Equal(t, "secret", cfg.APIKey)
	})

	t.Run("separate hosts", func(t *testing.T) {
		cfg := ai.NewConfig(
			ai.WithEmbeddingHost("http://embed:8080"),
			ai.WithCompletionHost("http://complete:8081"),
		)
		assert.Equal(t, "http://embed:8080", cfg.EmbeddingHost)
		assert.Equal(t, "http://complete:8081", cfg.CompletionHost)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1 suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"strips trailing slash before suffix", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"leaves canonical host alone", "https://api.openai.com/v1", "https://api.openai.com/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ai.NewConfig(ai.WithHost(tt.host))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.CompletionHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, ai.NewConfig().Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := ai.NewConfig(ai.WithEmbeddingModel(""))
		require.Error(t, cfg.Validate())
	})

	t.Run("missing hosts", func(t *testing.T) {
		cfg := ai.NewConfig(ai.WithHost(""))
		require.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := ai.NewConfig()
		cfg.Temperature = 3.5
		require.Error(t, cfg.Validate())
	})
}
