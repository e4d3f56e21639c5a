package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()

	require.NotNil(t, s.FieldByName("year"))
	require.NotNil(t, s.FieldByName("qualis"))
	require.NotNil(t, s.FieldByName("author_name"))
	assert.Nil(t, s.FieldByName("missing"))

	assert.Equal(t, TypeInteger, s.FieldByName("year").Type)
	assert.True(t, s.FieldByName("author_name").IsList)

	for _, field := range s.Fields {
		assert.Len(t, field.CompiledPatterns(), len(field.Patterns),
			"patterns for %s must be compiled", field.Name)
	}
}

func TestHierarchyRank(t *testing.T) {
	qualis := Default().FieldByName("qualis")

	rank, ok := qualis.HierarchyRank("A1")
	require.True(t, ok)
	assert.Equal(t, 0, rank)

	rank, ok = qualis.HierarchyRank("b1")
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok = qualis.HierarchyRank("Z9")
	assert.False(t, ok)

	year := Default().FieldByName("year")
	_, ok = year.HierarchyRank("2020")
	assert.False(t, ok, "fields without hierarchy have no ranks")
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to default", func(t *testing.T) {
		s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.NotNil(t, s.FieldByName("year"))
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		content := `
document_content_description: Artigos de teste
metadata_fields:
  - name: year
    description: Ano de publicação
    type: integer
    patterns:
      - '(?i)desde\s+(\d{4})'
  - name: qualis
    description: Estrato Qualis
    type: string
    hierarchy: [A1, A2, B1]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		s, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Artigos de teste", s.ContentDescription)
		require.Len(t, s.Fields, 2)
		assert.Equal(t, TypeInteger, s.Fields[0].Type)
		assert.Len(t, s.Fields[0].CompiledPatterns(), 1)
		assert.Equal(t, TypeString, s.Fields[1].Type)
	})

	t.Run("malformed yaml is fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n  - ["), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMalformedSchema)
	})

	t.Run("bad pattern is fatal", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		content := `
metadata_fields:
  - name: year
    type: integer
    patterns: ['(unclosed']
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.Empty(t, s.Fields)
	assert.Nil(t, s.FieldByName("year"))
}
