package search

import (
	"strings"
	"testing"

	"github.com/acadsearch/acadsearch/core"
	"github.com/stretchr/testify/assert"
)

func TestFormatForDisplay(t *testing.T) {
	formatter := NewFormatter(DefaultLimits())

	t.Run("article", func(t *testing.T) {
		article := &core.Article{
			Id:       "art-1",
			Title:    "Aprendizado de Máquina",
			Abstract: "Estudo sobre redes neurais.",
			Year:     2021,
		}

		text := formatter.FormatForDisplay(article)
		assert.Equal(t, "Título: Aprendizado de Máquina\nResumo: Estudo sobre redes neurais.", text)
	})

	t.Run("researcher", func(t *testing.T) {
		researcher := &core.Researcher{
			Id:      "res-1",
			Name:    "Maria Silva",
			Degree:  "Doutorado",
			Summary: "Pesquisa em bioinformática.",
		}

		text := formatter.FormatForDisplay(researcher)
		assert.Equal(t, "Maria Silva Doutorado Pesquisa em bioinformática.", text)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		article := &core.Article{Id: "art-1", Title: "Título Fixo", Year: 2020}
		assert.Equal(t, formatter.FormatForDisplay(article), formatter.FormatForDisplay(article))
	})

	t.Run("long fields are truncated", func(t *testing.T) {
		limits := DefaultLimits()
		article := &core.Article{
			Id:       "art-1",
			Title:    strings.Repeat("t", limits.MaxTituloChars+50),
			Abstract: strings.Repeat("a", limits.MaxResumoChars+50),
			Year:     2020,
		}

		text := formatter.FormatForDisplay(article)
		assert.Contains(t, text, strings.Repeat("t", limits.MaxTituloChars))
		assert.NotContains(t, text, strings.Repeat("t", limits.MaxTituloChars+1))
		assert.NotContains(t, text, strings.Repeat("a", limits.MaxResumoChars+1))
	})

	t.Run("truncation counts runes not bytes", func(t *testing.T) {
		limits := DefaultLimits()
		title := strings.Repeat("ã", limits.MaxTituloChars+10)
		article := &core.Article{Id: "art-1", Title: title, Year: 2020}

		text := formatter.FormatForDisplay(article)
		assert.Contains(t, text, strings.Repeat("ã", limits.MaxTituloChars))
	})
}

func TestFormatForTags(t *testing.T) {
	formatter := NewFormatter(DefaultLimits())

	t.Run("article with journal", func(t *testing.T) {
		article := &core.Article{
			Id:      "art-1",
			Title:   "Mineração de Dados",
			Journal: "Revista de Computação",
			Year:    2020,
		}
		assert.Equal(t, "• Mineração de Dados (Revista de Computação)", formatter.FormatForTags(article))
	})

	t.Run("article without journal", func(t *testing.T) {
		article := &core.Article{Id: "art-1", Title: "Mineração de Dados", Year: 2020}
		assert.Equal(t, "• Mineração de Dados", formatter.FormatForTags(article))
	})

	t.Run("untitled article", func(t *testing.T) {
		article := &core.Article{Id: "art-1", Year: 2020}
		assert.Equal(t, "• Sem título", formatter.FormatForTags(article))
	})
}

func TestFormatProductionsForProfile(t *testing.T) {
	formatter := NewFormatter(DefaultLimits())

	t.Run("empty list", func(t *testing.T) {
		assert.Equal(t, "Nenhuma produção encontrada.", formatter.FormatProductionsForProfile(nil))
	})

	t.Run("numbered list with year and journal", func(t *testing.T) {
		articles := []*core.Article{
			{Id: "a1", Title: "Primeiro Estudo", Year: 2020, Journal: "Revista A"},
			{Id: "a2", Title: "Segundo Estudo", Year: 2022},
		}

		text := formatter.FormatProductionsForProfile(articles)
		assert.Equal(t, "1. Primeiro Estudo (2020) - Revista A\n2. Segundo Estudo (2022)", text)
	})

	t.Run("caps at the configured maximum", func(t *testing.T) {
		limits := DefaultLimits()
		articles := make([]*core.Article, limits.MaxProducoesForProfile+5)
		for i := range articles {
			articles[i] = &core.Article{Id: "a", Title: "Estudo", Year: 2020}
		}

		text := formatter.FormatProductionsForProfile(articles)
		assert.Equal(t, limits.MaxProducoesForProfile, strings.Count(text, "\n")+1)
	})
}

func TestBuildDocument(t *testing.T) {
	formatter := NewFormatter(DefaultLimits())

	t.Run("article metadata drops empty fields", func(t *testing.T) {
		article := &core.Article{
			Id:      "art-1",
			Title:   "Estudo",
			Year:    2021,
			Qualis:  "A1",
			Authors: []core.Author{{Name: "Maria Silva"}, {Name: "João Souza"}},
		}

		doc := formatter.BuildDocument(article)

		assert.Equal(t, "art-1", doc.ID)
		assert.Equal(t, core.KindArticle, doc.Kind)
		assert.Equal(t, 2021, doc.Metadata["year"])
		assert.Equal(t, "A1", doc.Metadata["qualis"])
		assert.Equal(t, "Maria Silva", doc.Metadata["author_name"])
		assert.NotContains(t, doc.Metadata, "journal")
		assert.NotContains(t, doc.Metadata, "doi")
		assert.Same(t, article, doc.Record)
	})

	t.Run("researcher metadata", func(t *testing.T) {
		researcher := &core.Researcher{Id: "res-1", Name: "Ana Lima", Degree: "Doutorado"}

		doc := formatter.BuildDocument(researcher)

		assert.Equal(t, core.KindResearcher, doc.Kind)
		assert.Equal(t, "Ana Lima", doc.Metadata["name"])
		assert.Equal(t, "Doutorado", doc.Metadata["degree"])
		assert.NotContains(t, doc.Metadata, "orcid")
	})
}
