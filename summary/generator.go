// Copyright 2025 Acadsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/search"
)

// Context-building sizes for the chunked prompt paths.
const (
	summaryChunkBudget = 8
	tagsChunkBudget    = 6
)

// Default tag sets returned when there is nothing to analyze or the
// completion provider fails.
var (
	researcherDefaultTags   = []string{"Pesquisa Acadêmica", "Ciência", "Produção Científica"}
	articleDefaultTags      = []string{"Pesquisa Científica", "Artigo Acadêmico"}
	articleErrorDefaultTags = []string{"Pesquisa Científica", "Artigo Acadêmico", "Ciência"}
)

// Generator produces natural-language summaries and tag sets over
// search results using a completion provider. Tag generation degrades
// to fixed defaults on provider failure; summary generation surfaces
// the error to the caller.
type Generator struct {
	completer ai.Completer
	filter    *search.SimilarityFilter
	formatter *search.Formatter
	limits    search.Limits
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used by the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger.With("component", "summary")
	}
}

// WithLimits overrides the default sizing limits.
func WithLimits(limits search.Limits) Option {
	return func(g *Generator) {
		g.limits = limits
	}
}

// NewGenerator creates a content generator. The similarity filter is
// used to narrow the prompt context to the documents and chunks most
// relevant to the user's query.
func NewGenerator(completer ai.Completer, filter *search.SimilarityFilter, formatter *search.Formatter, opts ...Option) *Generator {
	g := &Generator{
		completer: completer,
		filter:    filter,
		formatter: formatter,
		limits:    search.DefaultLimits(),
		logger:    slog.Default().With("component", "summary"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Summarize generates a result-set summary for the given documents.
// Queries longer than the minimum length switch to the chunked path,
// where only the chunks most similar to the query enter the prompt.
func (g *Generator) Summarize(ctx context.Context, docs []core.Document, kind core.RecordKind, userQuery string) (string, error) {
	if g.shouldChunk(userQuery) {
		return g.summarizeWithChunks(ctx, docs, kind, userQuery)
	}
	return g.summarizeTraditional(ctx, docs, kind, userQuery)
}

func (g *Generator) summarizeWithChunks(ctx context.Context, docs []core.Document, kind core.RecordKind, userQuery string) (string, error) {
	chunks := g.filter.RelevantChunks(ctx, userQuery, docs, summaryChunkBudget)
	content := g.buildChunkContent(chunks, kind)

	g.logger.Info("generating chunked summary",
		"kind", kind.String(),
		"chunks", len(chunks))

	completion, err := g.completer.Complete(ctx, buildOptimizedPrompt(kindLabel(kind), content))
	if err != nil {
		return "", fmt.Errorf("summary completion failed: %w", err)
	}
	return completion, nil
}

func (g *Generator) summarizeTraditional(ctx context.Context, docs []core.Document, kind core.RecordKind, userQuery string) (string, error) {
	relevant := docs
	if userQuery != "" {
		relevant = g.filter.RelevantDocuments(ctx, userQuery, docs, g.limits.MaxDocsForSummary)
	} else if len(relevant) > g.limits.MaxDocsForSummary {
		relevant = relevant[:g.limits.MaxDocsForSummary]
	}

	content := g.buildTraditionalContent(relevant)

	g.logger.Info("generating summary",
		"kind", kind.String(),
		"documents", len(relevant))

	completion, err := g.completer.Complete(ctx, buildSummaryPrompt(kindLabel(kind), content))
	if err != nil {
		return "", fmt.Errorf("summary completion failed: %w", err)
	}
	return completion, nil
}

// GenerateProfileSummary generates an academic profile summary for a
// researcher from their personal summary and publication list.
func (g *Generator) GenerateProfileSummary(ctx context.Context, researcher *core.Researcher, productions []*core.Article) (string, error) {
	formatted := g.formatter.FormatProductionsForProfile(productions)

	personal := g.formatter.Truncate(researcher.Summary, g.limits.MaxResumoChars)
	if personal != "" && len([]rune(researcher.Summary)) > g.limits.MaxResumoChars {
		personal += "..."
	}
	if personal == "" {
		personal = "Não informado"
	}

	g.logger.Info("generating profile summary", "researcher", researcher.Name)

	prompt := buildProfilePrompt(
		g.formatter.Truncate(researcher.Name, g.limits.MaxTituloChars),
		g.formatter.Truncate(researcher.Degree, g.limits.MaxTituloChars),
		personal,
		formatted,
	)
	completion, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("profile summary completion failed: %w", err)
	}
	return completion, nil
}

// GenerateResearcherTags generates up to 8 topic tags from a
// researcher's publications. Failures fall back to generic tags so
// profile rendering never breaks.
func (g *Generator) GenerateResearcherTags(ctx context.Context, productions []core.Document, userQuery string) []string {
	if len(productions) == 0 {
		return cloneTags(researcherDefaultTags)
	}

	content := g.buildTagsContent(ctx, productions, userQuery)
	tags, err := g.completeTags(ctx, buildTagsPrompt(researcherTagsTemplate, content), 8)
	if err != nil {
		g.logger.Warn("researcher tag generation failed", "error", err)
		return cloneTags(researcherDefaultTags)
	}
	if len(tags) == 0 {
		return cloneTags(researcherDefaultTags)
	}
	return tags
}

// GenerateArticleTags generates up to 5 topic tags for a set of
// articles, with the same fallback behavior as researcher tags.
func (g *Generator) GenerateArticleTags(ctx context.Context, docs []core.Document, userQuery string) []string {
	if len(docs) == 0 {
		return cloneTags(articleDefaultTags)
	}

	content := g.buildTagsContent(ctx, docs, userQuery)
	tags, err := g.completeTags(ctx, buildTagsPrompt(articleTagsTemplate, content), 5)
	if err != nil {
		g.logger.Warn("article tag generation failed", "error", err)
		return cloneTags(articleErrorDefaultTags)
	}
	if len(tags) == 0 {
		return cloneTags(articleErrorDefaultTags)
	}
	return tags
}

func (g *Generator) completeTags(ctx context.Context, prompt string, maxTags int) ([]string, error) {
	completion, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseTags(completion, maxTags), nil
}

func (g *Generator) shouldChunk(userQuery string) bool {
	return len(strings.TrimSpace(userQuery)) > g.limits.MinQueryLength
}

// buildChunkContent prefixes each chunk with the identity of its
// originating record so the model can attribute trechos correctly.
func (g *Generator) buildChunkContent(chunks []core.Chunk, kind core.RecordKind) string {
	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		switch r := chunk.Record.(type) {
		case *core.Researcher:
			texts = append(texts, fmt.Sprintf("Pesquisador %s: %s", r.Name, chunk.Text))
		case *core.Article:
			texts = append(texts, fmt.Sprintf("Artigo '%s': %s", r.Title, chunk.Text))
		default:
			texts = append(texts, chunk.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}

func (g *Generator) buildTraditionalContent(docs []core.Document) string {
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		switch r := doc.Record.(type) {
		case *core.Researcher:
			texts = append(texts, fmt.Sprintf("%s: %s", r.Name, r.Summary))
		case *core.Article:
			texts = append(texts, fmt.Sprintf("%s: %s", r.Title, r.Abstract))
		}
	}
	return strings.Join(texts, "\n\n")
}

func (g *Generator) buildTagsContent(ctx context.Context, docs []core.Document, userQuery string) string {
	if g.shouldChunk(userQuery) {
		return g.buildTagsContentChunked(ctx, docs, userQuery)
	}
	return g.buildTagsContentTraditional(ctx, docs, userQuery)
}

func (g *Generator) buildTagsContentChunked(ctx context.Context, docs []core.Document, userQuery string) string {
	chunks := g.filter.RelevantChunks(ctx, userQuery, docs, tagsChunkBudget)

	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if article, ok := chunk.Record.(*core.Article); ok {
			title := article.Title
			if title == "" {
				title = "Sem título"
			}
			texts = append(texts, fmt.Sprintf("%s: %s",
				g.formatter.Truncate(title, g.limits.MaxTituloProducaoChars),
				g.formatter.Truncate(chunk.Text, g.limits.MaxAbstractChars)))
			continue
		}
		texts = append(texts, g.formatter.FormatForTags(chunk.Record))
	}

	g.logger.Info("building chunked tag context", "chunks", len(chunks))
	return strings.Join(texts, "\n\n")
}

func (g *Generator) buildTagsContentTraditional(ctx context.Context, docs []core.Document, userQuery string) string {
	relevant := docs
	if userQuery != "" {
		relevant = g.filter.RelevantDocuments(ctx, userQuery, docs, g.limits.MaxProducoesForTags)
	} else if len(relevant) > g.limits.MaxProducoesForTags {
		relevant = relevant[:g.limits.MaxProducoesForTags]
	}

	texts := make([]string, 0, len(relevant))
	for _, doc := range relevant {
		texts = append(texts, g.formatter.FormatForTags(doc.Record))
	}
	return strings.Join(texts, "\n")
}

// parseTags splits a comma-separated completion into trimmed tags,
// dropping empties and capping at maxTags.
func parseTags(completion string, maxTags int) []string {
	parts := strings.Split(completion, ",")
	tags := make([]string, 0, maxTags)
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

func cloneTags(tags []string) []string {
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

func kindLabel(kind core.RecordKind) string {
	if kind == core.KindResearcher {
		return "pesquisador"
	}
	return "artigo"
}
