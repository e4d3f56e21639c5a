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

package selfquery

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/schema"
)

const defaultSemanticThreshold = 0.6

var yearTokenRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)

// Extractor derives structured filters from natural-language queries
// using per-field regex patterns and, when configured, embedding
// similarity against semantic keyword sets.
type Extractor struct {
	schema    *schema.Schema
	cache     *ai.EmbeddingCache
	embedder  ai.Embedder
	threshold float32
	logger    *slog.Logger
}

// ExtractorOption is a functional option for configuring an Extractor.
type ExtractorOption func(*Extractor)

// WithSemanticThreshold sets the minimum cosine similarity between the
// query and a field keyword for the semantic path to fire.
func WithSemanticThreshold(threshold float32) ExtractorOption {
	return func(e *Extractor) {
		e.threshold = threshold
	}
}

// WithExtractorLogger sets the logger used for per-field diagnostics.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a filter extractor over the given schema.
// The embedder may be nil, which disables the semantic keyword path;
// pattern extraction still works.
func NewExtractor(s *schema.Schema, cache *ai.EmbeddingCache, embedder ai.Embedder, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		schema:    s,
		cache:     cache,
		embedder:  embedder,
		threshold: defaultSemanticThreshold,
		logger:    slog.Default().With("component", "filter-extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractFilters derives structured filters from the query, one at most
// per schema field. Pattern matches always win over semantic matches
// for the same field. A failure inside one field's matching is logged
// and skipped; it never aborts the whole extraction.
func (e *Extractor) ExtractFilters(ctx context.Context, query string) []core.Filter {
	var filters []core.Filter

	for i := range e.schema.Fields {
		field := &e.schema.Fields[i]

		if filter, ok := e.extractByPattern(field, query); ok {
			filters = append(filters, filter)
			continue
		}

		if filter, ok := e.extractBySemantics(ctx, field, query); ok {
			filters = append(filters, filter)
		}
	}

	return filters
}

// extractByPattern runs the field's regex patterns against the query.
// The first matching pattern wins.
func (e *Extractor) extractByPattern(field *schema.Field, query string) (core.Filter, bool) {
	for i, re := range field.CompiledPatterns() {
		match := re.FindStringSubmatch(query)
		if match == nil {
			continue
		}

		pattern := field.Patterns[i]
		var operator core.FilterOperator
		var raw string

		switch len(match) {
		case 2:
			// Single capture group: the value; the operator comes from
			// lexical cues in the pattern text itself.
			operator = operatorFromPattern(pattern)
			raw = match[1]
		case 3:
			// Two capture groups: explicit (operator, value).
			op, err := core.ParseFilterOperator(match[1])
			if err != nil {
				e.logger.Warn("pattern matched with unknown operator",
					"field", field.Name, "operator", match[1])
				continue
			}
			operator = op
			raw = match[2]
		default:
			continue
		}

		return core.Filter{
			Field:    field.Name,
			Operator: operator,
			Value:    coerceValue(raw, field.Type),
			Source:   core.SourcePattern,
			Evidence: pattern,
			Matched:  match[0],
		}, true
	}

	return core.Filter{}, false
}

// extractBySemantics embeds the query and the field's keywords and, on
// a similarity hit, attempts contextual value extraction. Only the
// first qualifying keyword counts.
func (e *Extractor) extractBySemantics(ctx context.Context, field *schema.Field, query string) (core.Filter, bool) {
	if e.embedder == nil || len(field.SemanticKeywords) == 0 {
		return core.Filter{}, false
	}

	queryVector, err := e.cache.GetOrCreate(ctx, query, e.embedder)
	if err != nil {
		e.logger.Warn("semantic extraction skipped",
			"field", field.Name, "err", err)
		return core.Filter{}, false
	}

	keywordVectors, err := e.cache.GetOrCreateBatch(ctx, field.SemanticKeywords, e.embedder)
	if err != nil {
		e.logger.Warn("semantic extraction skipped",
			"field", field.Name, "err", err)
		return core.Filter{}, false
	}

	for i, keyword := range field.SemanticKeywords {
		similarity := core.CosineSimilarity(queryVector, keywordVectors[i])
		if similarity < e.threshold {
			continue
		}

		raw, ok := contextualValue(field, query)
		if !ok {
			continue
		}

		e.logger.Debug("semantic keyword matched",
			"field", field.Name, "keyword", keyword, "similarity", similarity)

		return core.Filter{
			Field:    field.Name,
			Operator: core.OpEq,
			Value:    coerceValue(raw, field.Type),
			Source:   core.SourceSemantic,
			Evidence: keyword,
		}, true
	}

	return core.Filter{}, false
}

// CleanQuery removes the matched text of every pattern-sourced filter
// from the query and collapses whitespace, yielding the residual
// free-text query for vector search. Semantic filters are not stripped.
func CleanQuery(query string, filters []core.Filter) string {
	for _, filter := range filters {
		if filter.Source != core.SourcePattern || filter.Matched == "" {
			continue
		}
		query = strings.Replace(query, filter.Matched, " ", 1)
	}
	return strings.Join(strings.Fields(query), " ")
}

// operatorFromPattern infers the comparison operator from lexical cues
// in a single-group pattern's source text.
func operatorFromPattern(pattern string) core.FilterOperator {
	lower := strings.ToLower(pattern)

	for _, cue := range []string{"após", "apos", "depois", "desde", "a\\s+partir", "superior", "melhor", "acima"} {
		if strings.Contains(lower, cue) {
			return core.OpGTE
		}
	}
	for _, cue := range []string{"antes", "até", "ate", "anterior", "inferior", "pior", "abaixo"} {
		if strings.Contains(lower, cue) {
			return core.OpLTE
		}
	}
	return core.OpEq
}

// contextualValue applies field-specific heuristics to pull a value out
// of the query when a semantic keyword fired without a pattern match.
func contextualValue(field *schema.Field, query string) (string, bool) {
	if field.Type == schema.TypeInteger || field.Type == schema.TypeFloat {
		if match := yearTokenRe.FindStringSubmatch(query); match != nil {
			return match[1], true
		}
		return "", false
	}

	if len(field.Hierarchy) > 0 {
		for _, token := range strings.Fields(query) {
			if _, ok := field.HierarchyRank(strings.Trim(token, ".,;:!?")); ok {
				return strings.Trim(token, ".,;:!?"), true
			}
		}
		return "", false
	}

	return "", false
}

// coerceValue converts raw to the field's declared type. On coercion
// failure the trimmed string is kept rather than failing the request.
func coerceValue(raw string, valueType schema.ValueType) any {
	trimmed := strings.TrimSpace(raw)

	switch valueType {
	case schema.TypeInteger:
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
	case schema.TypeFloat:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	}
	return trimmed
}
