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

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/indexer"
	"github.com/acadsearch/acadsearch/search"
	"github.com/acadsearch/acadsearch/summary"
)

// Result-set bounds mirrored from the original API contract.
const (
	defaultK = 10
	maxK     = 50
)

// Server exposes the retrieval core over HTTP. All responses are JSON.
// Provider failures during search never surface as 5xx: the searcher
// degrades to store-backed results and the response carries the
// degraded flag instead.
type Server struct {
	searcher  *search.Searcher
	pipeline  *indexer.Pipeline
	generator *summary.Generator
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithGenerator enables AI summaries on search responses via the
// summarize query parameter.
func WithGenerator(generator *summary.Generator) Option {
	return func(s *Server) error {
		s.generator = generator
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "httpapi")
		return nil
	}
}

// NewServer creates an HTTP API server over the given searcher and
// indexing pipeline.
func NewServer(searcher *search.Searcher, pipeline *indexer.Pipeline, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if pipeline == nil {
		return nil, ErrPipelineRequired
	}

	s := &Server{
		searcher: searcher,
		pipeline: pipeline,
		logger:   slog.Default().With("component", "httpapi"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /search/semantic", s.handleSemanticSearch)
	mux.HandleFunc("GET /search/self-query", s.handleSelfQuery)
	mux.HandleFunc("POST /index", s.handleReindex)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "parameter q is required")
		return
	}

	kind := core.KindArticle
	if name := r.URL.Query().Get("type"); name != "" {
		parsed, err := core.ParseRecordKind(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown record type: "+name)
			return
		}
		kind = parsed
	}

	k := parseK(r)
	results, err := s.searcher.SemanticSearch(r.Context(), query, k, kind)
	if err != nil {
		s.logger.Error("semantic search failed", "query", query, "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	response := semanticResponse{
		Query:   query,
		Results: toResultPayloads(results),
	}
	response.Summary = s.maybeSummarize(r, results, kind)

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleSelfQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	k := parseK(r)

	result, err := s.searcher.SelfQuery(r.Context(), query, k)
	if err != nil {
		s.logger.Error("self-query failed", "query", query, "err", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	response := selfQueryResponse{
		Query:      query,
		Residual:   result.Query,
		Mode:       result.Mode.String(),
		Degraded:   result.Degraded,
		TotalFound: result.TotalFound,
		Filters:    toFilterPayloads(result.Filters),
		Results:    toResultPayloads(result.Results),
	}
	response.Summary = s.maybeSummarize(r, result.Results, core.KindArticle)

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if name := r.URL.Query().Get("type"); name != "" {
		kind, err := core.ParseRecordKind(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown record type: "+name)
			return
		}

		indexed, err := s.pipeline.IndexKind(ctx, kind)
		if err != nil {
			s.logger.Error("reindex failed", "kind", kind.String(), "err", err)
			writeError(w, http.StatusInternalServerError, "reindex failed")
			return
		}
		writeJSON(w, http.StatusOK, reindexResponse{Status: "ok", Indexed: indexed})
		return
	}

	if err := s.pipeline.IndexAll(ctx); err != nil {
		s.logger.Error("reindex failed", "err", err)
		writeError(w, http.StatusInternalServerError, "reindex failed")
		return
	}
	writeJSON(w, http.StatusOK, reindexResponse{Status: "ok"})
}

// maybeSummarize generates an AI summary of the result set when
// requested and a generator is configured. Generation failures are
// logged and the summary omitted; search results always go out.
func (s *Server) maybeSummarize(r *http.Request, results []core.SearchResult, kind core.RecordKind) string {
	if s.generator == nil || r.URL.Query().Get("summarize") != "true" || len(results) == 0 {
		return ""
	}

	docs := make([]core.Document, len(results))
	for i, result := range results {
		docs[i] = s.searcher.Formatter().BuildDocument(result.Record)
	}

	text, err := s.generator.Summarize(r.Context(), docs, kind, r.URL.Query().Get("q"))
	if err != nil {
		s.logger.Warn("result summarization failed", "err", err)
		return ""
	}
	return text
}

func parseK(r *http.Request) int {
	k, err := strconv.Atoi(r.URL.Query().Get("k"))
	if err != nil || k <= 0 {
		return defaultK
	}
	if k > maxK {
		return maxK
	}
	return k
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
