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

package acadsearch

import (
	"log/slog"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/ai/openai"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/index"
	"github.com/acadsearch/acadsearch/indexer"
	"github.com/acadsearch/acadsearch/schema"
	"github.com/acadsearch/acadsearch/search"
	"github.com/acadsearch/acadsearch/selfquery"
	"github.com/acadsearch/acadsearch/storage/badger"
	"github.com/acadsearch/acadsearch/summary"
)

// Service wires the whole retrieval subsystem: badger-backed record
// store, per-kind vector indices, filter extraction and the AI
// provider. It is the single entry point applications build on.
type Service struct {
	backend   *badger.Backend
	store     *badger.RecordStore
	schema    *schema.Schema
	engine    *selfquery.Engine
	extractor *selfquery.Extractor
	cache     *ai.EmbeddingCache
	indices   map[core.RecordKind]*index.VectorIndex
	provider  ai.Provider
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig   *ai.Config
	schemaPath string
	provider   ai.Provider
	inMemory   bool
}

// WithAIConfig sets the provider configuration used when no explicit
// provider is given.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithSchemaPath loads the filter-field schema from the given YAML
// file instead of the built-in defaults.
func WithSchemaPath(path string) ServiceOption {
	return func(o *serviceOptions) {
		o.schemaPath = path
	}
}

// WithProvider overrides the AI provider, bypassing config-based
// construction. Used for mock providers in tests and offline runs.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory, discarding all
// data on Close.
func WithInMemory() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService opens storage at filePath and assembles the retrieval
// subsystem around it.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	fieldSchema, err := schema.Load(options.schemaPath)
	if err != nil {
		return nil, err
	}
	engine := selfquery.NewEngine(fieldSchema)

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	store := badger.NewRecordStore(backend, engine)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	cache := ai.NewEmbeddingCache()

	indices := make(map[core.RecordKind]*index.VectorIndex, len(core.RecordKinds()))
	for _, kind := range core.RecordKinds() {
		idx, idxErr := index.NewVectorIndex(backend, kind, cache)
		if idxErr != nil {
			provider.Close()
			backend.Close()
			return nil, idxErr
		}
		indices[kind] = idx
	}

	return &Service{
		backend:   backend,
		store:     store,
		schema:    fieldSchema,
		engine:    engine,
		extractor: selfquery.NewExtractor(fieldSchema, cache, provider.Embedder()),
		cache:     cache,
		indices:   indices,
		provider:  provider,
		logger:    slog.Default(),
	}, nil
}

// Close releases the AI provider and storage. The service should not
// be used after calling Close.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing record store", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Store returns the record store.
func (s *Service) Store() *badger.RecordStore {
	return s.store
}

// Schema returns the filter-field schema.
func (s *Service) Schema() *schema.Schema {
	return s.schema
}

// Provider returns the AI provider.
func (s *Service) Provider() ai.Provider {
	return s.provider
}

// Index returns the vector index of the given kind, or nil when the
// kind is unknown.
func (s *Service) Index(kind core.RecordKind) *index.VectorIndex {
	return s.indices[kind]
}

// NewSearcher creates a searcher over the service's store and indices.
func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.store, s.extractor, s.engine, s.indices,
		s.provider.Embedder(), opts...)
}

// NewPipeline creates a bulk indexing pipeline over the service's
// store and indices.
func (s *Service) NewPipeline(opts ...indexer.Option) (*indexer.Pipeline, error) {
	return indexer.NewPipeline(s.store, s.indices, s.provider.Embedder(),
		search.NewFormatter(search.DefaultLimits()), opts...)
}

// NewGenerator creates a summary and tag generator backed by the
// service's completion provider.
func (s *Service) NewGenerator(opts ...summary.Option) *summary.Generator {
	limits := search.DefaultLimits()
	filter := search.NewSimilarityFilter(limits, s.cache, s.provider.Embedder())
	return summary.NewGenerator(s.provider.Completer(), filter,
		search.NewFormatter(limits), opts...)
}
