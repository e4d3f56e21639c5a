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

package indexer

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/acadsearch/acadsearch/core"
	"github.com/acadsearch/acadsearch/index"
	"github.com/acadsearch/acadsearch/search"
	"github.com/acadsearch/acadsearch/storage"
)

// Default retry policy for provider-bound index writes.
const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// Pipeline orchestrates bulk ingestion and indexing of academic
// records. Writes to the record store are synchronous; vector-index
// updates run on a worker pool with retried embedding calls.
type Pipeline struct {
	store     storage.RecordStore
	indices   map[core.RecordKind]*index.VectorIndex
	embedder  ai.Embedder
	formatter *search.Formatter
	pool      *ants.Pool

	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger.With("component", "indexer")
		return nil
	}
}

// WithRetry sets the retry policy applied to embedding-provider calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.baseDelay = baseDelay
		return nil
	}
}

// NewPipeline creates an indexing pipeline over the given store and
// per-kind vector indices.
func NewPipeline(
	store storage.RecordStore,
	indices map[core.RecordKind]*index.VectorIndex,
	embedder ai.Embedder,
	formatter *search.Formatter,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if len(indices) == 0 {
		return nil, ErrIndicesRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		store:       store,
		indices:     indices,
		embedder:    embedder,
		formatter:   formatter,
		pool:        pool,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		logger:      slog.Default().With("component", "indexer"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest persists the records and schedules their vector indexing
// asynchronously. Storage errors fail the call; indexing errors are
// retried and then logged, never surfaced, so a degraded embedding
// provider cannot block writes.
func (p *Pipeline) Ingest(ctx context.Context, records ...core.Record) error {
	var (
		articles    []*core.Article
		researchers []*core.Researcher
	)
	for _, record := range records {
		switch r := record.(type) {
		case *core.Article:
			articles = append(articles, r)
		case *core.Researcher:
			researchers = append(researchers, r)
		}
	}

	if len(articles) > 0 {
		if err := p.store.AddArticles(ctx, articles...); err != nil {
			return err
		}
		p.submitIndexing(core.KindArticle, toRecords(articles))
	}
	if len(researchers) > 0 {
		if err := p.store.AddResearchers(ctx, researchers...); err != nil {
			return err
		}
		p.submitIndexing(core.KindResearcher, toRecords(researchers))
	}
	return nil
}

// submitIndexing schedules an incremental index update on the pool.
// The job runs on a background context: ingestion callers must not be
// tied to indexing latency.
func (p *Pipeline) submitIndexing(kind core.RecordKind, records []core.Record) {
	idx, ok := p.indices[kind]
	if !ok {
		p.logger.Warn("no index for kind, skipping", "kind", kind.String())
		return
	}

	docs := make([]core.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, p.formatter.BuildDocument(record))
	}

	submitErr := p.pool.Submit(func() {
		ctx := context.Background()
		err := RetryWithBackoff(ctx, func() error {
			_, addErr := idx.AddDocuments(ctx, p.embedder, docs)
			return addErr
		}, p.maxAttempts, p.baseDelay)
		if err != nil {
			p.logger.Error("error indexing records",
				"kind", kind.String(),
				"records", len(docs),
				"err", err)
		}
	})
	if submitErr != nil {
		p.logger.Error("failed to schedule indexing",
			"kind", kind.String(),
			"records", len(docs),
			"err", submitErr)
	}
}

// IndexKind synchronously rebuilds the vector index of one kind from
// the record store, dropping stale entries. Returns the number of
// documents indexed.
func (p *Pipeline) IndexKind(ctx context.Context, kind core.RecordKind) (int, error) {
	idx, ok := p.indices[kind]
	if !ok {
		return 0, ErrNoIndexForKind
	}

	records, err := p.store.ListRecords(ctx, kind)
	if err != nil {
		return 0, err
	}

	docs := make([]core.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, p.formatter.BuildDocument(record))
	}

	var added int
	err = RetryWithBackoff(ctx, func() error {
		var rebuildErr error
		added, rebuildErr = idx.Rebuild(ctx, p.embedder, docs)
		return rebuildErr
	}, p.maxAttempts, p.baseDelay)
	if err != nil {
		return 0, err
	}

	p.logger.Info("index rebuilt", "kind", kind.String(), "documents", added)
	return added, nil
}

// IndexAll rebuilds every vector index concurrently on the worker pool
// and waits for completion. All per-kind errors are joined.
func (p *Pipeline) IndexAll(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for kind := range p.indices {
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if _, err := p.IndexKind(ctx, kind); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func toRecords[T core.Record](items []T) []core.Record {
	records := make([]core.Record, len(items))
	for i, item := range items {
		records[i] = item
	}
	return records
}
