// Package indexer provides pipeline orchestration for ingesting and
// indexing academic records.
//
// The Pipeline type manages the indexing workflow:
//   - Adding records to storage
//   - Updating vector indices asynchronously on a worker pool
//   - Full per-kind reindexing for startup warming and maintenance
//
// Embedding-provider calls are retried with exponential backoff.
// Errors during async indexing are logged but do not fail ingestion.
package indexer
