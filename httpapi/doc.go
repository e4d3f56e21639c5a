// Package httpapi exposes the retrieval subsystem over a small JSON
// HTTP interface: semantic search, self-querying search and reindex
// triggering, plus optional AI result summaries.
package httpapi
