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

// Package search provides semantic and self-querying retrieval over
// academic records.
//
// The Searcher type composes three paths per request:
//   - Pure semantic search over a per-kind vector index
//   - Filter pushdown to the record store when the query is consumed
//     entirely by extracted predicates
//   - A hybrid of both: vector search over the residual free text,
//     post-filtered by the extracted predicates
//
// The package also holds the supporting pipeline pieces: the document
// formatter with its truncation limits, the sentence-aware chunker, and
// the best-effort cosine-similarity filter used for prompt context
// selection. Provider failures degrade rankings instead of failing
// requests.
package search
