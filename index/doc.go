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

// Package index provides the persistent per-kind vector index used for
// semantic search.
//
// One VectorIndex exists per record kind. Entries are embedded through
// the shared embedding cache, persisted in the badger backend, and held
// in memory as a brute-force nearest-neighbor structure searched by L2
// distance. Indexing is incremental and idempotent: documents whose IDs
// are already present are skipped, and stale entries survive until the
// next Rebuild.
package index
