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

package search

import "errors"

var (
	// ErrStoreRequired is returned when a record store is not provided.
	ErrStoreRequired = errors.New("record store required")

	// ErrExtractorRequired is returned when a filter extractor is not provided.
	ErrExtractorRequired = errors.New("filter extractor required")

	// ErrEngineRequired is returned when a filter engine is not provided.
	ErrEngineRequired = errors.New("filter engine required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoIndexForKind is returned when no vector index exists for the
	// requested record kind.
	ErrNoIndexForKind = errors.New("no vector index for record kind")
)
