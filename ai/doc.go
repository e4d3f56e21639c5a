// Copyright 2025 Acadsearch Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ai provides abstractions for the AI services used by acadsearch.
//
// It defines interfaces for text embeddings and text completion,
// following the dependency inversion principle: the retrieval core and
// summarization path depend on these abstractions, never on a concrete
// provider.
//
//   - Embedder: generates vector embeddings from text
//   - Completer: generates prose from a prompt (summaries, tags)
//   - Provider: aggregates both for convenient initialization
//
// The ai package also hosts the process-wide EmbeddingCache, which
// memoizes embedding calls by content hash.
//
// Implementation sub-packages:
//
//   - ai/openai: production implementation over OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with behavior injection
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can
// assert on call counts and inject behavior.
package ai
