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

// Package openai provides ai.Embedder and ai.Completer implementations
// backed by OpenAI-compatible HTTP APIs.
//
// The clients work with the official OpenAI API as well as local services
// exposing the same surface (Ollama, LM Studio, vLLM). When no API key is
// configured, a placeholder token is sent, which local services ignore.
package openai
