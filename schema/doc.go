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


// Package schema defines the field-schema configuration that drives
// structured filter extraction and evaluation.
//
// A Schema describes, per structured attribute: its name, type, an
// optional ordinal hierarchy (e.g. Qualis tiers), optional regex
// extraction patterns, and optional semantic keyword sets. It is loaded
// from YAML once at startup and treated as process-wide read-only state.
//
// A missing configuration file falls back to the built-in default
// schema; a malformed file is fatal at startup. Retrieval degrades to an
// empty schema (free-text search only) when callers choose to continue
// without structured filters.
package schema
