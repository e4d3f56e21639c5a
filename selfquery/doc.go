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

// Package selfquery turns natural-language queries into structured
// filters and evaluates those filters against records.
//
// The Extractor derives filters from a query via per-field regex
// patterns and, optionally, embedding similarity against configured
// keyword sets; pattern matches always win over semantic matches for
// the same field. CleanQuery strips the consumed pattern text, leaving
// the residual free-text query for vector search.
//
// The Engine evaluates a filter conjunction against a record: numeric
// comparison, hierarchy-position comparison for ordinal fields like
// Qualis tiers, case-insensitive string equality and containment, and
// any-element matching for list fields.
package selfquery
