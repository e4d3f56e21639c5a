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

// Package summary turns search results into natural-language summaries
// and topic tags via a completion provider.
//
// Two prompt paths exist. When the user's query is substantial (longer
// than the minimum query length), content is built from the chunks most
// similar to the query, keeping prompts small and on-topic. Short or
// absent queries use whole-document context instead. Tag generation
// never fails outward: provider errors and empty completions fall back
// to fixed default tag sets.
package summary
