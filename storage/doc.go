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

// Package storage defines the persistence interfaces for academic
// records and the MUS serialization helpers shared by backends.
//
// The RecordStore interface covers article and researcher CRUD plus
// filtered listing; the badger subpackage provides the BadgerDB
// implementation. Structured-filter matching is delegated to a Matcher
// so the store stays independent of query semantics.
package storage
