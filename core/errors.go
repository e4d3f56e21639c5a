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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidArticle indicates an Article failed validation.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrInvalidResearcher indicates a Researcher failed validation.
	ErrInvalidResearcher = errors.New("invalid researcher")

	// ErrEmptyRecordID indicates a record identifier is missing.
	ErrEmptyRecordID = errors.New("record id cannot be empty")

	// ErrEmptyTitle indicates the article title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyName indicates the researcher name is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidYear indicates a publication year outside the accepted range.
	ErrInvalidYear = errors.New("year out of range")

	// ErrInvalidRecordKind indicates an unknown record kind name or value.
	ErrInvalidRecordKind = errors.New("invalid record kind")

	// ErrInvalidOperator indicates an unknown filter operator representation.
	ErrInvalidOperator = errors.New("invalid filter operator")
)
