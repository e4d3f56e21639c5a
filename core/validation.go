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

import "fmt"

// Publication years accepted at the boundary. The lower bound matches the
// earliest plausible publication in the source data.
const (
	minYear = 1000
	maxYear = 2100
)

// ValidateArticle validates an Article according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Title must not be empty
//   - Year must be within [1000, 2100]
//
// NOT validated (optional in the source data):
//   - Abstract, Qualis, Journal, DOI, Authors
func ValidateArticle(article *Article) error {
	if article == nil {
		return fmt.Errorf("%w: article is nil", ErrInvalidArticle)
	}

	if article.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyRecordID)
	}

	if article.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidArticle, ErrEmptyTitle)
	}

	if article.Year < minYear || article.Year > maxYear {
		return fmt.Errorf("%w: %w: %d", ErrInvalidArticle, ErrInvalidYear, article.Year)
	}

	return nil
}

// ValidateResearcher validates a Researcher according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Name must not be empty
//
// NOT validated (optional in the source data):
//   - Degree, Summary, Orcid, Lattes
func ValidateResearcher(researcher *Researcher) error {
	if researcher == nil {
		return fmt.Errorf("%w: researcher is nil", ErrInvalidResearcher)
	}

	if researcher.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResearcher, ErrEmptyRecordID)
	}

	if researcher.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResearcher, ErrEmptyName)
	}

	return nil
}
