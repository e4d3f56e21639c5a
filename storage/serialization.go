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

package storage

import (
	"github.com/acadsearch/acadsearch/core"
)

// MarshalArticle serializes an Article to bytes.
func MarshalArticle(article *core.Article) []byte {
	buf := make([]byte, core.ArticleMUS.Size(*article))
	core.ArticleMUS.Marshal(*article, buf)
	return buf
}

// UnmarshalArticle deserializes an Article from bytes.
func UnmarshalArticle(data []byte) (*core.Article, error) {
	article, _, err := core.ArticleMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// MarshalResearcher serializes a Researcher to bytes.
func MarshalResearcher(researcher *core.Researcher) []byte {
	buf := make([]byte, core.ResearcherMUS.Size(*researcher))
	core.ResearcherMUS.Marshal(*researcher, buf)
	return buf
}

// UnmarshalResearcher deserializes a Researcher from bytes.
func UnmarshalResearcher(data []byte) (*core.Researcher, error) {
	researcher, _, err := core.ResearcherMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &researcher, nil
}
