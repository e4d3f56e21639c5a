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


package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a schema from the given path. A missing file falls back to
// the default schema; a malformed file is a fatal configuration error.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSchema, err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the built-in schema for article metadata: publication
// year, Qualis tier, journal, author names and DOI. Patterns target
// Portuguese query phrasing, matching the source data.
func Default() *Schema {
	s := &Schema{
		ContentDescription: "Artigos científicos com título, resumo e metadados de publicação acadêmica",
		Fields: []Field{
			{
				Name:        "year",
				Description: "Ano de publicação do artigo",
				Type:        TypeInteger,
				Patterns: []string{
					`(?i)(?:após|apos|depois\s+de|desde|a\s+partir\s+de)\s+(\d{4})`,
					`(?i)(?:antes\s+de|até|ate|anteriores?\s+a)\s+(\d{4})`,
					`(?i)(?:publicad[oa]s?\s+em|no\s+ano\s+de|do\s+ano\s+de)\s+(\d{4})`,
					`(?i)\bano\s*(>=|<=|>|<|=)\s*(\d{4})`,
				},
				SemanticKeywords: []string{"ano de publicação", "publicado em", "período", "recente"},
			},
			{
				Name:        "qualis",
				Description: "Classificação Qualis do periódico onde o artigo foi publicado",
				Type:        TypeString,
				Hierarchy:   []string{"A1", "A2", "B1", "B2", "B3", "B4", "C"},
				Patterns: []string{
					`(?i)(?:qualis|classificação|classificacao)\s+([A-Ca-c][1-4]?)\s+ou\s+(?:superior|melhor)`,
					`(?i)(?:qualis|classificação|classificacao)\s+([A-Ca-c][1-4]?)\b`,
				},
				SemanticKeywords: []string{"qualis", "qualidade do periódico", "estrato", "classificação"},
			},
			{
				Name:        "journal",
				Description: "Nome do periódico onde o artigo foi publicado",
				Type:        TypeString,
				Patterns: []string{
					`(?i)(?:no\s+periódico|no\s+periodico|na\s+revista)\s+([\p{L}\d][\p{L}\d .&-]*)`,
				},
			},
			{
				Name:        "author_name",
				Description: "Nome de um dos autores do artigo",
				Type:        TypeString,
				IsList:      true,
				SubField:    "name",
				Patterns: []string{
					`(?i)(?:do\s+autor|da\s+autora|de\s+autoria\s+de|escrito\s+por)\s+(\p{Lu}\p{Ll}+(?:\s+(?:d[aeo]s?\s+)?\p{Lu}\p{Ll}+)*)`,
				},
				SemanticKeywords: []string{"autor", "autoria", "escrito por", "pesquisador responsável"},
			},
			{
				Name:        "doi",
				Description: "Identificador DOI do artigo",
				Type:        TypeString,
				Patterns: []string{
					`(?i)\bdoi\s+(10\.\S+)`,
				},
			},
		},
	}

	// Default patterns are static; a compile failure here is a bug.
	if err := s.compile(); err != nil {
		panic(err)
	}
	return s
}
