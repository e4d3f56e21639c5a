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

package summary

import "fmt"

// Prompt templates. All prompts are Portuguese because the corpus and
// the end users are Portuguese-speaking; the placeholder is always the
// pre-built content block.

const researcherSummaryTemplate = `Você é um assistente de pesquisa. A seguir está uma lista de pesquisadores com seus nomes e resumos:

%s

Com base nesses dados, gere uma resposta estruturada com os seguintes elementos:
1) Um **resumo geral** dos principais temas e áreas de atuação presentes entre os pesquisadores.
2) Destaque as **tendências ou linhas de pesquisa mais frequentes**.

A resposta deve ser clara, objetiva e útil para o usuário que realizou a busca. Ela será exibida junto aos resultados encontrados.`

const articleSummaryTemplate = `Você é um assistente de pesquisa. A seguir está uma lista de artigos com seus nomes e resumos:

%s

Com base nesses dados, gere uma resposta estruturada com os seguintes elementos:
1) Um **resumo geral** dos principais temas abordados nos artigos.
2) Destaque as **tendências ou tópicos de pesquisa mais frequentes**.

A resposta deve ser clara, objetiva e útil para o usuário que realizou a busca. Ela será exibida junto aos resultados encontrados.`

const profileSummaryTemplate = `Analise o perfil do pesquisador:
Nome: %s
Título: %s
Resumo: %s

Principais publicações:
%s

Gere um resumo acadêmico em até 200 palavras destacando:
1) Áreas de expertise
2) Principais temas de pesquisa
3) Características do trabalho acadêmico
Seja conciso e informativo.`

const researcherTagsTemplate = `Analise as publicações do pesquisador:
%s

Gere exatamente 8 tags curtas (máximo 3 palavras cada) que representem:
- Áreas de conhecimento
- Temas de pesquisa
- Metodologias

Retorne apenas as tags separadas por vírgula.`

const articleTagsTemplate = `Analise os seguintes artigos científicos:
%s

Gere exatamente 5 tags curtas (máximo 3 palavras cada) que representem:
- Principais temas de pesquisa
- Áreas de conhecimento
- Metodologias

Retorne apenas as tags separadas por vírgula.`

const optimizedSummaryTemplate = `Analise estes trechos relevantes sobre %s:

%s

Gere um resumo em 2 parágrafos:
1) Principais temas identificados
2) Tendências ou padrões observados

Seja conciso e informativo.`

func buildSummaryPrompt(kindLabel, content string) string {
	if kindLabel == "pesquisador" {
		return fmt.Sprintf(researcherSummaryTemplate, content)
	}
	return fmt.Sprintf(articleSummaryTemplate, content)
}

func buildOptimizedPrompt(kindLabel, content string) string {
	return fmt.Sprintf(optimizedSummaryTemplate, kindLabel, content)
}

func buildProfilePrompt(name, title, personalSummary, productions string) string {
	return fmt.Sprintf(profileSummaryTemplate, name, title, personalSummary, productions)
}

func buildTagsPrompt(template, content string) string {
	return fmt.Sprintf(template, content)
}
