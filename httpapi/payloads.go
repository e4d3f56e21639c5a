package httpapi

import (
	"github.com/acadsearch/acadsearch/core"
)

// Response shapes are explicit payload structs rather than marshaled
// domain types, keeping the wire format stable when the core evolves.

type articlePayload struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Abstract string   `json:"abstract,omitempty"`
	Year     int      `json:"year,omitempty"`
	Qualis   string   `json:"qualis,omitempty"`
	Journal  string   `json:"journal,omitempty"`
	DOI      string   `json:"doi,omitempty"`
	Authors  []string `json:"authors,omitempty"`
}

type researcherPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Degree  string `json:"degree,omitempty"`
	Summary string `json:"summary,omitempty"`
	Orcid   string `json:"orcid,omitempty"`
	Lattes  string `json:"lattes,omitempty"`
}

type resultPayload struct {
	Kind       string             `json:"kind"`
	Score      float32            `json:"score"`
	Article    *articlePayload    `json:"article,omitempty"`
	Researcher *researcherPayload `json:"researcher,omitempty"`
}

type filterPayload struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
	Source   string `json:"source"`
}

type semanticResponse struct {
	Query   string          `json:"query"`
	Results []resultPayload `json:"results"`
	Summary string          `json:"resumo_ia,omitempty"`
}

type selfQueryResponse struct {
	Query      string          `json:"query"`
	Residual   string          `json:"residual_query"`
	Mode       string          `json:"mode"`
	Degraded   bool            `json:"degraded"`
	TotalFound int             `json:"total_found"`
	Filters    []filterPayload `json:"filters"`
	Results    []resultPayload `json:"results"`
	Summary    string          `json:"resumo_ia,omitempty"`
}

type reindexResponse struct {
	Status  string `json:"status"`
	Indexed int    `json:"indexed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResultPayload(result core.SearchResult) resultPayload {
	payload := resultPayload{
		Kind:  result.Record.Kind().String(),
		Score: result.Score,
	}

	switch r := result.Record.(type) {
	case *core.Article:
		authors := make([]string, len(r.Authors))
		for i, author := range r.Authors {
			authors[i] = author.Name
		}
		payload.Article = &articlePayload{
			ID:       r.Id,
			Title:    r.Title,
			Abstract: r.Abstract,
			Year:     r.Year,
			Qualis:   r.Qualis,
			Journal:  r.Journal,
			DOI:      r.DOI,
			Authors:  authors,
		}
	case *core.Researcher:
		payload.Researcher = &researcherPayload{
			ID:      r.Id,
			Name:    r.Name,
			Degree:  r.Degree,
			Summary: r.Summary,
			Orcid:   r.Orcid,
			Lattes:  r.Lattes,
		}
	}
	return payload
}

func toResultPayloads(results []core.SearchResult) []resultPayload {
	payloads := make([]resultPayload, len(results))
	for i, result := range results {
		payloads[i] = toResultPayload(result)
	}
	return payloads
}

func toFilterPayloads(filters []core.Filter) []filterPayload {
	payloads := make([]filterPayload, len(filters))
	for i, filter := range filters {
		payloads[i] = filterPayload{
			Field:    filter.Field,
			Operator: filter.Operator.String(),
			Value:    filter.Value,
			Source:   filter.Source.String(),
		}
	}
	return payloads
}
