package search

import (
	"fmt"
	"strings"

	"github.com/acadsearch/acadsearch/core"
)

// Formatter renders records into canonical text for embedding, display
// and prompt building. Rendering is deterministic: the same record
// always yields the same text.
type Formatter struct {
	limits Limits
}

// NewFormatter creates a formatter with the given limits.
func NewFormatter(limits Limits) *Formatter {
	return &Formatter{limits: limits}
}

// FormatForDisplay renders the record's canonical text representation,
// with per-field truncation ceilings bounding embedding input size.
func (f *Formatter) FormatForDisplay(record core.Record) string {
	switch r := record.(type) {
	case *core.Article:
		title := truncate(r.Title, f.limits.MaxTituloChars)
		abstract := truncate(r.Abstract, f.limits.MaxResumoChars)
		return fmt.Sprintf("Título: %s\nResumo: %s", title, abstract)
	case *core.Researcher:
		summary := truncate(r.Summary, f.limits.MaxResumoChars)
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", r.Name, r.Degree, summary))
	default:
		return ""
	}
}

// FormatForTags renders a compact single-line representation used when
// building tag-generation prompts.
func (f *Formatter) FormatForTags(record core.Record) string {
	article, ok := record.(*core.Article)
	if !ok {
		return f.FormatForDisplay(record)
	}

	title := article.Title
	if title == "" {
		title = "Sem título"
	}
	text := "• " + truncate(title, f.limits.MaxTituloProducaoChars)
	if journal := truncate(article.Journal, f.limits.MaxJournalTagsChars); journal != "" {
		text += fmt.Sprintf(" (%s)", journal)
	}
	return text
}

// FormatProductionsForProfile renders a researcher's publication list
// as a numbered block for profile-summary prompts.
func (f *Formatter) FormatProductionsForProfile(articles []*core.Article) string {
	if len(articles) == 0 {
		return "Nenhuma produção encontrada."
	}

	if len(articles) > f.limits.MaxProducoesForProfile {
		articles = articles[:f.limits.MaxProducoesForProfile]
	}

	lines := make([]string, 0, len(articles))
	for i, article := range articles {
		title := article.Title
		if title == "" {
			title = "Sem título"
		}
		line := fmt.Sprintf("%d. %s (%d)", i+1,
			truncate(title, f.limits.MaxTituloProducaoChars), article.Year)
		if journal := truncate(article.Journal, f.limits.MaxJournalChars); journal != "" {
			line += " - " + journal
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// BuildDocument creates the retrieval view of a record: canonical
// content plus structured metadata with empty values dropped.
func (f *Formatter) BuildDocument(record core.Record) core.Document {
	doc := core.Document{
		ID:       record.RecordID(),
		Kind:     record.Kind(),
		Content:  f.FormatForDisplay(record),
		Metadata: make(map[string]any),
		Record:   record,
	}

	switch r := record.(type) {
	case *core.Article:
		doc.Metadata["id"] = r.Id
		if r.Year != 0 {
			doc.Metadata["year"] = r.Year
		}
		if r.Qualis != "" {
			doc.Metadata["qualis"] = r.Qualis
		}
		if r.Journal != "" {
			doc.Metadata["journal"] = r.Journal
		}
		if len(r.Authors) > 0 {
			doc.Metadata["author_name"] = r.Authors[0].Name
		}
		if r.DOI != "" {
			doc.Metadata["doi"] = r.DOI
		}
	case *core.Researcher:
		doc.Metadata["id"] = r.Id
		if r.Name != "" {
			doc.Metadata["name"] = r.Name
		}
		if r.Degree != "" {
			doc.Metadata["degree"] = r.Degree
		}
		if r.Orcid != "" {
			doc.Metadata["orcid"] = r.Orcid
		}
	}

	return doc
}

// Truncate cuts text to at most max runes. A plain prefix cut, no
// boundary detection.
func (f *Formatter) Truncate(text string, max int) string {
	return truncate(text, max)
}

func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
