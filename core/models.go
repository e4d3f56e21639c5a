package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for texts (embedding cache keys,
// deduplication). Record identifiers remain strings owned by the store.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RecordKind identifies the type of a domain record.
// It is a closed enumeration; formatter and index selection dispatch on it
// through lookup tables rather than string comparison.
type RecordKind int

const (
	// KindArticle represents a published article.
	KindArticle RecordKind = iota + 1
	// KindResearcher represents a researcher profile.
	KindResearcher
)

var recordKindNames = map[RecordKind]string{
	KindArticle:    "article",
	KindResearcher: "researcher",
}

// String returns the canonical lowercase name of the kind.
func (k RecordKind) String() string {
	if name, ok := recordKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RecordKind(%d)", int(k))
}

// ParseRecordKind converts a kind name to a RecordKind.
// Returns ErrInvalidRecordKind for unknown names.
func ParseRecordKind(name string) (RecordKind, error) {
	for kind, n := range recordKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRecordKind, name)
}

// RecordKinds returns all valid kinds in declaration order.
func RecordKinds() []RecordKind {
	return []RecordKind{KindArticle, KindResearcher}
}

// Record is the retrieval subsystem's read-only view of a domain entity.
// Field exposes structured attributes by schema name; the second return
// value is false for fields the record does not carry.
type Record interface {
	Kind() RecordKind
	RecordID() string
	Field(name string) (any, bool)
}

// Author is a contributing author of an article.
type Author struct {
	Name string
}

// Article is a published article with its retrieval-relevant attributes.
type Article struct {
	Id       string
	Title    string
	Abstract string
	Year     int
	Qualis   string // journal quality tier (A1..C), empty when unrated
	Journal  string
	DOI      string
	Authors  []Author
}

var _ Record = (*Article)(nil)

// Kind returns KindArticle.
func (a *Article) Kind() RecordKind { return KindArticle }

// RecordID returns the article's unique identifier.
func (a *Article) RecordID() string { return a.Id }

// Field returns a structured attribute by name.
// The author_name field yields the full name list; list-aware filter
// evaluation matches any element.
func (a *Article) Field(name string) (any, bool) {
	switch name {
	case "title":
		return a.Title, true
	case "abstract":
		return a.Abstract, true
	case "year":
		return a.Year, true
	case "qualis":
		return a.Qualis, true
	case "journal":
		return a.Journal, true
	case "doi":
		return a.DOI, true
	case "author_name":
		names := make([]string, len(a.Authors))
		for i, author := range a.Authors {
			names[i] = author.Name
		}
		return names, true
	}
	return nil, false
}

// Researcher is a researcher profile.
type Researcher struct {
	Id      string
	Name    string
	Degree  string // academic degree (e.g. "Doutorado")
	Summary string
	Orcid   string
	Lattes  string
}

var _ Record = (*Researcher)(nil)

// Kind returns KindResearcher.
func (r *Researcher) Kind() RecordKind { return KindResearcher }

// RecordID returns the researcher's unique identifier.
func (r *Researcher) RecordID() string { return r.Id }

// Field returns a structured attribute by name.
func (r *Researcher) Field(name string) (any, bool) {
	switch name {
	case "name":
		return r.Name, true
	case "degree":
		return r.Degree, true
	case "summary":
		return r.Summary, true
	case "orcid":
		return r.Orcid, true
	case "lattes":
		return r.Lattes, true
	}
	return nil, false
}

// Document is the retrieval-oriented rendering of a Record: canonical
// content text plus structured metadata with null values dropped.
// Documents are immutable once created; re-indexing supersedes rather
// than mutates them.
type Document struct {
	ID       string
	Kind     RecordKind
	Content  string
	Metadata map[string]any
	Record   Record
}

// Chunk is a contiguous sub-span of a Document's content.
// Chunks are ephemeral: recomputed per request, never persisted.
type Chunk struct {
	Text    string
	DocID   string
	ChunkID int
	Record  Record // originating record, carried for context building
}

// SearchResult pairs a record with its relevance score.
type SearchResult struct {
	Record Record
	Score  float32
}

// RetrievalMode identifies which path produced a self-query result set.
type RetrievalMode int

const (
	// ModeHybrid ran a vector search over the residual query and
	// post-filtered by the extracted predicates.
	ModeHybrid RetrievalMode = iota + 1
	// ModeFiltered pushed filters directly to the record store.
	ModeFiltered
	// ModeListAll returned all records (no query, no filters).
	ModeListAll
)

// String returns the mode name.
func (m RetrievalMode) String() string {
	switch m {
	case ModeHybrid:
		return "hybrid"
	case ModeFiltered:
		return "filtered"
	case ModeListAll:
		return "list_all"
	}
	return fmt.Sprintf("RetrievalMode(%d)", int(m))
}

// SelfQueryResult is the full outcome of a self-query request.
// Degraded is set when a provider failure forced a fallback from the
// hybrid path; callers can distinguish it from a clean filtered result.
type SelfQueryResult struct {
	Query      string // residual free-text query actually searched
	Filters    []Filter
	Mode       RetrievalMode
	Degraded   bool
	TotalFound int
	Results    []SearchResult
}
