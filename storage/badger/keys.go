package badger

import (
	"fmt"

	"github.com/acadsearch/acadsearch/core"
)

// Key prefixes for different data types
const (
	articlePrefix    = "artrec"
	researcherPrefix = "resrec"
	vectorPrefix     = "vecidx"
)

// makeArticleKey generates a key for an article by ID.
func makeArticleKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", articlePrefix, id))
}

// makeResearcherKey generates a key for a researcher by ID.
func makeResearcherKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", researcherPrefix, id))
}

// recordPrefix returns the scan prefix for the given kind.
func recordPrefix(kind core.RecordKind) ([]byte, error) {
	switch kind {
	case core.KindArticle:
		return []byte(articlePrefix + ":"), nil
	case core.KindResearcher:
		return []byte(researcherPrefix + ":"), nil
	default:
		return nil, core.ErrInvalidRecordKind
	}
}

// MakeVectorKey generates a key for a persisted vector index entry.
// Entries are grouped by kind so each index can be scanned independently.
func MakeVectorKey(kind core.RecordKind, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", vectorPrefix, kind, id))
}

// VectorKeyPrefix returns the scan prefix for one kind's vector entries.
func VectorKeyPrefix(kind core.RecordKind) []byte {
	return []byte(fmt.Sprintf("%s:%s:", vectorPrefix, kind))
}
