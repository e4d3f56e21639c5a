package index

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"

	"github.com/acadsearch/acadsearch/core"
)

// Persisted entry layout: content, vector, record. The record bytes use
// the kind's own serializer, so the kind must be known at read time; it
// is encoded in the key prefix, not the value.

func marshalEntry(doc core.Document, vector []float32) ([]byte, error) {
	size := ord.String.Size(doc.Content) + core.VectorMUS.Size(vector)

	switch record := doc.Record.(type) {
	case *core.Article:
		size += core.ArticleMUS.Size(*record)
		buf := make([]byte, size)
		n := ord.String.Marshal(doc.Content, buf)
		n += core.VectorMUS.Marshal(vector, buf[n:])
		core.ArticleMUS.Marshal(*record, buf[n:])
		return buf, nil
	case *core.Researcher:
		size += core.ResearcherMUS.Size(*record)
		buf := make([]byte, size)
		n := ord.String.Marshal(doc.Content, buf)
		n += core.VectorMUS.Marshal(vector, buf[n:])
		core.ResearcherMUS.Marshal(*record, buf[n:])
		return buf, nil
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrInvalidRecordKind, doc.Record)
	}
}

func unmarshalEntry(kind core.RecordKind, data []byte) (core.Document, []float32, error) {
	content, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return core.Document{}, nil, err
	}

	vector, n1, err := core.VectorMUS.Unmarshal(data[n:])
	if err != nil {
		return core.Document{}, nil, err
	}
	n += n1

	var record core.Record
	switch kind {
	case core.KindArticle:
		article, _, err := core.ArticleMUS.Unmarshal(data[n:])
		if err != nil {
			return core.Document{}, nil, err
		}
		record = &article
	case core.KindResearcher:
		researcher, _, err := core.ResearcherMUS.Unmarshal(data[n:])
		if err != nil {
			return core.Document{}, nil, err
		}
		record = &researcher
	default:
		return core.Document{}, nil, core.ErrInvalidRecordKind
	}

	return core.Document{
		ID:      record.RecordID(),
		Kind:    kind,
		Content: content,
		Record:  record,
	}, vector, nil
}
