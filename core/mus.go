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

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for stored records and index entries, written in the
// style musgen emits. Field order is part of the wire format; append
// new fields at the end only.

// AuthorMUS serializes Author values.
var AuthorMUS = authorMUS{}

type authorMUS struct{}

func (s authorMUS) Marshal(v Author, bs []byte) (n int) {
	return ord.String.Marshal(v.Name, bs)
}

func (s authorMUS) Unmarshal(bs []byte) (v Author, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	return
}

func (s authorMUS) Size(v Author) (size int) {
	return ord.String.Size(v.Name)
}

func (s authorMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var authorsMUS = ord.NewSliceSer[Author](AuthorMUS)

// VectorMUS serializes embedding vectors.
var VectorMUS = ord.NewSliceSer[float32](raw.Float32)

// ArticleMUS serializes Article values.
var ArticleMUS = articleMUS{}

type articleMUS struct{}

func (s articleMUS) Marshal(v Article, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Abstract, bs[n:])
	n += varint.Int.Marshal(v.Year, bs[n:])
	n += ord.String.Marshal(v.Qualis, bs[n:])
	n += ord.String.Marshal(v.Journal, bs[n:])
	n += ord.String.Marshal(v.DOI, bs[n:])
	n += authorsMUS.Marshal(v.Authors, bs[n:])
	return
}

func (s articleMUS) Unmarshal(bs []byte) (v Article, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Abstract, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Year, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Qualis, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Journal, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DOI, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Authors, n1, err = authorsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s articleMUS) Size(v Article) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Abstract)
	size += varint.Int.Size(v.Year)
	size += ord.String.Size(v.Qualis)
	size += ord.String.Size(v.Journal)
	size += ord.String.Size(v.DOI)
	size += authorsMUS.Size(v.Authors)
	return
}

func (s articleMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = authorsMUS.Skip(bs[n:])
	n += n1
	return
}

// ResearcherMUS serializes Researcher values.
var ResearcherMUS = researcherMUS{}

type researcherMUS struct{}

func (s researcherMUS) Marshal(v Researcher, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += ord.String.Marshal(v.Degree, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += ord.String.Marshal(v.Orcid, bs[n:])
	n += ord.String.Marshal(v.Lattes, bs[n:])
	return
}

func (s researcherMUS) Unmarshal(bs []byte) (v Researcher, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Degree, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Orcid, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Lattes, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s researcherMUS) Size(v Researcher) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Name)
	size += ord.String.Size(v.Degree)
	size += ord.String.Size(v.Summary)
	size += ord.String.Size(v.Orcid)
	size += ord.String.Size(v.Lattes)
	return
}

func (s researcherMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 6; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}
