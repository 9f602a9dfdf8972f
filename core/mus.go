package core

// Hand-written MUS serializers for the corpus artifact types. The record set is
// small and stable, so the serializers are maintained by hand instead of
// generated. Field order is part of the artifact format and must not change.

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// IDMUS serializes IDs.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(v ID) int {
	return varint.Uint64.Size(uint64(v))
}

// VectorMUS serializes dense float32 vectors.
var VectorMUS = vectorMUS{}

type vectorMUS struct{}

func (vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v), bs)
	for _, f := range v {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	v = make([]float32, length)
	for i := 0; i < length; i++ {
		var m int
		v[i], m, err = raw.Float32.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (vectorMUS) Size(v []float32) (n int) {
	n = varint.PositiveInt.Size(len(v))
	for _, f := range v {
		n += raw.Float32.Size(f)
	}
	return n
}

// DocumentMUS serializes Documents.
var DocumentMUS = documentMUS{}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = ord.String.Marshal(d.SourceID, bs)
	n += ord.String.Marshal(string(d.Type), bs[n:])
	n += ord.String.Marshal(d.OriginalText, bs[n:])
	n += ord.String.Marshal(d.ContextText, bs[n:])
	n += ord.String.Marshal(d.Slate, bs[n:])
	n += ord.String.Marshal(d.Party, bs[n:])
	n += ord.String.Marshal(d.CandidateName, bs[n:])
	n += varint.PositiveInt.Marshal(d.InterviewNumber, bs[n:])
	n += ord.String.Marshal(d.Description, bs[n:])
	n += ord.String.Marshal(d.Topic, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var m int
	if d.SourceID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	var typ string
	if typ, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	d.Type = DocType(typ)
	n += m
	if d.OriginalText, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.ContextText, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Slate, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Party, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.CandidateName, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.InterviewNumber, m, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Description, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	if d.Topic, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return d, n + m, err
	}
	n += m
	return d, n, nil
}

func (documentMUS) Size(d Document) (n int) {
	n = ord.String.Size(d.SourceID)
	n += ord.String.Size(string(d.Type))
	n += ord.String.Size(d.OriginalText)
	n += ord.String.Size(d.ContextText)
	n += ord.String.Size(d.Slate)
	n += ord.String.Size(d.Party)
	n += ord.String.Size(d.CandidateName)
	n += varint.PositiveInt.Size(d.InterviewNumber)
	n += ord.String.Size(d.Description)
	n += ord.String.Size(d.Topic)
	return n
}
