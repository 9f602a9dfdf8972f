package lexical

// MUS serializers for the lexical artifact rows. Hand-written; index order is
// part of the artifact format.

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// SparseVectorMUS serializes sparse term-weight vectors.
var SparseVectorMUS = sparseVectorMUS{}

type sparseVectorMUS struct{}

func (sparseVectorMUS) Marshal(v SparseVector, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(v.Indices), bs)
	for i := range v.Indices {
		n += varint.Uint32.Marshal(v.Indices[i], bs[n:])
		n += raw.Float32.Marshal(v.Weights[i], bs[n:])
	}
	return n
}

func (sparseVectorMUS) Unmarshal(bs []byte) (v SparseVector, n int, err error) {
	length, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return v, n, err
	}
	v.Indices = make([]uint32, length)
	v.Weights = make([]float32, length)
	for i := 0; i < length; i++ {
		var m int
		if v.Indices[i], m, err = varint.Uint32.Unmarshal(bs[n:]); err != nil {
			return v, n + m, err
		}
		n += m
		if v.Weights[i], m, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
			return v, n + m, err
		}
		n += m
	}
	return v, n, nil
}

func (sparseVectorMUS) Size(v SparseVector) (n int) {
	n = varint.PositiveInt.Size(len(v.Indices))
	for i := range v.Indices {
		n += varint.Uint32.Size(v.Indices[i])
		n += raw.Float32.Size(v.Weights[i])
	}
	return n
}

// VectorizerMUS serializes the vocabulary and IDF weights.
var VectorizerMUS = vectorizerMUS{}

type vectorizerMUS struct{}

func (vectorizerMUS) Marshal(vz Vectorizer, bs []byte) (n int) {
	n = varint.PositiveInt.Marshal(len(vz.Vocabulary), bs)
	for term, idx := range vz.Vocabulary {
		n += ord.String.Marshal(term, bs[n:])
		n += varint.Uint32.Marshal(idx, bs[n:])
	}
	n += varint.PositiveInt.Marshal(len(vz.IDF), bs[n:])
	for _, w := range vz.IDF {
		n += raw.Float32.Marshal(w, bs[n:])
	}
	return n
}

func (vectorizerMUS) Unmarshal(bs []byte) (vz Vectorizer, n int, err error) {
	vocabLen, n, err := varint.PositiveInt.Unmarshal(bs)
	if err != nil {
		return vz, n, err
	}
	vz.Vocabulary = make(map[string]uint32, vocabLen)
	for i := 0; i < vocabLen; i++ {
		var (
			term string
			idx  uint32
			m    int
		)
		if term, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return vz, n + m, err
		}
		n += m
		if idx, m, err = varint.Uint32.Unmarshal(bs[n:]); err != nil {
			return vz, n + m, err
		}
		n += m
		vz.Vocabulary[term] = idx
	}

	idfLen, m, err := varint.PositiveInt.Unmarshal(bs[n:])
	n += m
	if err != nil {
		return vz, n, err
	}
	vz.IDF = make([]float32, idfLen)
	for i := 0; i < idfLen; i++ {
		if vz.IDF[i], m, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
			return vz, n + m, err
		}
		n += m
	}
	return vz, n, nil
}

func (vectorizerMUS) Size(vz Vectorizer) (n int) {
	n = varint.PositiveInt.Size(len(vz.Vocabulary))
	for term, idx := range vz.Vocabulary {
		n += ord.String.Size(term)
		n += varint.Uint32.Size(idx)
	}
	n += varint.PositiveInt.Size(len(vz.IDF))
	for _, w := range vz.IDF {
		n += raw.Float32.Size(w)
	}
	return n
}
