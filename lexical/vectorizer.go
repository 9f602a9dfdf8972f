// Package lexical provides the sparse term-weight representation used to
// prefilter documents by cosine similarity before semantic search.
package lexical

import (
	"math"
	"sort"

	"github.com/electoralqa/candidex/query"
)

// SparseVector is a sparse term-weight vector. Indices are vocabulary
// positions in strictly ascending order, with a parallel weight for each.
type SparseVector struct {
	Indices []uint32
	Weights []float32
}

// Norm returns the Euclidean norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += float64(w) * float64(w)
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors.
func Dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += float64(a.Weights[i]) * float64(b.Weights[j])
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of two sparse vectors, or 0 when
// either vector is empty.
func Cosine(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Vectorizer maps text onto the term-weight space of the prebuilt corpus
// artifact. Vocabulary and IDF weights are produced offline and loaded as
// read-only state.
type Vectorizer struct {
	Vocabulary map[string]uint32
	IDF        []float32
}

// Transform converts text into a TF-IDF weighted, L2-normalized sparse
// vector over the vectorizer's vocabulary. Tokens outside the vocabulary are
// ignored.
func (vz *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[uint32]float32)
	for _, tok := range query.Tokens(text) {
		if idx, ok := vz.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := SparseVector{
		Indices: make([]uint32, 0, len(counts)),
		Weights: make([]float32, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Slice(vec.Indices, func(i, j int) bool { return vec.Indices[i] < vec.Indices[j] })

	var norm float64
	for _, idx := range vec.Indices {
		w := counts[idx]
		if int(idx) < len(vz.IDF) {
			w *= vz.IDF[idx]
		}
		vec.Weights = append(vec.Weights, w)
		norm += float64(w) * float64(w)
	}

	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec.Weights {
			vec.Weights[i] *= scale
		}
	}

	return vec
}
