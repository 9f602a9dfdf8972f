// Copyright 2025 Electoral QA Labs
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


package storage

import (
	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
	"github.com/mus-format/mus-go/varint"
)

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalVector serializes a dense embedding row to bytes.
func MarshalVector(vec []float32) []byte {
	buf := make([]byte, core.VectorMUS.Size(vec))
	core.VectorMUS.Marshal(vec, buf)
	return buf
}

// UnmarshalVector deserializes a dense embedding row from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	vec, _, err := core.VectorMUS.Unmarshal(data)
	return vec, err
}

// MarshalSparseVector serializes a lexical row to bytes.
func MarshalSparseVector(vec lexical.SparseVector) []byte {
	buf := make([]byte, lexical.SparseVectorMUS.Size(vec))
	lexical.SparseVectorMUS.Marshal(vec, buf)
	return buf
}

// UnmarshalSparseVector deserializes a lexical row from bytes.
func UnmarshalSparseVector(data []byte) (lexical.SparseVector, error) {
	vec, _, err := lexical.SparseVectorMUS.Unmarshal(data)
	return vec, err
}

// MarshalVectorizer serializes the vectorizer state to bytes.
func MarshalVectorizer(vz lexical.Vectorizer) []byte {
	buf := make([]byte, lexical.VectorizerMUS.Size(vz))
	lexical.VectorizerMUS.Marshal(vz, buf)
	return buf
}

// UnmarshalVectorizer deserializes the vectorizer state from bytes.
func UnmarshalVectorizer(data []byte) (lexical.Vectorizer, error) {
	vz, _, err := lexical.VectorizerMUS.Unmarshal(data)
	return vz, err
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(m Manifest) []byte {
	buf := make([]byte, varint.PositiveInt.Size(m.Count)+varint.PositiveInt.Size(m.Dimension))
	n := varint.PositiveInt.Marshal(m.Count, buf)
	varint.PositiveInt.Marshal(m.Dimension, buf[n:])
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (Manifest, error) {
	var m Manifest
	count, n, err := varint.PositiveInt.Unmarshal(data)
	if err != nil {
		return m, err
	}
	dim, _, err := varint.PositiveInt.Unmarshal(data[n:])
	if err != nil {
		return m, err
	}
	m.Count = count
	m.Dimension = dim
	return m, nil
}
