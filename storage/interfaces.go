// Package storage defines the persistence interfaces for the corpus artifact.
//
// The artifact is written offline and consumed read-only: documents, their
// dense embeddings, their sparse lexical vectors, the lexical vectorizer
// state, and a manifest tying the rows together. Rows are index-aligned; the
// document at position i owns embedding row i and lexical row i.
package storage

import (
	"context"

	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
)

// Manifest describes the shape of the stored corpus.
type Manifest struct {
	// Count is the number of index-aligned rows.
	Count int
	// Dimension is the length of every dense embedding row.
	Dimension int
}

// CorpusRepository stores and loads the index-aligned corpus rows.
type CorpusRepository interface {
	// AppendDocument adds one aligned row (document, embedding, lexical
	// vector) and returns its position. Source IDs must be unique within
	// the corpus; embeddings must share one dimension.
	AppendDocument(ctx context.Context, doc *core.Document, embedding []float32, lexVec lexical.SparseVector) (int, error)

	// SetVectorizer stores the lexical vocabulary and IDF weights.
	SetVectorizer(ctx context.Context, vz lexical.Vectorizer) error

	// LoadSnapshot materializes the whole artifact into memory and verifies
	// row alignment. The returned snapshot is immutable.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// Close releases the repository.
	Close() error
}
