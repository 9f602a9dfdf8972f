package storage

import (
	"fmt"

	"github.com/electoralqa/candidex/core"
	"github.com/electoralqa/candidex/lexical"
)

// Snapshot is the fully materialized, read-only corpus state shared by every
// query for the lifetime of the process. No component mutates it after load.
type Snapshot struct {
	Documents  []core.Document
	Embeddings [][]float32
	Lexical    []lexical.SparseVector
	Vectorizer lexical.Vectorizer
	Dimension  int
}

// Len returns the number of corpus documents.
func (s *Snapshot) Len() int {
	return len(s.Documents)
}

// Validate checks the index alignment invariant: one embedding row and one
// lexical row per document, every embedding of the declared dimension.
// A violation is a fatal load error.
func (s *Snapshot) Validate() error {
	if len(s.Embeddings) != len(s.Documents) || len(s.Lexical) != len(s.Documents) {
		return fmt.Errorf("%w: %d documents, %d embeddings, %d lexical rows",
			core.ErrCorpusMisaligned, len(s.Documents), len(s.Embeddings), len(s.Lexical))
	}

	for i, emb := range s.Embeddings {
		if len(emb) != s.Dimension {
			return fmt.Errorf("%w: embedding row %d has dimension %d, want %d",
				core.ErrCorpusMisaligned, i, len(emb), s.Dimension)
		}
	}

	return nil
}
